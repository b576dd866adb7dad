// Package notes defines the currency note catalog and the wire format shared by
// the identification client and the identification service.
package notes

// Note is a single banknote in the catalog.
type Note struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
	Name     string `json:"name"`
}

// Catalog is the set of notes the mock recognizer draws from.
var Catalog = []Note{
	{Value: "10", Currency: "INR", Name: "ten rupees"},
	{Value: "20", Currency: "INR", Name: "twenty rupees"},
	{Value: "50", Currency: "INR", Name: "fifty rupees"},
	{Value: "100", Currency: "INR", Name: "one hundred rupees"},
	{Value: "200", Currency: "INR", Name: "two hundred rupees"},
	{Value: "500", Currency: "INR", Name: "five hundred rupees"},
	{Value: "2000", Currency: "INR", Name: "two thousand rupees"},
}

// Orientation hints reported by the service.
const (
	OrientationCorrect    = "correct"
	OrientationRotated    = "rotated"
	OrientationUpsideDown = "upside_down"
	OrientationUnclear    = "unclear"
)

// Request is the identification request body.
// Image holds a base64 data URI, e.g. "data:image/jpeg;base64,/9j/4AAQ...".
type Request struct {
	Image string `json:"image"`
}

// Response is the identification response body. Denomination and CurrencyCode
// are null when the service could not read the note.
type Response struct {
	Denomination    *string `json:"denomination"`
	CurrencyCode    *string `json:"currency_code"`
	Confidence      float64 `json:"confidence"`
	OrientationNote string  `json:"orientation_note,omitempty"`
	Message         string  `json:"message"`
	IsBlurry        bool    `json:"isBlurry,omitempty"`
}
