package scanner

import (
	"github.com/JaimeStill/notewise/internal/identify"
)

// CardKind identifies which result card is shown.
type CardKind string

const (
	CardSuccess       CardKind = "success"
	CardLowConfidence CardKind = "low_confidence"
	CardBlurry        CardKind = "blurry"
	CardError         CardKind = "error"
)

// Card is the rendered outcome of a scan.
type Card struct {
	Kind    CardKind
	Title   string
	Message string
	Err     error
	Preview string
	Result  *identify.Result
}

// Interpret selects the card for an identification result. Blurry wins over
// confidence, and confidence below the threshold wins over success.
func Interpret(r *identify.Result) Card {
	switch {
	case r.IsBlurry:
		return Card{
			Kind:    CardBlurry,
			Title:   "Image unclear",
			Message: "Please retake the photo with better focus.",
			Result:  r,
		}
	case r.Uncertain():
		return Card{
			Kind:    CardLowConfidence,
			Title:   "Not sure",
			Message: "Please try again with better lighting and focus.",
			Result:  r,
		}
	default:
		return Card{
			Kind:    CardSuccess,
			Title:   r.Label(),
			Message: r.Message,
			Result:  r,
		}
	}
}

// Spoken returns the announcement for a card. Success cards speak the
// service message.
func (c Card) Spoken() string {
	switch c.Kind {
	case CardBlurry:
		return MsgBlurry
	case CardLowConfidence:
		return MsgLowConfidence
	case CardError:
		return MsgError
	default:
		return c.Message
	}
}
