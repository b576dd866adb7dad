package notes

import (
	"fmt"
	"math/rand/v2"
)

// Outcome names the scenario a mock draw produced.
type Outcome string

const (
	OutcomeBlurry        Outcome = "blurry"
	OutcomeLowConfidence Outcome = "low_confidence"
	OutcomeSuccess       Outcome = "success"
)

// Weights holds the probability of the blurry and low-confidence scenarios.
// The remainder is the success probability.
type Weights struct {
	Blurry        float64 `toml:"blurry"`
	LowConfidence float64 `toml:"low_confidence"`
}

// DefaultWeights is 10% blurry, 10% low confidence, 80% success.
var DefaultWeights = Weights{Blurry: 0.1, LowConfidence: 0.1}

// Scenarios produces weighted random identification responses.
type Scenarios struct {
	weights Weights
	rng     *rand.Rand
}

// NewScenarios creates a scenario generator. A nil rng uses a randomly seeded source.
func NewScenarios(weights Weights, rng *rand.Rand) *Scenarios {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Scenarios{weights: weights, rng: rng}
}

// Draw returns the next response and the scenario it came from.
// Not safe for concurrent use; callers serialize access.
func (s *Scenarios) Draw() (Response, Outcome) {
	roll := s.rng.Float64()

	switch {
	case roll < s.weights.Blurry:
		return Blurry(), OutcomeBlurry
	case roll < s.weights.Blurry+s.weights.LowConfidence:
		return LowConfidence(), OutcomeLowConfidence
	}

	note := Catalog[s.rng.IntN(len(Catalog))]
	confidence := 0.85 + s.rng.Float64()*0.15
	return Success(note, confidence), OutcomeSuccess
}

// Blurry is the response for an image the service could not read.
func Blurry() Response {
	return Response{
		Confidence:      0,
		OrientationNote: OrientationUnclear,
		Message:         "Image unclear. Please retake.",
		IsBlurry:        true,
	}
}

// LowConfidence is the response for a note the service is unsure about.
func LowConfidence() Response {
	return Response{
		Denomination:    ptr("100"),
		CurrencyCode:    ptr("INR"),
		Confidence:      0.45,
		OrientationNote: OrientationCorrect,
		Message:         "I'm not sure, please try again.",
	}
}

// Success is the response for a confidently identified note.
func Success(note Note, confidence float64) Response {
	return Response{
		Denomination:    ptr(note.Value),
		CurrencyCode:    ptr(note.Currency),
		Confidence:      confidence,
		OrientationNote: OrientationCorrect,
		Message:         fmt.Sprintf("This is %s", note.Name),
	}
}

func ptr(s string) *string {
	return &s
}
