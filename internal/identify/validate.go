package identify

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/JaimeStill/notewise/internal/notes"
)

var requiredFields = []string{"denomination", "currency_code", "confidence", "message"}

// Validate checks a raw response body for the required fields and coerces
// every field to its declared type. A JSON null counts as present.
func Validate(body []byte) (*Result, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrMalformedResponse, field)
		}
	}

	denomination, err := optionalString(raw["denomination"])
	if err != nil {
		return nil, fmt.Errorf("%w: denomination: %w", ErrMalformedResponse, err)
	}

	currency, err := optionalString(raw["currency_code"])
	if err != nil {
		return nil, fmt.Errorf("%w: currency_code: %w", ErrMalformedResponse, err)
	}

	confidence, err := number(raw["confidence"])
	if err != nil {
		return nil, fmt.Errorf("%w: confidence: %w", ErrMalformedResponse, err)
	}

	message, err := optionalString(raw["message"])
	if err != nil {
		return nil, fmt.Errorf("%w: message: %w", ErrMalformedResponse, err)
	}

	orientation, err := optionalString(raw["orientation_note"])
	if err != nil {
		return nil, fmt.Errorf("%w: orientation_note: %w", ErrMalformedResponse, err)
	}

	blurry, err := boolean(raw["isBlurry"])
	if err != nil {
		return nil, fmt.Errorf("%w: isBlurry: %w", ErrMalformedResponse, err)
	}

	resp := notes.Response{
		Denomination:    denomination,
		CurrencyCode:    currency,
		Confidence:      confidence,
		OrientationNote: deref(orientation),
		Message:         deref(message),
		IsBlurry:        blurry,
	}

	return fromResponse(resp), nil
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}

func optionalString(v json.RawMessage) (*string, error) {
	if isNull(v) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return &s, nil
	}

	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		str := n.String()
		return &str, nil
	}

	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		str := strconv.FormatBool(b)
		return &str, nil
	}

	return nil, fmt.Errorf("not a string: %s", v)
}

func number(v json.RawMessage) (float64, error) {
	if isNull(v) {
		return 0, fmt.Errorf("null")
	}

	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f, nil
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, fmt.Errorf("not finite: %s", v)
			}
			return f, nil
		}
	}

	return 0, fmt.Errorf("not a number: %s", v)
}

func boolean(v json.RawMessage) (bool, error) {
	if isNull(v) {
		return false, nil
	}

	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b, nil
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		}
	}

	return false, fmt.Errorf("not a boolean: %s", v)
}
