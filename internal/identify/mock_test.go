package identify_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/JaimeStill/notewise/internal/identify"
	"github.com/JaimeStill/notewise/internal/notes"
)

func TestMockIdentifyNote(t *testing.T) {
	t.Run("returns drawn scenario", func(t *testing.T) {
		scenarios := notes.NewScenarios(notes.Weights{Blurry: 1}, rand.New(rand.NewPCG(1, 1)))
		mock := identify.NewMock(0, scenarios, discardLogger())

		result, err := mock.IdentifyNote(context.Background(), "data:image/png;base64,AAAA")
		if err != nil {
			t.Fatalf("identify: %v", err)
		}
		if !result.IsBlurry {
			t.Error("expected blurry result")
		}
		if result.OrientationNote != "unclear" {
			t.Errorf("orientation = %q, want unclear", result.OrientationNote)
		}
	})

	t.Run("honors context cancellation during delay", func(t *testing.T) {
		mock := identify.NewMock(time.Minute, notes.NewScenarios(notes.DefaultWeights, nil), discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := mock.IdentifyNote(ctx, "data:image/png;base64,AAAA")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	})

	t.Run("success outcomes carry a catalog note", func(t *testing.T) {
		scenarios := notes.NewScenarios(notes.Weights{}, rand.New(rand.NewPCG(3, 4)))
		mock := identify.NewMock(0, scenarios, discardLogger())

		for range 50 {
			result, err := mock.IdentifyNote(context.Background(), "")
			if err != nil {
				t.Fatalf("identify: %v", err)
			}
			if result.Uncertain() {
				t.Fatalf("success confidence below threshold: %v", result.Confidence)
			}
			if result.CurrencyCode == nil || *result.CurrencyCode != "INR" {
				t.Fatalf("currency = %v", result.CurrencyCode)
			}
		}
	})
}

func TestNewSelectsMode(t *testing.T) {
	mock := identify.New(&identify.Config{Mode: identify.ModeMock}, discardLogger())
	if _, ok := mock.(*identify.Mock); !ok {
		t.Errorf("mock mode: got %T", mock)
	}

	live := identify.New(&identify.Config{Mode: identify.ModeLive, Endpoint: "http://localhost", Timeout: "1s"}, discardLogger())
	if _, ok := live.(*identify.Client); !ok {
		t.Errorf("live mode: got %T", live)
	}
}
