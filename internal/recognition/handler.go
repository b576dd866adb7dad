package recognition

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/notewise/internal/notes"
	"github.com/JaimeStill/notewise/pkg/formatting"
	"github.com/JaimeStill/notewise/pkg/handlers"
	"github.com/JaimeStill/notewise/pkg/routes"
)

// Handler provides HTTP endpoints for note recognition.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "recognition"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for recognition endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/identify",
		Routes: []routes.Route{
			routes.Post("", h.Identify),
		},
	}
}

// Identify accepts a JSON body carrying an image data URI and returns the
// identified note.
func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req notes.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: limit is %s", ErrTooLarge, formatting.FormatBytes(h.maxUploadSize, 0))
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	resp, err := h.sys.Identify(r.Context(), req.Image)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
