package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vaultpass/passfx-go/internal/crypto"
	"github.com/vaultpass/passfx-go/internal/middleware"
	"github.com/vaultpass/passfx-go/internal/model"
	"github.com/vaultpass/passfx-go/internal/service"
)

// GeneratorHandler handles HTTP requests for password generation and scoring.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /api/v1/generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sessionID, _ := middleware.SessionIDFromContext(r.Context())
	resp, err := h.service.Generate(r.Context(), sessionID, req)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidConfiguration) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.Error("password generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleStrength handles POST /api/v1/strength requests.
func (h *GeneratorHandler) HandleStrength(w http.ResponseWriter, r *http.Request) {
	var req model.StrengthRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, h.service.Strength(req))
}

// HandleVerify handles POST /api/v1/hash/verify requests.
func (h *GeneratorHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Verify(req)
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrInvalidHashFormat), errors.Is(err, crypto.ErrIncompatibleVersion):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListHistory handles GET /api/v1/history/passwords requests.
func (h *GeneratorHandler) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	items, err := h.service.History(r.Context(), sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleClearHistory handles DELETE /api/v1/history/passwords requests.
func (h *GeneratorHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	if err := h.service.ClearHistory(r.Context(), sessionID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
