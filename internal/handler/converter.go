package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vaultpass/passfx-go/internal/middleware"
	"github.com/vaultpass/passfx-go/internal/model"
	"github.com/vaultpass/passfx-go/internal/service"
)

// ConverterHandler handles HTTP requests for rates and conversions.
type ConverterHandler struct {
	service *service.ConverterService
}

// NewConverterHandler creates a new ConverterHandler.
func NewConverterHandler(svc *service.ConverterService) *ConverterHandler {
	return &ConverterHandler{service: svc}
}

// HandleCurrencies handles GET /api/v1/currencies requests.
func (h *ConverterHandler) HandleCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Currencies())
}

// HandleRate handles GET /api/v1/rates/{from}/{to} requests.
func (h *ConverterHandler) HandleRate(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Rate(r.Context(), chi.URLParam(r, "from"), chi.URLParam(r, "to"))
	if err != nil {
		writeConversionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleConvert handles POST /api/v1/convert requests.
func (h *ConverterHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	var req model.ConvertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sessionID, _ := middleware.SessionIDFromContext(r.Context())
	resp, err := h.service.Convert(r.Context(), sessionID, req)
	if err != nil {
		writeConversionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleQuick handles GET /api/v1/convert/quick?from=..&to=.. requests.
func (h *ConverterHandler) HandleQuick(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.service.Quick(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		writeConversionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListHistory handles GET /api/v1/history/conversions requests.
func (h *ConverterHandler) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	items, err := h.service.History(r.Context(), sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleClearHistory handles DELETE /api/v1/history/conversions requests.
func (h *ConverterHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	if err := h.service.ClearHistory(r.Context(), sessionID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeConversionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrCurrencyRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse("rate lookup did not complete"))
	default:
		slog.Error("conversion failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
