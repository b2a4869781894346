package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vincent/forexledger/internal/adapter/http/dto"
	"github.com/vincent/forexledger/internal/domain"
)

// RateService defines the behavior needed by RateHandler.
type RateService interface {
	RefreshRates(ctx context.Context, bank string) (int, error)
	ListRatesByBank(ctx context.Context, bank string) ([]*domain.ExchangeRate, error)
}

// RateHandler handles exchange rate HTTP requests.
type RateHandler struct {
	rateUC RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC RateService) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// ListByBank lists a bank's current rates.
func (h *RateHandler) ListByBank(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")

	rates, err := h.rateUC.ListRatesByBank(r.Context(), bank)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list rates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RatesFromDomain(rates))
}

// Refresh pulls the bank's published rates into the table.
func (h *RateHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")

	count, err := h.rateUC.RefreshRates(r.Context(), bank)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to refresh rates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"stored": count})
}
