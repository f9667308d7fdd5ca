package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"mortgage-engine/domain"
	"mortgage-engine/service"
)

type MortgageHandler struct {
	mortgage   *service.MortgageService
	comparison *service.ComparisonService
	logger     zerolog.Logger
}

func NewMortgageHandler(
	mortgage *service.MortgageService,
	comparison *service.ComparisonService,
	logger zerolog.Logger,
) *MortgageHandler {
	return &MortgageHandler{
		mortgage:   mortgage,
		comparison: comparison,
		logger:     logger,
	}
}

func (h *MortgageHandler) CalculateSchedule(w http.ResponseWriter, r *http.Request) {
	var terms domain.MortgageTerms
	if err := decodeJSON(r, &terms); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule, err := h.mortgage.Calculate(r.Context(), terms)
	if err != nil {
		h.logger.Debug().Err(err).Msg("schedule rejected")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

func (h *MortgageHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	record, err := h.mortgage.FindCalculation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *MortgageHandler) CompareScenarios(w http.ResponseWriter, r *http.Request) {
	var terms domain.MortgageTerms
	if err := decodeJSON(r, &terms); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.comparison.Compare(r.Context(), terms)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *MortgageHandler) RenderChart(w http.ResponseWriter, r *http.Request) {
	var terms domain.MortgageTerms
	if err := decodeJSON(r, &terms); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := service.ValidateTerms(terms); err != nil {
		writeServiceError(w, err)
		return
	}

	// charts are not recorded as calculations
	schedule, err := service.Simulate(terms)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	png, err := service.RenderBalanceChart(schedule)
	if err != nil {
		h.logger.Error().Err(err).Msg("chart rendering failed")
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		h.logger.Warn().Err(err).Msg("error writing chart response")
	}
}
