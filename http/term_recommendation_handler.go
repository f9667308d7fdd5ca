package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"mortgage-engine/domain"
	"mortgage-engine/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	logger  zerolog.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, logger zerolog.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, logger: logger}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var input domain.TermRecommendationInput
	if err := decodeJSON(r, &input); err != nil {
		h.logger.Debug().Err(err).Msg("error decoding request body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.RecommendTerm(r.Context(), input)
	if err != nil {
		h.logger.Debug().Err(err).Msg("error recommending term")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
