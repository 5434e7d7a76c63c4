package controllers

import (
	"context"
	"errors"
	"net/http"

	"nutrilog/internal/models"
	"nutrilog/internal/providers"
	"nutrilog/internal/services"
	"nutrilog/internal/structures"
)

// RelayController exposes the extractor as the inference relay endpoint:
// a description in, a JSON array of nutrition records out.
type RelayController struct {
	logger    providers.Logger
	extractor services.ExtractorInterface
	locale    models.Locale
}

func NewRelayController(logger providers.Logger, extractor services.ExtractorInterface, conf *structures.Config) *RelayController {
	return &RelayController{
		logger:    logger,
		extractor: extractor,
		locale:    models.ParseLocale(conf.Journal.Locale),
	}
}

func (rc *RelayController) ParseMeal(w http.ResponseWriter, r *http.Request) {
	var payload submitRequest
	if err := decodeBody(w, r, &payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	records, err := rc.extractor.Extract(context.WithoutCancel(r.Context()), payload.Description)
	if err != nil {
		if errors.Is(err, services.ErrBlankDescription) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: rc.locale.RelayFailedMessage()})
		return
	}
	if records == nil {
		records = []models.NutritionData{}
	}

	writeJSON(w, http.StatusOK, records)
}
