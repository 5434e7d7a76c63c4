package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"nutrilog/internal/models"
	"nutrilog/internal/services"
	"nutrilog/internal/structures"
	"nutrilog/internal/testutil"
)

func newRelayController(extractor services.ExtractorInterface) *RelayController {
	return NewRelayController(&testutil.MockLogger{}, extractor, &structures.Config{Journal: structures.JournalConfig{Locale: "de"}})
}

func TestParseMeal_Success(t *testing.T) {
	extractor := &testutil.MockExtractor{Records: []models.NutritionData{eggs}}
	rc := newRelayController(extractor)

	rr := doRequest(rc.ParseMeal, http.MethodPost, "/api/parse-meal", `{"description":"2 boiled eggs"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"itemName":"Gekochte Eier","calories":140,"protein":12,"fat":10,"carbs":1}]`, rr.Body.String())
	assert.Equal(t, []string{"2 boiled eggs"}, extractor.Calls)
}

func TestParseMeal_EmptyResultIsArray(t *testing.T) {
	rc := newRelayController(&testutil.MockExtractor{})

	rr := doRequest(rc.ParseMeal, http.MethodPost, "/api/parse-meal", `{"description":"Luft"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestParseMeal_Blank(t *testing.T) {
	rc := newRelayController(&testutil.MockExtractor{Err: services.ErrBlankDescription})

	rr := doRequest(rc.ParseMeal, http.MethodPost, "/api/parse-meal", `{"description":""}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error"`)
}

func TestParseMeal_Failure(t *testing.T) {
	rc := newRelayController(&testutil.MockExtractor{Err: services.ErrExtractionFailed})

	rr := doRequest(rc.ParseMeal, http.MethodPost, "/api/parse-meal", `{"description":"Pizza"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Fehler bei der Analyse der Mahlzeit"}`, rr.Body.String())
}

func TestParseMeal_BadJSON(t *testing.T) {
	rc := newRelayController(&testutil.MockExtractor{})

	rr := doRequest(rc.ParseMeal, http.MethodPost, "/api/parse-meal", `[`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
