package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"nutrilog/internal/models"
	"nutrilog/internal/providers"
	"nutrilog/internal/services"
)

type JournalController struct {
	logger  providers.Logger
	service services.JournalServiceInterface
	cache   providers.CacheProviderInterface
}

type submitRequest struct {
	Description string `json:"description"`
}

type submitResponse struct {
	Entries   []models.FoodEntry `json:"entries"`
	Dashboard services.Dashboard `json:"dashboard"`
}

type submitErrorResponse struct {
	Error     string             `json:"error"`
	Dashboard services.Dashboard `json:"dashboard"`
}

type totalsResponse struct {
	Totals    models.DailyTotals  `json:"totals"`
	Breakdown []models.MacroSlice `json:"breakdown"`
	Revision  uint64              `json:"revision"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme models.Theme `json:"theme"`
}

func NewJournalController(logger providers.Logger, service services.JournalServiceInterface, cache providers.CacheProviderInterface) *JournalController {
	return &JournalController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

// Submit analyzes a meal description and records the resulting entries.
// The extraction runs to completion even when the client goes away.
func (jc *JournalController) Submit(w http.ResponseWriter, r *http.Request) {
	var payload submitRequest
	if err := decodeBody(w, r, &payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := jc.service.Submit(context.WithoutCancel(r.Context()), payload.Description)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, submitResponse{Entries: result.Entries, Dashboard: jc.service.Dashboard()})
	case errors.Is(err, services.ErrBlankDescription):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, services.ErrSuperseded):
		writeJSON(w, http.StatusConflict, submitErrorResponse{Error: "superseded", Dashboard: jc.service.Dashboard()})
	default:
		writeJSON(w, http.StatusBadGateway, submitErrorResponse{Error: result.Error, Dashboard: jc.service.Dashboard()})
	}
}

func (jc *JournalController) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jc.service.Entries())
}

func (jc *JournalController) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if jc.service.Remove(id) {
		jc.logger.Infof(providers.TypePost, "Removed entry %s", id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Totals serves totals and chart input. Responses are cached per store
// revision, so a mutation never yields a stale answer.
func (jc *JournalController) Totals(w http.ResponseWriter, r *http.Request) {
	entries, revision := jc.service.View()
	cacheKey := "totals:" + strconv.FormatUint(revision, 10)

	if data, ok := jc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	totals := models.Totals(entries)
	gson, err := json.Marshal(totalsResponse{
		Totals:    totals,
		Breakdown: jc.service.BreakdownOf(totals),
		Revision:  revision,
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	jc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (jc *JournalController) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jc.service.Dashboard())
}

func (jc *JournalController) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeResponse{Theme: jc.service.Theme()})
}

func (jc *JournalController) SetTheme(w http.ResponseWriter, r *http.Request) {
	var payload themeRequest
	if err := decodeBody(w, r, &payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	theme, err := jc.service.SetTheme(payload.Theme)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTheme) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
}
