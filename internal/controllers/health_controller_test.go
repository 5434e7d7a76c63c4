package controllers

import (
	"net/http"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nutrilog/internal/models"
)

func TestHealth_OK(t *testing.T) {
	h := newJournalHarness()
	h.extractor.Records = []models.NutritionData{eggs}
	doRequest(h.controller.Submit, http.MethodPost, "/api/entries", `{"description":"2 boiled eggs"}`)
	hc := NewHealthController(h.service)

	rr := doRequest(hc.Health, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Entries)
	assert.Equal(t, 0, resp.InFlight)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(newJournalHarness().service)

	rr := doRequest(hc.Health, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m0s", formatDuration(0))
	assert.Equal(t, "1h2m3s", formatDuration(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "26h0m0s", formatDuration(26*time.Hour))
}
