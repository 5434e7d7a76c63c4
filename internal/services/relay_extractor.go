package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"nutrilog/internal/models"
)

const maxResponseBodySize = 4 << 20

type relayRequest struct {
	Description string `json:"description"`
}

// RelayExtractor posts the description to an inference relay that answers
// with a JSON array of nutrition records.
type RelayExtractor struct {
	url    string
	client *http.Client
}

func NewRelayExtractor(url string, client *http.Client) *RelayExtractor {
	return &RelayExtractor{url: url, client: client}
}

func (re *RelayExtractor) Extract(ctx context.Context, description string) ([]models.NutritionData, error) {
	if isBlank(description) {
		return nil, ErrBlankDescription
	}

	payload, err := json.Marshal(relayRequest{Description: description})
	if err != nil {
		return nil, extractionError("encode", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, re.url, bytes.NewReader(payload))
	if err != nil {
		return nil, extractionError("request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := re.client.Do(req)
	if err != nil {
		return nil, extractionError("transport", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, extractionError("read", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, extractionError("relay", fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 256)))
	}

	return decodeNutrition(body)
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
