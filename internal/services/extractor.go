package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
	"nutrilog/internal/models"
	"nutrilog/internal/providers"
	"nutrilog/internal/structures"
)

var (
	ErrBlankDescription = errors.New("meal description is blank")
	ErrExtractionFailed = errors.New("meal could not be analyzed")
)

// ExtractorInterface turns a meal description into nutrition records.
// Every upstream failure matches ErrExtractionFailed.
type ExtractorInterface interface {
	Extract(ctx context.Context, description string) ([]models.NutritionData, error)
}

func extractionError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrExtractionFailed, stage, err)
}

func isBlank(description string) bool {
	return strings.TrimSpace(description) == ""
}

// wireNutrition detects missing fields; all five are required.
type wireNutrition struct {
	ItemName *string  `json:"itemName"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Fat      *float64 `json:"fat"`
	Carbs    *float64 `json:"carbs"`
}

// decodeNutrition parses a JSON array of nutrition records. Numbers are not
// range checked.
func decodeNutrition(body []byte) ([]models.NutritionData, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, extractionError("decode", errors.New("empty response body"))
	}

	var raw []*wireNutrition
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, extractionError("decode", err)
	}
	if raw == nil {
		return nil, extractionError("decode", errors.New("response is not an array"))
	}

	records := make([]models.NutritionData, 0, len(raw))
	for i, r := range raw {
		if r == nil || r.ItemName == nil || r.Calories == nil || r.Protein == nil || r.Fat == nil || r.Carbs == nil {
			return nil, extractionError("decode", fmt.Errorf("record %d is missing a required field", i))
		}
		records = append(records, models.NutritionData{
			ItemName: *r.ItemName,
			Calories: *r.Calories,
			Protein:  *r.Protein,
			Fat:      *r.Fat,
			Carbs:    *r.Carbs,
		})
	}
	return records, nil
}

func newHTTPClient(conf *structures.Config) *http.Client {
	return &http.Client{Timeout: conf.Extraction.Timeout}
}

// InstrumentedExtractor records outcome metrics and logs failures of the
// wrapped extractor. A nil limiter means no rate limiting.
type InstrumentedExtractor struct {
	inner   ExtractorInterface
	limiter *rate.Limiter
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func (ie *InstrumentedExtractor) Extract(ctx context.Context, description string) ([]models.NutritionData, error) {
	if isBlank(description) {
		ie.metrics.IncExtractions(providers.ExtractionBlank)
		return nil, ErrBlankDescription
	}

	start := time.Now()
	if ie.limiter != nil {
		if err := ie.limiter.Wait(ctx); err != nil {
			ie.metrics.IncExtractions(providers.ExtractionFailure)
			return nil, extractionError("rate limit", err)
		}
	}
	records, err := ie.inner.Extract(ctx, description)
	ie.metrics.ObserveExtractionDuration(time.Since(start))
	if err != nil {
		ie.metrics.IncExtractions(providers.ExtractionFailure)
		ie.logger.Errorf(providers.TypeExtraction, "Extraction failed for %q: %s", description, err)
		return nil, err
	}

	ie.metrics.IncExtractions(providers.ExtractionSuccess)
	ie.logger.Debugf(providers.TypeExtraction, "Extracted %d item(s) from %q", len(records), description)
	return records, nil
}

func NewExtractor(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (ExtractorInterface, error) {
	var inner ExtractorInterface
	switch conf.Extraction.Mode {
	case "relay":
		inner = NewRelayExtractor(conf.Extraction.RelayURL, newHTTPClient(conf))
	case "gemini", "":
		inner = NewGeminiExtractor(conf.Extraction.APIKey, conf.Extraction.BaseURL, conf.Extraction.Model, models.ParseLocale(conf.Journal.Locale), newHTTPClient(conf))
	default:
		return nil, fmt.Errorf("unknown extraction mode %q", conf.Extraction.Mode)
	}

	logger.Infof(providers.TypeApp, "Extraction mode: %s", conf.Extraction.Mode)
	return &InstrumentedExtractor{
		inner:   inner,
		limiter: newLimiter(conf.Extraction.RateLimit, conf.Extraction.Burst),
		metrics: metrics,
		logger:  logger,
	}, nil
}

func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
}
