package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nutrilog/internal/models"
	"nutrilog/internal/providers"
	"nutrilog/internal/structures"
	"nutrilog/internal/testutil"
)

func TestDecodeNutrition(t *testing.T) {
	records, err := decodeNutrition([]byte(`[{"itemName":"Ei","calories":140,"protein":12,"fat":10,"carbs":1}]`))
	require.NoError(t, err)
	assert.Equal(t, []models.NutritionData{{ItemName: "Ei", Calories: 140, Protein: 12, Fat: 10, Carbs: 1}}, records)
}

func TestDecodeNutrition_EmptyArray(t *testing.T) {
	records, err := decodeNutrition([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeNutrition_KeepsNegativeNumbers(t *testing.T) {
	records, err := decodeNutrition([]byte(`[{"itemName":"x","calories":-5,"protein":0,"fat":0,"carbs":0}]`))
	require.NoError(t, err)
	assert.Equal(t, -5.0, records[0].Calories)
}

func TestDecodeNutrition_Failures(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"whitespace":    "  \n",
		"null":          "null",
		"object":        `{"itemName":"Ei"}`,
		"not json":      "Ich weiß es nicht",
		"missing carbs": `[{"itemName":"Ei","calories":140,"protein":12,"fat":10}]`,
		"null record":   `[null]`,
		"string number": `[{"itemName":"Ei","calories":"viel","protein":12,"fat":10,"carbs":1}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decodeNutrition([]byte(body))
			assert.ErrorIs(t, err, ErrExtractionFailed)
		})
	}
}

func TestInstrumentedExtractor_Success(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	inner := &testutil.MockExtractor{Records: []models.NutritionData{{ItemName: "Ei"}}}
	ie := &InstrumentedExtractor{inner: inner, metrics: metrics, logger: &testutil.MockLogger{}}

	records, err := ie.Extract(context.Background(), "2 boiled eggs")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, metrics.Extractions[providers.ExtractionSuccess])
}

func TestInstrumentedExtractor_Failure(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	logger := &testutil.MockLogger{}
	inner := &testutil.MockExtractor{Err: extractionError("transport", errors.New("timeout"))}
	ie := &InstrumentedExtractor{inner: inner, metrics: metrics, logger: logger}

	_, err := ie.Extract(context.Background(), "Pizza")
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, 1, metrics.Extractions[providers.ExtractionFailure])
	assert.Equal(t, 1, logger.CountLevel("error"))
	assert.Equal(t, providers.TypeExtraction, logger.Logs[0].Type)
}

func TestInstrumentedExtractor_BlankSkipsInner(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	inner := &testutil.MockExtractor{}
	ie := &InstrumentedExtractor{inner: inner, metrics: metrics, logger: &testutil.MockLogger{}}

	_, err := ie.Extract(context.Background(), " \t ")
	assert.ErrorIs(t, err, ErrBlankDescription)
	assert.Equal(t, 0, inner.CallCount())
	assert.Equal(t, 1, metrics.Extractions[providers.ExtractionBlank])
}

func TestNewExtractor_Modes(t *testing.T) {
	for mode, want := range map[string]interface{}{
		"gemini": &GeminiExtractor{},
		"":       &GeminiExtractor{},
		"relay":  &RelayExtractor{},
	} {
		conf := &structures.Config{Extraction: structures.ExtractionConfig{Mode: mode, APIKey: "k", RelayURL: "http://relay"}}

		extractor, err := NewExtractor(conf, &testutil.MockLogger{}, &testutil.MockMetrics{})
		require.NoError(t, err, mode)
		require.IsType(t, &InstrumentedExtractor{}, extractor)
		assert.IsType(t, want, extractor.(*InstrumentedExtractor).inner, mode)
	}
}

func TestNewExtractor_UnknownMode(t *testing.T) {
	conf := &structures.Config{Extraction: structures.ExtractionConfig{Mode: "oracle"}}

	_, err := NewExtractor(conf, &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, newLimiter(0, 5))
	assert.Nil(t, newLimiter(-1, 5))

	l := newLimiter(2, 0)
	require.NotNil(t, l)
	assert.Equal(t, 1, l.Burst())
}

func TestInstrumentedExtractor_RateLimitRespectsContext(t *testing.T) {
	metrics := &testutil.MockMetrics{}
	inner := &testutil.MockExtractor{Records: []models.NutritionData{{ItemName: "Ei"}}}
	ie := &InstrumentedExtractor{inner: inner, limiter: newLimiter(0.001, 1), metrics: metrics, logger: &testutil.MockLogger{}}

	_, err := ie.Extract(context.Background(), "Ei")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ie.Extract(ctx, "Ei")
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, 1, inner.CallCount())
	assert.Equal(t, 1, metrics.Extractions[providers.ExtractionFailure])
}
