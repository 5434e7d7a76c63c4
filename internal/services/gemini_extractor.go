package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"nutrilog/internal/models"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-3-flash-preview"
)

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string        `json:"responseMimeType"`
	ResponseSchema   *geminiSchema `json:"responseSchema"`
}

type geminiSchema struct {
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Items       *geminiSchema            `json:"items,omitempty"`
	Properties  map[string]*geminiSchema `json:"properties,omitempty"`
	Required    []string                 `json:"required,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type promptTexts struct {
	instruction string
	itemName    string
	calories    string
	protein     string
	fat         string
	carbs       string
}

var prompts = map[models.Locale]promptTexts{
	models.LocaleDE: {
		instruction: `Extrahiere die Nährwertinformationen für die folgende Mahlzeitenbeschreibung: "%s". Gib genaue Schätzungen basierend auf Standard-Nährwertdaten an. Die Namen der Lebensmittel im JSON sollten auf Deutsch sein.`,
		itemName:    "Name des Lebensmittels auf Deutsch",
		calories:    "Gesamtkalorien in kcal",
		protein:     "Gesamtprotein in Gramm",
		fat:         "Gesamtfett in Gramm",
		carbs:       "Gesamtkohlenhydrate in Gramm",
	},
	models.LocaleEN: {
		instruction: `Extract the nutrition information for the following meal description: "%s". Give accurate estimates based on standard nutrition data. Food names in the JSON should be in English.`,
		itemName:    "Name of the food item in English",
		calories:    "Total calories in kcal",
		protein:     "Total protein in grams",
		fat:         "Total fat in grams",
		carbs:       "Total carbohydrates in grams",
	},
}

func nutritionSchema(p promptTexts) *geminiSchema {
	return &geminiSchema{
		Type: "ARRAY",
		Items: &geminiSchema{
			Type: "OBJECT",
			Properties: map[string]*geminiSchema{
				"itemName": {Type: "STRING", Description: p.itemName},
				"calories": {Type: "NUMBER", Description: p.calories},
				"protein":  {Type: "NUMBER", Description: p.protein},
				"fat":      {Type: "NUMBER", Description: p.fat},
				"carbs":    {Type: "NUMBER", Description: p.carbs},
			},
			Required: []string{"itemName", "calories", "protein", "fat", "carbs"},
		},
	}
}

// GeminiExtractor asks the Generative Language API for a schema-constrained
// JSON array of nutrition records.
type GeminiExtractor struct {
	apiKey  string
	baseURL string
	model   string
	prompt  promptTexts
	client  *http.Client
}

func NewGeminiExtractor(apiKey, baseURL, model string, locale models.Locale, client *http.Client) *GeminiExtractor {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if model == "" {
		model = defaultGeminiModel
	}
	p, ok := prompts[locale]
	if !ok {
		p = prompts[models.LocaleDE]
	}
	return &GeminiExtractor{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		prompt:  p,
		client:  client,
	}
}

func (ge *GeminiExtractor) buildRequest(description string) geminiRequest {
	return geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: fmt.Sprintf(ge.prompt.instruction, description)}},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   nutritionSchema(ge.prompt),
		},
	}
}

func (ge *GeminiExtractor) Extract(ctx context.Context, description string) ([]models.NutritionData, error) {
	if isBlank(description) {
		return nil, ErrBlankDescription
	}

	payload, err := json.Marshal(ge.buildRequest(description))
	if err != nil {
		return nil, extractionError("encode", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", ge.baseURL, ge.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, extractionError("request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", ge.apiKey)

	resp, err := ge.client.Do(req)
	if err != nil {
		return nil, extractionError("transport", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, extractionError("read", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, extractionError("gemini", fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 256)))
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, extractionError("gemini", err)
	}

	text := responseText(response)
	if text == "" {
		return nil, extractionError("gemini", errors.New("empty answer from model"))
	}

	return decodeNutrition([]byte(cleanModelText(text)))
}

func responseText(response geminiResponse) string {
	if len(response.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}

// cleanModelText strips markdown fences some models put around JSON.
func cleanModelText(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
