package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"hsaledger/internal/logging"
	"hsaledger/internal/models"
	"hsaledger/internal/textutils"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// GeminiExtractor reads receipt fields via the Gemini vision API.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	prompt string
	logger logging.Logger
}

// NewGeminiExtractor creates an extractor talking to the Gemini API.
// The category names are embedded into the prompt so the model picks
// from the configured enumeration; an empty list falls back to the
// built-in categories.
func NewGeminiExtractor(ctx context.Context, apiKey, model string, categories []string, logger logging.Logger) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("extraction API key not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &GeminiExtractor{
		client: client,
		model:  client.GenerativeModel(model),
		prompt: buildPrompt(categories),
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiExtractor) Close() error {
	return g.client.Close()
}

// Extract sends the receipt image and the extraction prompt to the
// model and decodes the JSON reply. Only image/* media types are
// accepted; documents must be rendered to a raster first.
func (g *GeminiExtractor) Extract(ctx context.Context, image []byte, mediaType string) (*Result, error) {
	format := strings.TrimPrefix(mediaType, "image/")
	if format == mediaType {
		return nil, fmt.Errorf("unsupported media type for extraction: %s", mediaType)
	}

	resp, err := g.model.GenerateContent(ctx, genai.ImageData(format, image), genai.Text(g.prompt))
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty extraction response")
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}

	var result Result
	if err := json.Unmarshal([]byte(textutils.ExtractJSON(reply.String())), &result); err != nil {
		return nil, fmt.Errorf("failed to decode extraction reply: %w", err)
	}

	g.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(image)},
		logging.Field{Key: "media_type", Value: mediaType},
	).Debug("Extracted receipt fields")
	return &result, nil
}

func buildPrompt(categories []string) string {
	if len(categories) == 0 {
		categories = models.CategoryNames()
	}

	return fmt.Sprintf(`Analyze this medical receipt/EOB and extract:

1. **Date**: The date of service (format: YYYY-MM-DD)
2. **Provider**: The healthcare provider name
3. **Amount**: The amount paid by patient (not billed, not insurance paid - the patient responsibility/payment)
4. **Category**: One of: %s

Return ONLY valid JSON in this exact format:
{
  "date": "YYYY-MM-DD",
  "provider": "Provider Name",
  "amount": 123.45,
  "category": "Medical",
  "notes": "Brief description of service if visible"
}

If you cannot determine a field with confidence, use null for that field.`, strings.Join(categories, ", "))
}
