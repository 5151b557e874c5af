package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// systemInstruction is the fixed extraction prompt. The model must emit raw
// CSV, or the literal token ERROR when the input is not a recognizable
// document image.
const systemInstruction = `You are an image data extraction AI. Follow these instructions precisely:

1. EXTRACT: All text and structured data from the input image.

2. FORMAT for CSV:
   - Use comma (,) as the field delimiter
   - Use newline (\n) as the record delimiter
   - Enclose fields containing commas, newlines, or double quotes in double quotes
   - Escape any double quotes within fields by doubling them

3. STRUCTURE:
   - First row: Column headers (if applicable)
   - Subsequent rows: Data entries
   - Maintain consistent number of fields per row

4. VERIFY:
   - All data sourced directly from image
   - No inferred or extraneous information
   - Proper CSV formatting
   - Consistent field count across rows

5. OUTPUT:
   - ONLY the CSV-formatted data
   - Each row on a new line
   - No additional text or explanations

6. IF ERROR: Output ONLY "ERROR" if image is not in that format nothing else`

// GeminiClient wraps one generative model behind the Extractor contract.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: cl, modelName: modelName}, nil
}

func (g *GeminiClient) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Extract runs a single extraction over the image at imageURL. One attempt,
// no retries.
func (g *GeminiClient) Extract(ctx context.Context, imageURL string) (string, error) {
	m := g.client.GenerativeModel(g.modelName)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	m.SetTemperature(1)
	m.SetTopP(0.95)
	m.SetTopK(64)
	m.SetMaxOutputTokens(8192)
	m.ResponseMIMEType = "text/plain"

	session := m.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(imageURL))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}
