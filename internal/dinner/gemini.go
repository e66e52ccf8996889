package dinner

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemInstruction = "Eres un asistente de nutrición infantil que da sugerencias de cenas en español. " +
	"Tus respuestas deben ser sencillas, saludables y adecuadas para niños. Responde siempre en formato JSON."

// GeminiSuggester asks a Gemini model for dinner ideas.
type GeminiSuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ Suggester = (*GeminiSuggester)(nil)

// NewGeminiSuggester creates a Gemini-backed suggester. The caller owns
// Close.
func NewGeminiSuggester(ctx context.Context, apiKey string) (*GeminiSuggester, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestions": {
				Type:        genai.TypeArray,
				Description: "Lista de 2 a 3 sugerencias de cenas.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {
							Type:        genai.TypeString,
							Description: "Nombre del plato de cena.",
						},
						"ingredients": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: "Lista de ingredientes necesarios.",
						},
						"steps": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: "Pasos de preparación simples.",
						},
					},
					Required: []string{"name", "ingredients", "steps"},
				},
			},
		},
		Required: []string{"suggestions"},
	}

	return &GeminiSuggester{client: client, model: model}, nil
}

// SuggestDinners implements Suggester.
func (g *GeminiSuggester) SuggestDinners(ctx context.Context, lunch string) ([]Suggestion, error) {
	prompt := fmt.Sprintf(
		"Basado en un almuerzo de %q, sugiere 2-3 recetas para la cena que complementen "+
			"nutricionalmente este almuerzo para un niño. Evita ingredientes repetidos. "+
			"Las recetas deben ser sencillas, saludables y balanceadas.", lunch)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("%w: generate content: %v", ErrService, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty model response", ErrService)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("%w: model response is not text", ErrService)
	}

	return parseSuggestions(string(text))
}

// Close releases the underlying client.
func (g *GeminiSuggester) Close() error {
	return g.client.Close()
}
