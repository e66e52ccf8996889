// Package dinner suggests dinner recipes that nutritionally complement
// the lunch served at school on a given day.
package dinner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Suggestion is one dinner recipe idea.
type Suggestion struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// ErrService marks failures of the suggestion backend, whether the call
// itself or decoding its reply.
var ErrService = errors.New("dinner suggestion service failed")

// Suggester produces dinner ideas for a lunch description.
type Suggester interface {
	SuggestDinners(ctx context.Context, lunch string) ([]Suggestion, error)
}

// suggestionEnvelope is the JSON shape the model is asked to reply with.
type suggestionEnvelope struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// parseSuggestions decodes a model reply. It tolerates markdown code
// fences around the JSON, which some model versions add despite the
// JSON response mime type.
func parseSuggestions(raw string) ([]Suggestion, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var env suggestionEnvelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, fmt.Errorf("%w: decode suggestions: %v", ErrService, err)
	}
	return env.Suggestions, nil
}
