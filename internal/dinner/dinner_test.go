package dinner

import (
	"errors"
	"testing"
)

func TestParseSuggestions(t *testing.T) {
	raw := `{"suggestions":[{"name":"Tortilla de espinaca","ingredients":["huevos","espinaca"],"steps":["Batir","Cocinar"]}]}`

	got, err := parseSuggestions(raw)
	if err != nil {
		t.Fatalf("parseSuggestions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	s := got[0]
	if s.Name != "Tortilla de espinaca" {
		t.Errorf("Name = %q", s.Name)
	}
	if len(s.Ingredients) != 2 || len(s.Steps) != 2 {
		t.Errorf("ingredients/steps = %d/%d, want 2/2", len(s.Ingredients), len(s.Steps))
	}
}

func TestParseSuggestionsStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"suggestions\":[{\"name\":\"Sopa de verduras\",\"ingredients\":[\"zanahoria\"],\"steps\":[\"Hervir\"]}]}\n```"

	got, err := parseSuggestions(raw)
	if err != nil {
		t.Fatalf("parseSuggestions: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Sopa de verduras" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseSuggestionsBadJSON(t *testing.T) {
	_, err := parseSuggestions("lo siento, no puedo ayudar")
	if err == nil {
		t.Fatal("expected error for non-JSON reply")
	}
	if !errors.Is(err, ErrService) {
		t.Errorf("error = %v, want ErrService in chain", err)
	}
}

func TestParseSuggestionsEmptyList(t *testing.T) {
	got, err := parseSuggestions(`{"suggestions":[]}`)
	if err != nil {
		t.Fatalf("parseSuggestions: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d suggestions, want 0", len(got))
	}
}
