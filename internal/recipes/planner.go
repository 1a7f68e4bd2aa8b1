package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/pantry"
)

// Planner is the recipe collaborator: it asks an LLM for recipes that suit
// the current pantry and turns the answers into ingredient requirements the
// engine can check and consume. The engine itself never talks to the model.
type Planner struct {
	model llms.LLM
}

// NewPlanner creates a planner over an LLM
func NewPlanner(model llms.LLM) *Planner {
	return &Planner{model: model}
}

// Suggest asks the model for up to limit recipes using what the pantry has
func (p *Planner) Suggest(ctx context.Context, svc *pantry.Service, limit int) ([]models.RecipeSuggestion, error) {
	if limit <= 0 {
		limit = 3
	}

	var sb strings.Builder
	for _, item := range svc.Items() {
		fmt.Fprintf(&sb, "- %s: %.2f %s (%s)\n", item.Name, item.Quantity, item.Unit, item.Status)
	}

	prompt := fmt.Sprintf(`You are a home cooking assistant. The pantry contains:
%s
Suggest up to %d recipes that mostly use these ingredients. Respond with a JSON array only, no prose. Each element: {"name": string, "description": string, "servings": int, "ingredients": [{"name": string, "quantity": number, "unit": string}], "steps": [string]}. Use units from: g, kg, ml, l, tsp, tbsp, cup, count.`, sb.String(), limit)

	completion, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt)
	if err != nil {
		return nil, fmt.Errorf("recipe suggestion failed: %w", err)
	}

	suggestions, err := parseSuggestions(completion)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe suggestions: %w", err)
	}
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// parseSuggestions extracts the JSON array from a model completion,
// tolerating code fences and surrounding prose.
func parseSuggestions(completion string) ([]models.RecipeSuggestion, error) {
	start := strings.Index(completion, "[")
	end := strings.LastIndex(completion, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in completion")
	}

	var suggestions []models.RecipeSuggestion
	if err := json.Unmarshal([]byte(completion[start:end+1]), &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
