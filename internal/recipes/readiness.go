package recipes

import (
	"context"
	"errors"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/pantry"
)

// IngredientReadiness represents one requirement's availability, including
// whether a substitute could stand in when the exact ingredient is absent.
type IngredientReadiness struct {
	Requirement    models.IngredientRequirement `json:"requirement"`
	Availability   pantry.Availability          `json:"availability"`
	HasSubstitute  bool                         `json:"has_substitute"`
	SubstituteName string                       `json:"substitute_name,omitempty"`
}

// ReadinessReport represents a recipe's feasibility against current stock
type ReadinessReport struct {
	Ready       bool                  `json:"ready"`
	Approximate bool                  `json:"approximate"`
	Ingredients []IngredientReadiness `json:"ingredients"`
}

// Readiness checks every requirement of a recipe against the pantry.
// Read-only. Ready means every requirement is directly available;
// substitutes are reported but never counted toward readiness, since they
// are not auto-consumed either. Approximate is set when any requirement was
// compared without a density factor, so the report should not be presented
// as precise.
func Readiness(svc *pantry.Service, requirements []models.IngredientRequirement) (ReadinessReport, error) {
	report := ReadinessReport{Ready: true}

	for _, req := range requirements {
		avail, err := svc.Check(req.Name, req.Quantity, req.Unit)
		if err != nil {
			return ReadinessReport{}, err
		}

		entry := IngredientReadiness{Requirement: req, Availability: avail}
		if !avail.Available {
			report.Ready = false
			if avail.Reason == pantry.ReasonNotFound {
				if match := svc.CheckInPantry(req.Name); match.HasSubstitute {
					entry.HasSubstitute = true
					entry.SubstituteName = match.Substitute.Name
				}
			}
		}
		if avail.Approximate {
			report.Approximate = true
		}
		report.Ingredients = append(report.Ingredients, entry)
	}
	return report, nil
}

// CookResult represents the outcome of cooking a recipe through the pantry
type CookResult struct {
	Consumed []string `json:"consumed"`
	Missing  []string `json:"missing"`
}

// Cook consumes every requirement of a recipe from the pantry. Ingredients
// with no direct match are skipped and reported missing rather than
// aborting the whole recipe; partially stocked ingredients consume what is
// available per the clamping rule. Unit-family mismatches and persistence
// failures abort, since they indicate a logic or storage problem rather
// than an empty shelf.
func Cook(ctx context.Context, svc *pantry.Service, requirements []models.IngredientRequirement) (CookResult, error) {
	var result CookResult
	for _, req := range requirements {
		err := svc.Consume(ctx, req.Name, req.Quantity, req.Unit)
		if errors.Is(err, pantry.ErrNotFound) {
			result.Missing = append(result.Missing, req.Name)
			continue
		}
		if err != nil {
			return result, err
		}
		result.Consumed = append(result.Consumed, req.Name)
	}
	return result, nil
}
