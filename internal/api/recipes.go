package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/recipes"
)

// Recipe collaborator handlers

func (p *PantryAPI) SuggestRecipes(c *gin.Context) {
	if p.planner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recipe suggestions are not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	svc, ok := p.service(c)
	if !ok {
		return
	}

	suggestions, err := p.planner.Suggest(c.Request.Context(), svc, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	// Attach a readiness report so the UI can rank by feasibility.
	type suggestionView struct {
		models.RecipeSuggestion
		Readiness recipes.ReadinessReport `json:"readiness"`
	}
	views := make([]suggestionView, 0, len(suggestions))
	for _, suggestion := range suggestions {
		report, err := recipes.Readiness(svc, suggestion.Ingredients)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		views = append(views, suggestionView{RecipeSuggestion: suggestion, Readiness: report})
	}
	c.JSON(http.StatusOK, views)
}

func (p *PantryAPI) RecipeReadiness(c *gin.Context) {
	var req struct {
		Ingredients []models.IngredientRequirement `json:"ingredients" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}

	report, err := recipes.Readiness(svc, req.Ingredients)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (p *PantryAPI) CookRecipe(c *gin.Context) {
	var req struct {
		Ingredients []models.IngredientRequirement `json:"ingredients" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}

	result, err := recipes.Cook(c.Request.Context(), svc, req.Ingredients)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
