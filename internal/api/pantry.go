package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/pantry"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/recipes"
)

// PantryAPI represents the HTTP surface of the pantry engine for the UI,
// scanner and recipe collaborators.
type PantryAPI struct {
	Router  *gin.Engine
	manager *pantry.Manager
	planner *recipes.Planner
}

// NewPantryAPI creates the API over a pantry manager and recipe planner
func NewPantryAPI(manager *pantry.Manager, planner *recipes.Planner, jwtSecret []byte) *PantryAPI {
	router := gin.Default()

	api := &PantryAPI{
		Router:  router,
		manager: manager,
		planner: planner,
	}

	api.setupRoutes(jwtSecret)
	return api
}

// setupRoutes configures all API endpoints
func (p *PantryAPI) setupRoutes(jwtSecret []byte) {
	// Health check
	p.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Kitchen Studio API is running"})
	})

	v1 := p.Router.Group("/api/v1")
	v1.Use(AuthMiddleware(jwtSecret))
	{
		// Pantry inventory
		v1.GET("/pantry", p.ListItems)
		v1.POST("/pantry", p.AddItem)
		v1.GET("/pantry/expiring", p.ListExpiring)
		v1.GET("/pantry/check", p.CheckAvailability)
		v1.GET("/pantry/lookup", p.LookupIngredient)
		v1.POST("/pantry/consume", p.ConsumeIngredient)
		v1.GET("/pantry/:id", p.GetItem)
		v1.DELETE("/pantry/:id", p.DeleteItem)
		v1.PUT("/pantry/:id/stock", p.AdjustStock)
		v1.PUT("/pantry/:id/expiry", p.SetExpiry)
		v1.PUT("/pantry/:id/name", p.RenameItem)

		// Scanner intake
		v1.POST("/scan/intake", p.ScanIntake)

		// Recipe collaborator
		v1.GET("/recipes/suggest", p.SuggestRecipes)
		v1.POST("/recipes/readiness", p.RecipeReadiness)
		v1.POST("/recipes/cook", p.CookRecipe)

		// Live inventory stream
		v1.GET("/ws", p.handleStream)
	}
}

// service resolves the pantry engine for the authenticated owner
func (p *PantryAPI) service(c *gin.Context) (*pantry.Service, bool) {
	svc, err := p.manager.Service(c.Request.Context(), ownerID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return nil, false
	}
	return svc, true
}

// writeEngineError maps engine errors to HTTP statuses
func writeEngineError(c *gin.Context, err error) {
	var mismatch *pantry.UnitFamilyMismatchError
	var persistence *pantry.PersistenceError
	switch {
	case errors.Is(err, pantry.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &persistence):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "unconfirmed": true})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// itemView represents an inventory item as presented to the UI
type itemView struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Category             string     `json:"category"`
	Status               string     `json:"status"`
	Quantity             float64    `json:"quantity"`
	Unit                 string     `json:"unit"`
	BaseQuantity         float64    `json:"base_quantity"`
	BaseUnit             string     `json:"base_unit"`
	OriginalBaseQuantity float64    `json:"original_base_quantity"`
	StockPercentage      int        `json:"stock_percentage"`
	ExpiryDate           *time.Time `json:"expiry_date,omitempty"`
	DaysRemaining        *float64   `json:"days_remaining,omitempty"`
}

func viewOf(svc *pantry.Service, item *models.InventoryItem) itemView {
	view := itemView{
		ID:                   item.ItemID,
		Name:                 item.Name,
		Category:             item.Category,
		Status:               item.Status,
		Quantity:             item.Quantity,
		Unit:                 item.Unit,
		BaseQuantity:         item.BaseQuantity,
		BaseUnit:             item.BaseUnit,
		OriginalBaseQuantity: item.OriginalBaseQuantity,
		StockPercentage:      item.StockPercentage,
		ExpiryDate:           item.ExpiryDate,
	}
	if days, ok := svc.DaysRemaining(item.ItemID); ok {
		view.DaysRemaining = &days
	}
	return view
}

// Pantry inventory handlers

func (p *PantryAPI) ListItems(c *gin.Context) {
	svc, ok := p.service(c)
	if !ok {
		return
	}

	items := svc.Items()
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, viewOf(svc, item))
	}
	c.JSON(http.StatusOK, views)
}

func (p *PantryAPI) AddItem(c *gin.Context) {
	var req struct {
		Name       string     `json:"name" binding:"required"`
		Quantity   float64    `json:"quantity"`
		Unit       string     `json:"unit" binding:"required"`
		Category   string     `json:"category"`
		ExpiryDate *time.Time `json:"expiry_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}

	itemID, err := svc.Add(c.Request.Context(), req.Name, req.Quantity, req.Unit, pantry.AddOptions{
		Category:   req.Category,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	item, _ := svc.Item(itemID)
	c.JSON(http.StatusCreated, viewOf(svc, item))
}

func (p *PantryAPI) GetItem(c *gin.Context) {
	svc, ok := p.service(c)
	if !ok {
		return
	}

	item, found := svc.Item(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, viewOf(svc, item))
}

func (p *PantryAPI) DeleteItem(c *gin.Context) {
	svc, ok := p.service(c)
	if !ok {
		return
	}

	if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func (p *PantryAPI) AdjustStock(c *gin.Context) {
	var req struct {
		Percent int `json:"percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}

	itemID := c.Param("id")
	if err := svc.AdjustStockPercent(c.Request.Context(), itemID, req.Percent); err != nil {
		writeEngineError(c, err)
		return
	}

	item, _ := svc.Item(itemID)
	c.JSON(http.StatusOK, viewOf(svc, item))
}

func (p *PantryAPI) SetExpiry(c *gin.Context) {
	var req struct {
		ExpiryDate *time.Time `json:"expiry_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}

	itemID := c.Param("id")
	if err := svc.SetExpiry(c.Request.Context(), itemID, req.ExpiryDate); err != nil {
		writeEngineError(c, err)
		return
	}

	item, _ := svc.Item(itemID)
	c.JSON(http.StatusOK, viewOf(svc, item))
}

func (p *PantryAPI) RenameItem(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}

	itemID := c.Param("id")
	if err := svc.Rename(c.Request.Context(), itemID, req.Name); err != nil {
		writeEngineError(c, err)
		return
	}

	item, _ := svc.Item(itemID)
	c.JSON(http.StatusOK, viewOf(svc, item))
}

func (p *PantryAPI) ListExpiring(c *gin.Context) {
	svc, ok := p.service(c)
	if !ok {
		return
	}

	var views []itemView
	for _, item := range svc.ItemsByStatus(models.StatusExpiring) {
		views = append(views, viewOf(svc, item))
	}
	for _, item := range svc.ItemsByStatus(models.StatusLow) {
		views = append(views, viewOf(svc, item))
	}
	c.JSON(http.StatusOK, views)
}

// Availability and consumption handlers

func (p *PantryAPI) CheckAvailability(c *gin.Context) {
	var req struct {
		Name     string  `form:"name" binding:"required"`
		Quantity float64 `form:"quantity"`
		Unit     string  `form:"unit" binding:"required"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}

	availability, err := svc.Check(req.Name, req.Quantity, req.Unit)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

func (p *PantryAPI) LookupIngredient(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, svc.CheckInPantry(name))
}

func (p *PantryAPI) ConsumeIngredient(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}

	if err := svc.Consume(c.Request.Context(), req.Name, req.Quantity, req.Unit); err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consumed"})
}
