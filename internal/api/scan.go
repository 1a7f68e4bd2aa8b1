package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/pantry"
)

// ScanCandidate represents one item the vision collaborator recognized.
// The estimated quantity label is the scanner's coarse judgement of how
// much is left; mapping it to quantities is the caller's job, not the
// engine's.
type ScanCandidate struct {
	Name          string     `json:"name" binding:"required"`
	Category      string     `json:"category"`
	QuantityLabel string     `json:"quantity_label"`
	ExpiryDate    *time.Time `json:"expiry_date"`
}

// quantityLabelHint maps a scanner quantity label to an item count and a
// stock-percentage hint.
func quantityLabelHint(label string) (count float64, percent int) {
	switch label {
	case "multiple":
		return 2, 100
	case "half":
		return 1, 50
	case "almost empty":
		return 1, 10
	default: // "full" and anything unrecognized
		return 1, 100
	}
}

// ScanIntake feeds scanner candidates into the merge reconciler. Each
// candidate is added as a counted item, then its stock percentage is preset
// from the scanner's quantity label.
func (p *PantryAPI) ScanIntake(c *gin.Context) {
	var req struct {
		Candidates []ScanCandidate `json:"candidates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, ok := p.service(c)
	if !ok {
		return
	}

	added := make([]itemView, 0, len(req.Candidates))
	var failed []gin.H
	for _, candidate := range req.Candidates {
		count, percent := quantityLabelHint(candidate.QuantityLabel)

		itemID, err := svc.Add(c.Request.Context(), candidate.Name, count, "count", pantry.AddOptions{
			Category:   candidate.Category,
			ExpiryDate: candidate.ExpiryDate,
		})
		if err != nil {
			failed = append(failed, gin.H{"name": candidate.Name, "error": err.Error()})
			continue
		}
		if percent < 100 {
			if err := svc.AdjustStockPercent(c.Request.Context(), itemID, percent); err != nil {
				failed = append(failed, gin.H{"name": candidate.Name, "error": err.Error()})
				continue
			}
		}

		item, _ := svc.Item(itemID)
		added = append(added, viewOf(svc, item))
	}

	status := http.StatusOK
	if len(added) == 0 && len(failed) > 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"added": added, "failed": failed})
}
