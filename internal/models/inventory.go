package models

import (
	"encoding/json"
	"math"
	"time"

	"github.com/jinzhu/gorm"
)

// InventoryItem represents one pantry entry owned by a single user.
//
// The item carries two quantity views: the user view (Quantity/Unit, the
// numbers the owner typed) and the canonical view (BaseQuantity/BaseUnit,
// the machine-comparable numbers all merging, consumption and availability
// math runs on). OriginalBaseQuantity is the canonical quantity at the last
// "full" state and is the denominator for StockPercentage.
type InventoryItem struct {
	gorm.Model
	ItemID               string `gorm:"column:item_id;unique_index"`
	OwnerID              string `gorm:"index"`
	Name                 string
	NormalizedKey        string `gorm:"index"`
	Category             string
	Status               string
	Quantity             float64
	Unit                 string
	BaseQuantity         float64
	BaseUnit             string
	OriginalBaseQuantity float64
	StockPercentage      int
	ExpiryDate           *time.Time
	UsageHistoryJSON     string `gorm:"type:text"`
	// Transient field (ignored by GORM)
	UsageHistory []UsageEvent `gorm:"-"`
}

// TableName sets the table name for InventoryItem
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// UsageEvent represents one consumption record: the canonical amount taken
// from the item at a point in time. Immutable once appended.
type UsageEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Amount    float64   `json:"amount"`
}

// GetUsageHistory returns the deserialized usage history, oldest first
func (i *InventoryItem) GetUsageHistory() ([]UsageEvent, error) {
	if len(i.UsageHistory) > 0 {
		return i.UsageHistory, nil
	}
	var events []UsageEvent
	if i.UsageHistoryJSON == "" {
		return events, nil
	}
	if err := json.Unmarshal([]byte(i.UsageHistoryJSON), &events); err != nil {
		return nil, err
	}
	i.UsageHistory = events
	return events, nil
}

// SetUsageHistory serializes the usage history for storage
func (i *InventoryItem) SetUsageHistory(events []UsageEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	i.UsageHistoryJSON = string(data)
	i.UsageHistory = events
	return nil
}

// AppendUsageEvent appends a single event to the usage history
func (i *InventoryItem) AppendUsageEvent(event UsageEvent) error {
	events, err := i.GetUsageHistory()
	if err != nil {
		return err
	}
	return i.SetUsageHistory(append(events, event))
}

// UnitRatio returns the item's canonical-per-user-unit ratio inferred from
// its current quantities. ok is false when the user quantity is zero and no
// ratio can be inferred.
func (i *InventoryItem) UnitRatio() (float64, bool) {
	if i.Quantity == 0 {
		return 0, false
	}
	ratio := i.BaseQuantity / i.Quantity
	if ratio == 0 {
		return 0, false
	}
	return ratio, true
}

// RecomputeStockPercentage derives the stock percentage from the canonical
// quantities, clamped to [0,100]. Must be called in the same write as any
// change to BaseQuantity or OriginalBaseQuantity.
func (i *InventoryItem) RecomputeStockPercentage() {
	if i.OriginalBaseQuantity <= 0 {
		i.StockPercentage = 0
		return
	}
	pct := int(math.Round(100 * i.BaseQuantity / i.OriginalBaseQuantity))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	i.StockPercentage = pct
}

// RecomputeStatus derives the status from expiry and stock percentage.
// An expiry date in the past overrides the percentage-based statuses.
func (i *InventoryItem) RecomputeStatus(now time.Time) {
	if i.ExpiryDate != nil && i.ExpiryDate.Before(now) {
		i.Status = string(StatusExpiring)
		return
	}
	if i.StockPercentage <= 20 {
		i.Status = string(StatusLow)
		return
	}
	i.Status = string(StatusGood)
}

// InventoryStatus represents the status of an inventory item
type InventoryStatus string

const (
	// Inventory statuses
	StatusGood     InventoryStatus = "good"
	StatusLow      InventoryStatus = "low"
	StatusExpiring InventoryStatus = "expiring"
)

// InventoryCategory represents the category grouping of an inventory item
type InventoryCategory string

const (
	// Inventory categories
	CategoryProtein    InventoryCategory = "protein"
	CategoryProduce    InventoryCategory = "produce"
	CategoryDairy      InventoryCategory = "dairy"
	CategoryDryGoods   InventoryCategory = "dry_goods"
	CategorySpices     InventoryCategory = "spices"
	CategoryCondiments InventoryCategory = "condiments"
	CategoryBeverages  InventoryCategory = "beverages"
	CategoryOther      InventoryCategory = "other"
)
