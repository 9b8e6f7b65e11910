package models

import "time"

// InventoryKind distinguishes consumable stock categories.
type InventoryKind string

const (
	InventoryFeed       InventoryKind = "feed"
	InventoryMedication InventoryKind = "medication"
)

// InventoryItem is a consumable stock line (feed bags, medication doses).
type InventoryItem struct {
	ID                string        `bson:"_id" json:"id"`
	FarmID            string        `bson:"farm_id" json:"farm_id"`
	Name              string        `bson:"name" json:"name"`
	Kind              InventoryKind `bson:"kind" json:"kind"`
	Quantity          float64       `bson:"quantity" json:"quantity"`
	Capacity          float64       `bson:"capacity" json:"capacity"`
	Unit              string        `bson:"unit" json:"unit"`
	LowStockThreshold float64       `bson:"low_stock_threshold" json:"low_stock_threshold"`
	ExpiryDate        *time.Time    `bson:"expiry_date,omitempty" json:"expiry_date,omitempty"`
}
