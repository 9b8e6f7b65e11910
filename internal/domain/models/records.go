package models

import "time"

// WeightSample captures an average-weight measurement of a batch on a date.
// Samples ordered ascending by date define the batch growth timeline.
type WeightSample struct {
	BatchID         string    `bson:"batch_id" json:"batch_id"`
	Date            time.Time `bson:"date" json:"date"`
	SampleSize      int       `bson:"sample_size" json:"sample_size"`
	AverageWeightKg float64   `bson:"average_weight_kg" json:"average_weight_kg"`
}

// FeedRecord captures feed given to a batch.
type FeedRecord struct {
	BatchID    string    `bson:"batch_id" json:"batch_id"`
	Date       time.Time `bson:"date" json:"date"`
	FeedType   string    `bson:"feed_type" json:"feed_type"`
	QuantityKg float64   `bson:"quantity_kg" json:"quantity_kg"`
	Cost       float64   `bson:"cost" json:"cost"`
}

// MortalityEvent captures animal losses on a date, attributed to a batch
// and optionally the structure (pond, pen, coop) where they occurred.
type MortalityEvent struct {
	BatchID     string    `bson:"batch_id" json:"batch_id"`
	StructureID string    `bson:"structure_id,omitempty" json:"structure_id,omitempty"`
	Date        time.Time `bson:"date" json:"date"`
	Quantity    int       `bson:"quantity" json:"quantity"`
	Cause       string    `bson:"cause" json:"cause"`
}

// SaleRecord captures a sales transaction.
type SaleRecord struct {
	FarmID      string    `bson:"farm_id" json:"farm_id"`
	BatchID     string    `bson:"batch_id,omitempty" json:"batch_id,omitempty"`
	Date        time.Time `bson:"date" json:"date"`
	Client      string    `bson:"client" json:"client"`
	TotalAmount float64   `bson:"total_amount" json:"total_amount"`
}

// ExpenseRecord captures an operating expense.
type ExpenseRecord struct {
	FarmID   string    `bson:"farm_id" json:"farm_id"`
	Date     time.Time `bson:"date" json:"date"`
	Category string    `bson:"category" json:"category"`
	Amount   float64   `bson:"amount" json:"amount"`
}
