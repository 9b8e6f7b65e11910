package models

import "time"

// DailySummary represents the aggregated daily farm data stored in MongoDB.
type DailySummary struct {
	FarmID         string    `bson:"farm_id" json:"farm_id"`
	Date           time.Time `bson:"date" json:"date"`
	FeedConsumedKg float64   `bson:"feed_consumed_kg" json:"feed_consumed_kg"`
	Mortality      int       `bson:"mortality" json:"mortality"`
	Revenue        float64   `bson:"revenue" json:"revenue"`
	Expenses       float64   `bson:"expenses" json:"expenses"`
	Profit         float64   `bson:"profit" json:"profit"`
	ProfitMargin   float64   `bson:"profit_margin" json:"profit_margin"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
