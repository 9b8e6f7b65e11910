package models

import "time"

// WaterQualityReading captures a manual water-chemistry sample for an
// aquatic batch. Only meaningful for batches whose livestock type is fish.
type WaterQualityReading struct {
	BatchID            string    `bson:"batch_id" json:"batch_id"`
	Date               time.Time `bson:"date" json:"date"`
	PH                 float64   `bson:"ph" json:"ph"`
	TemperatureCelsius float64   `bson:"temperature_celsius" json:"temperature_celsius"`
	DissolvedOxygenMgL float64   `bson:"dissolved_oxygen_mgl" json:"dissolved_oxygen_mgl"`
	AmmoniaMgL         float64   `bson:"ammonia_mgl" json:"ammonia_mgl"`
}
