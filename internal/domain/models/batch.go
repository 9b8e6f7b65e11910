package models

import "time"

// Species identifies the animal species a batch is raised as. Unknown
// species are tolerated everywhere; metric lookups fall back to defaults.
type Species string

const (
	SpeciesBroiler Species = "broiler"
	SpeciesLayer   Species = "layer"
	SpeciesCatfish Species = "catfish"
	SpeciesTilapia Species = "tilapia"
)

// LivestockType groups species into husbandry categories. It gates which
// monitoring evaluators apply to a batch.
type LivestockType string

const (
	LivestockPoultry  LivestockType = "poultry"
	LivestockFish     LivestockType = "fish"
	LivestockRuminant LivestockType = "ruminant"
)

// BatchStatus tracks the lifecycle of a batch.
type BatchStatus string

const (
	BatchActive BatchStatus = "active"
	BatchSold   BatchStatus = "sold"
	BatchClosed BatchStatus = "closed"
)

// Batch is a group of animals acquired and managed together.
type Batch struct {
	ID              string        `bson:"_id" json:"id"`
	FarmID          string        `bson:"farm_id" json:"farm_id"`
	Label           string        `bson:"label" json:"label"`
	Species         Species       `bson:"species" json:"species"`
	LivestockType   LivestockType `bson:"livestock_type" json:"livestock_type"`
	CurrentQuantity int           `bson:"current_quantity" json:"current_quantity"`
	AcquisitionDate time.Time     `bson:"acquisition_date" json:"acquisition_date"`
	Status          BatchStatus   `bson:"status" json:"status"`
}

// SupportsWaterQuality reports whether water-quality evaluation applies to
// this batch. Only aquatic batches carry water readings.
func (b Batch) SupportsWaterQuality() bool {
	return b.LivestockType == LivestockFish
}

// IsActive reports whether the batch is still under management.
func (b Batch) IsActive() bool {
	return b.Status == BatchActive
}
