package models

import "time"

// SensorType enumerates the telemetry parameters the farm monitors.
type SensorType string

const (
	SensorTemperature     SensorType = "temperature"
	SensorHumidity        SensorType = "humidity"
	SensorPH              SensorType = "ph"
	SensorDissolvedOxygen SensorType = "dissolved_oxygen"
	SensorAmmonia         SensorType = "ammonia"
)

// MonitoredSensorTypes lists every type the environmental aggregator
// considers, in a fixed presentation order.
var MonitoredSensorTypes = []SensorType{
	SensorTemperature,
	SensorHumidity,
	SensorPH,
	SensorDissolvedOxygen,
	SensorAmmonia,
}

// Sensor is a telemetry device installed in a structure.
type Sensor struct {
	ID                     string     `bson:"_id" json:"id"`
	StructureID            string     `bson:"structure_id" json:"structure_id"`
	Type                   SensorType `bson:"type" json:"type"`
	Label                  string     `bson:"label" json:"label"`
	PollingIntervalMinutes int        `bson:"polling_interval_minutes" json:"polling_interval_minutes"`
}

// SensorReading is a single telemetry sample. StructureID is denormalized
// at ingest so windowed structure queries avoid a join.
type SensorReading struct {
	SensorID    string     `bson:"sensor_id" json:"sensor_id"`
	StructureID string     `bson:"structure_id" json:"structure_id"`
	Type        SensorType `bson:"type" json:"type"`
	Value       float64    `bson:"value" json:"value"`
	RecordedAt  time.Time  `bson:"recorded_at" json:"recorded_at"`
}

// SensorStatus is the derived health state of a device. It is computed on
// every read from the age of the latest reading, never stored.
type SensorStatus string

const (
	SensorOnline  SensorStatus = "online"
	SensorStale   SensorStatus = "stale"
	SensorOffline SensorStatus = "offline"
)
