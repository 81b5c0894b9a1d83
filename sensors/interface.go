package sensors

import (
	"encoding/json"
	"math"
)

// Sensor interface that all sensors must implement
type Sensor interface {
	Read() float64
	Type() string
	Unit() string
	Name() string
}

// Reading is one labeled value taken from a registered sensor. SensorID is
// unique within a Manager; SensorType is not.
type Reading struct {
	SensorID   string
	SensorType string
	Unit       string
	Value      float64
}

// Valid reports whether Value is a finite number.
func (r Reading) Valid() bool {
	return !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0)
}

// MarshalJSON encodes a non-finite value as null.
func (r Reading) MarshalJSON() ([]byte, error) {
	var value *float64
	if r.Valid() {
		value = &r.Value
	}
	return json.Marshal(struct {
		SensorID   string   `json:"sensor_id"`
		SensorType string   `json:"sensor_type"`
		Unit       string   `json:"unit"`
		Value      *float64 `json:"value"`
	}{r.SensorID, r.SensorType, r.Unit, value})
}
