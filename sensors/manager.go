package sensors

import "strconv"

type entry struct {
	id     string
	sensor Sensor
}

// Manager owns an ordered set of sensors. Every accessor reports sensors
// in the order they were added.
type Manager struct {
	sensors []entry
	seen    map[string]int
}

func NewManager() *Manager {
	return &Manager{seen: make(map[string]int)}
}

// Add appends s. The same variant may be added more than once; the n-th
// sensor sharing a name gets the ID "<name>-<n>".
func (m *Manager) Add(s Sensor) {
	if m.seen == nil {
		m.seen = make(map[string]int)
	}
	name := s.Name()
	m.seen[name]++
	id := name
	if n := m.seen[name]; n > 1 {
		id = name + "-" + strconv.Itoa(n)
	}
	m.sensors = append(m.sensors, entry{id: id, sensor: s})
}

func (m *Manager) Len() int {
	return len(m.sensors)
}

// ReadAll reads every sensor exactly once.
func (m *Manager) ReadAll() []float64 {
	values := make([]float64, 0, len(m.sensors))
	for _, e := range m.sensors {
		values = append(values, e.sensor.Read())
	}
	return values
}

// Types lists the type label of every sensor.
func (m *Manager) Types() []string {
	types := make([]string, 0, len(m.sensors))
	for _, e := range m.sensors {
		types = append(types, e.sensor.Type())
	}
	return types
}

// IDs lists the unique ID of every sensor.
func (m *Manager) IDs() []string {
	ids := make([]string, 0, len(m.sensors))
	for _, e := range m.sensors {
		ids = append(ids, e.id)
	}
	return ids
}

// Columns lists "Type(Unit)" headers, e.g. "Temperature(C)". A header
// already taken by an earlier sensor is suffixed with the sensor ID,
// e.g. "Temperature(C)[dht22]".
func (m *Manager) Columns() []string {
	cols := make([]string, 0, len(m.sensors))
	taken := make(map[string]bool, len(m.sensors))
	for _, e := range m.sensors {
		col := e.sensor.Type() + "(" + e.sensor.Unit() + ")"
		if taken[col] {
			col += "[" + e.id + "]"
		}
		taken[col] = true
		cols = append(cols, col)
	}
	return cols
}

// Sample reads every sensor once and keeps each value next to its labels.
func (m *Manager) Sample() []Reading {
	readings := make([]Reading, 0, len(m.sensors))
	for _, e := range m.sensors {
		readings = append(readings, Reading{
			SensorID:   e.id,
			SensorType: e.sensor.Type(),
			Unit:       e.sensor.Unit(),
			Value:      e.sensor.Read(),
		})
	}
	return readings
}
