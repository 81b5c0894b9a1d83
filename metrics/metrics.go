package metrics

import (
	"github.com/Uranury/sensorlog/recorder"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports sample counts and the latest reading of each sensor type.
type Metrics struct {
	samples  prometheus.Counter
	readings *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensorlog_samples_total",
			Help: "Total samples taken across all sensors.",
		}),
		readings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sensorlog_reading",
			Help: "Most recent reading per sensor.",
		}, []string{"sensor_id", "type"}),
	}
	reg.MustRegister(m.samples, m.readings)
	return m
}

// Write records s. An unreadable value leaves the previous gauge value.
func (m *Metrics) Write(s recorder.Sample) error {
	m.samples.Inc()
	for _, r := range s.Readings {
		if !r.Valid() {
			continue
		}
		m.readings.WithLabelValues(r.SensorID, r.SensorType).Set(r.Value)
	}
	return nil
}
