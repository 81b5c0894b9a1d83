package storage

import (
	"log"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/Uranury/sensorlog/recorder"
)

const Measurement = "sensor_data"

// InfluxSink writes every reading as a point through the non-blocking
// write API. Write errors arrive asynchronously and are only logged.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	done     chan struct{}
}

func NewInfluxSink(client influxdb2.Client, org, bucket string) *InfluxSink {
	s := &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPI(org, bucket),
		done:     make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		for err := range s.writeAPI.Errors() {
			log.Printf("influx write error: %v", err)
		}
	}()
	return s
}

func (s *InfluxSink) Write(sample recorder.Sample) error {
	for _, p := range Points(sample) {
		s.writeAPI.WritePoint(p)
	}
	return nil
}

// Close flushes pending points and closes the client.
func (s *InfluxSink) Close() error {
	s.writeAPI.Flush()
	s.client.Close()
	<-s.done
	return nil
}

// Points converts a sample into one point per readable value. The
// sensor_id tag keeps sensors of the same type in separate series.
func Points(sample recorder.Sample) []*write.Point {
	points := make([]*write.Point, 0, len(sample.Readings))
	for _, r := range sample.Readings {
		if !r.Valid() {
			continue
		}
		p := influxdb2.NewPointWithMeasurement(Measurement).
			AddTag("sensor", r.SensorType).
			AddTag("sensor_id", r.SensorID).
			AddTag("unit", r.Unit).
			AddField("value", r.Value).
			SetTime(sample.Timestamp)
		points = append(points, p)
	}
	return points
}
