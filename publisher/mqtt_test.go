package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Uranury/sensorlog/recorder"
	"github.com/Uranury/sensorlog/sensors"
)

type wireReading struct {
	SensorID string   `json:"sensor_id"`
	Value    *float64 `json:"value"`
}

type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type fakeClient struct {
	topic        string
	payloads     [][]byte
	err          error
	disconnected bool
}

func (f *fakeClient) Publish(topic string, _ byte, _ bool, payload interface{}) mqtt.Token {
	f.topic = topic
	f.payloads = append(f.payloads, payload.([]byte))
	return doneToken{err: f.err}
}

func (f *fakeClient) Disconnect(uint) { f.disconnected = true }

func TestMQTTSinkPublishesJSON(t *testing.T) {
	fc := &fakeClient{}
	sink := &MQTTSink{client: fc, topic: "sensors/samples"}

	s := recorder.Sample{
		Elapsed:   2 * time.Second,
		Timestamp: time.Date(2024, 5, 1, 9, 0, 2, 0, time.UTC),
		Readings:  []sensors.Reading{{SensorType: "Temperature", Unit: "C", Value: 22}},
	}
	if err := sink.Write(s); err != nil {
		t.Fatalf("write: %v", err)
	}
	if fc.topic != "sensors/samples" {
		t.Fatalf("unexpected topic %s", fc.topic)
	}

	var got struct {
		ElapsedS float64       `json:"elapsed_s"`
		Readings []wireReading `json:"readings"`
	}
	if err := json.Unmarshal(fc.payloads[0], &got); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if got.ElapsedS != 2 || len(got.Readings) != 1 || got.Readings[0].Value == nil || *got.Readings[0].Value != 22 {
		t.Fatalf("unexpected payload %s", fc.payloads[0])
	}

	if err := sink.Close(); err != nil || !fc.disconnected {
		t.Fatalf("expected disconnect, err=%v", err)
	}
}

func TestMQTTSinkPublishError(t *testing.T) {
	boom := errors.New("not connected")
	sink := &MQTTSink{client: &fakeClient{err: boom}, topic: "t"}
	if err := sink.Write(recorder.Sample{}); !errors.Is(err, boom) {
		t.Fatalf("expected publish error, got %v", err)
	}
}

type unreadable struct{}

func (unreadable) Read() float64 { return math.NaN() }
func (unreadable) Type() string  { return "Temperature" }
func (unreadable) Unit() string  { return "C" }
func (unreadable) Name() string  { return "dht22" }

type noSleep struct{}

func (noSleep) Now() time.Time                             { return time.Time{} }
func (noSleep) Sleep(context.Context, time.Duration) error { return nil }

func TestRunPublishesUnreadableSensorAsNull(t *testing.T) {
	m := sensors.NewManager()
	m.Add(sensors.NewPressure())
	m.Add(unreadable{})

	fc := &fakeClient{}
	r := recorder.New(m, 20, time.Second, &MQTTSink{client: fc, topic: "sensors/samples"})
	r.Clock = noSleep{}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(fc.payloads) != 20 {
		t.Fatalf("expected 20 published samples, got %d", len(fc.payloads))
	}

	var got struct {
		Readings []wireReading `json:"readings"`
	}
	if err := json.Unmarshal(fc.payloads[0], &got); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(got.Readings) != 2 || got.Readings[0].Value == nil || got.Readings[1].Value != nil {
		t.Fatalf("expected pressure value and null temperature, got %s", fc.payloads[0])
	}
	if got.Readings[1].SensorID != "dht22" {
		t.Fatalf("unexpected sensor id %s", got.Readings[1].SensorID)
	}
}
