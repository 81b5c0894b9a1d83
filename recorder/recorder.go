package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Uranury/sensorlog/sensors"
)

// Sample is one pass over every registered sensor.
type Sample struct {
	Elapsed   time.Duration
	Timestamp time.Time
	Readings  []sensors.Reading
}

// ElapsedSeconds is the run time the sample was taken at.
func (s Sample) ElapsedSeconds() float64 {
	return s.Elapsed.Seconds()
}

func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ElapsedS  float64           `json:"elapsed_s"`
		Timestamp time.Time         `json:"timestamp"`
		Readings  []sensors.Reading `json:"readings"`
	}{s.ElapsedSeconds(), s.Timestamp, s.Readings})
}

// Sink receives every sample. Sinks that also implement io.Closer are
// closed when the run ends.
type Sink interface {
	Write(s Sample) error
}

// Recorder drives the sampling loop.
type Recorder struct {
	Manager  *sensors.Manager
	Sinks    []Sink
	Samples  int
	Interval time.Duration
	Clock    Clock
}

func New(m *sensors.Manager, samples int, interval time.Duration, sinks ...Sink) *Recorder {
	return &Recorder{
		Manager:  m,
		Sinks:    sinks,
		Samples:  samples,
		Interval: interval,
		Clock:    SystemClock{},
	}
}

// Run takes Samples samples, writing each to every sink in order and
// sleeping Interval after each one. The first failing sink stops the run.
func (r *Recorder) Run(ctx context.Context) (err error) {
	defer func() {
		err = errors.Join(err, r.close())
	}()

	clock := r.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	for i := 0; i < r.Samples; i++ {
		s := Sample{
			Elapsed:   time.Duration(i) * r.Interval,
			Timestamp: clock.Now(),
			Readings:  r.Manager.Sample(),
		}
		for _, sink := range r.Sinks {
			if err := sink.Write(s); err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
		}
		if err := clock.Sleep(ctx, r.Interval); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) close() error {
	var errs []error
	for _, sink := range r.Sinks {
		if c, ok := sink.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
