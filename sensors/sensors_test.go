package sensors

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestTemperatureRange(t *testing.T) {
	s := NewTemperature()
	for i := 0; i < 100_000; i++ {
		if v := s.Read(); v < 20.0 || v >= 30.0 {
			t.Fatalf("reading %d out of range: %f", i, v)
		}
	}
}

func TestPressureRange(t *testing.T) {
	s := NewPressure()
	for i := 0; i < 100_000; i++ {
		if v := s.Read(); v < 0.9 || v >= 1.1 {
			t.Fatalf("reading %d out of range: %f", i, v)
		}
	}
}

func TestTypesAreConstant(t *testing.T) {
	temp, press := NewTemperature(), NewPressure()
	for i := 0; i < 10; i++ {
		temp.Read()
		press.Read()
		if temp.Type() != "Temperature" {
			t.Fatalf("expected Temperature, got %s", temp.Type())
		}
		if press.Type() != "Pressure" {
			t.Fatalf("expected Pressure, got %s", press.Type())
		}
	}
	if temp.Unit() != "C" || press.Unit() != "bar" {
		t.Fatalf("unexpected units %q %q", temp.Unit(), press.Unit())
	}
}

func TestWithSeedIsDeterministic(t *testing.T) {
	a := NewTemperature(WithSeed(42))
	b := NewTemperature(WithSeed(42))
	for i := 0; i < 50; i++ {
		if va, vb := a.Read(), b.Read(); va != vb {
			t.Fatalf("reading %d differs: %f vs %f", i, va, vb)
		}
	}
}

func TestSensorsOwnTheirSource(t *testing.T) {
	a := NewPressure(WithSeed(7))
	b := NewPressure(WithSeed(7))
	// draining one sensor must not move the other
	for i := 0; i < 10; i++ {
		a.Read()
	}
	ref := NewPressure(WithSeed(7))
	if got, want := b.Read(), ref.Read(); got != want {
		t.Fatalf("expected independent sources, got %f want %f", got, want)
	}
}

// maxSource makes Float64 return its largest value, 1-2^-53.
type maxSource struct{}

func (maxSource) Uint64() uint64 { return math.MaxUint64 }

func TestUniformNeverReturnsUpperBound(t *testing.T) {
	for _, b := range [][2]float64{{20.0, 30.0}, {0.9, 1.1}} {
		u := newUniform(b[0], b[1])
		u.rng = rand.New(maxSource{})
		if v := u.next(); v >= b[1] || v < b[0] {
			t.Fatalf("expected value in [%f, %f), got %v", b[0], b[1], v)
		}
	}
}

type fakeDHT struct {
	temps []float64
	errs  []error
	calls int
}

func (f *fakeDHT) ReadRetry(int) (float64, float64, error) {
	i := f.calls
	f.calls++
	return 50, f.temps[i], f.errs[i]
}

func TestDHT22KeepsLastGoodValue(t *testing.T) {
	dev := &fakeDHT{
		temps: []float64{0, 21.5, 0},
		errs:  []error{errors.New("checksum"), nil, errors.New("timeout")},
	}
	d := &DHT22{Pin: "GPIO4", dev: dev, last: math.NaN()}

	if v := d.Read(); !math.IsNaN(v) {
		t.Fatalf("expected NaN before first good read, got %f", v)
	}
	if v := d.Read(); v != 21.5 {
		t.Fatalf("expected 21.5, got %f", v)
	}
	if v := d.Read(); v != 21.5 {
		t.Fatalf("expected last good value 21.5, got %f", v)
	}
	if d.Type() != "Temperature" || d.Unit() != "C" {
		t.Fatalf("unexpected labels %s %s", d.Type(), d.Unit())
	}
}

func TestReadingJSONEncodesNaNAsNull(t *testing.T) {
	cases := []struct {
		reading Reading
		want    string
	}{
		{
			reading: Reading{"dht22", "Temperature", "C", math.NaN()},
			want:    `{"sensor_id":"dht22","sensor_type":"Temperature","unit":"C","value":null}`,
		},
		{
			reading: Reading{"pressure", "Pressure", "bar", math.Inf(1)},
			want:    `{"sensor_id":"pressure","sensor_type":"Pressure","unit":"bar","value":null}`,
		},
		{
			reading: Reading{"temperature", "Temperature", "C", 21.5},
			want:    `{"sensor_id":"temperature","sensor_type":"Temperature","unit":"C","value":21.5}`,
		},
	}
	for _, tc := range cases {
		raw, err := json.Marshal(tc.reading)
		if err != nil {
			t.Fatalf("marshal %v: %v", tc.reading, err)
		}
		if string(raw) != tc.want {
			t.Fatalf("expected %s, got %s", tc.want, raw)
		}
	}
}
