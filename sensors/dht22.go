package sensors

import (
	"log"
	"math"

	"github.com/MichaelS11/go-dht"
)

// reader is the part of *dht.DHT used by DHT22.
type reader interface {
	ReadRetry(maxRetries int) (humidity float64, temperature float64, err error)
}

// DHT22 reads temperature from a physical DHT22 on a GPIO pin.
type DHT22 struct {
	Pin  string
	dev  reader
	last float64
}

func NewDHT22(pin string) (*DHT22, error) {
	if err := dht.HostInit(); err != nil {
		return nil, err
	}

	dev, err := dht.NewDHT(pin, dht.Celsius, "")
	if err != nil {
		return nil, err
	}

	return &DHT22{Pin: pin, dev: dev, last: math.NaN()}, nil
}

func (d *DHT22) Type() string {
	return "Temperature"
}

func (d *DHT22) Name() string {
	return "dht22"
}

func (d *DHT22) Unit() string {
	return "C"
}

// Read returns the latest temperature. A failed read keeps the previous
// value, which is NaN until the first successful read.
func (d *DHT22) Read() float64 {
	_, temperature, err := d.dev.ReadRetry(11)
	if err != nil {
		log.Printf("Error reading DHT22 on %s: %v", d.Pin, err)
		return d.last
	}
	d.last = temperature
	return temperature
}
