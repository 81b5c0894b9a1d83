package sensors

// Pressure simulates a barometric sensor reporting bar.
type Pressure struct {
	gen uniform
}

func NewPressure(opts ...Option) *Pressure {
	return &Pressure{gen: newUniform(0.9, 1.1, opts...)}
}

func (p *Pressure) Type() string {
	return "Pressure"
}

func (p *Pressure) Name() string {
	return "pressure"
}

func (p *Pressure) Unit() string {
	return "bar"
}

// Read returns a value in [0.9, 1.1).
func (p *Pressure) Read() float64 {
	return p.gen.next()
}
