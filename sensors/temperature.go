package sensors

// Temperature simulates an ambient temperature probe in degrees Celsius.
type Temperature struct {
	gen uniform
}

func NewTemperature(opts ...Option) *Temperature {
	return &Temperature{gen: newUniform(20.0, 30.0, opts...)}
}

func (t *Temperature) Type() string {
	return "Temperature"
}

func (t *Temperature) Name() string {
	return "temperature"
}

func (t *Temperature) Unit() string {
	return "C"
}

// Read returns a value in [20.0, 30.0).
func (t *Temperature) Read() float64 {
	return t.gen.next()
}
