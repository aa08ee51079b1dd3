package lr

// Encoder writes one property or bare value into a generator. A non empty name
// is written as the field name, an empty name writes a bare value. Encoders
// report whether anything was written; skipping a property leaves the
// generator untouched.
type Encoder interface {
	Encode(name string, value any, out *Generator) (bool, error)
}

type EncoderFunc func(name string, value any, out *Generator) (bool, error)

func (f EncoderFunc) Encode(name string, value any, out *Generator) (bool, error) {
	return f(name, value, out)
}
