package lr

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorSeparatesEntries(t *testing.T) {
	var buffer bytes.Buffer
	out := NewGenerator(JSON, &buffer)
	defer out.Release()

	out.StartObject()
	out.Field("a")
	out.Int(1)
	out.Name("")
	out.Field("b")
	out.StartArray()
	out.String("x")
	out.Bool(true)
	out.Null()
	out.StartObject()
	out.EndObject()
	out.EndArray()
	out.Field("c")
	out.Raw([]byte(`{"raw":1}`))
	out.EndObject()

	require.NoError(t, out.Flush())
	assert.Equal(t, `{"a":1,"b":["x",true,null,{}],"c":{"raw":1}}`, buffer.String())
	assert.Equal(t, 0, out.Depth())
}

func TestGeneratorRejectsMisuse(t *testing.T) {
	cases := map[string]func(out *Generator){
		"value without field": func(out *Generator) {
			out.StartObject()
			out.String("x")
		},
		"field outside object": func(out *Generator) {
			out.StartArray()
			out.Field("x")
		},
		"two fields": func(out *Generator) {
			out.StartObject()
			out.Field("x")
			out.Field("y")
		},
		"unbalanced end": func(out *Generator) {
			out.StartArray()
			out.EndObject()
		},
	}

	for name, write := range cases {
		out := NewGenerator(JSON, &discard{})
		write(out)

		var configuration *ConfigurationError
		assert.True(t, errors.As(out.Err(), &configuration), name)
		out.Release()
	}
}

func TestGeneratorRejectsNonFiniteFloats(t *testing.T) {
	out := NewGenerator(JSON, &discard{})
	defer out.Release()

	out.StartArray()
	out.Float(math.Inf(-1))

	var unsupported *UnsupportedValueError
	assert.True(t, errors.As(out.Err(), &unsupported))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestGeneratorReportsWriteFailures(t *testing.T) {
	out := NewGenerator(JSON, failingWriter{})
	defer out.Release()

	out.String("x")
	assert.Error(t, out.Flush())
}
