package lr

import (
	"fmt"
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// JSON is the jsoniter configuration used for generators and generic values.
var JSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

type frame struct {
	object  bool
	entries int
	named   bool
}

// Generator is a forward only JSON writer over a pooled jsoniter stream. It
// tracks separators so encoders can skip properties without leaving dangling
// commas. Generators are not safe for concurrent use.
type Generator struct {
	api    jsoniter.API
	stream *jsoniter.Stream
	frames []frame
	err    error
}

func NewGenerator(api jsoniter.API, w io.Writer) *Generator {
	return &Generator{
		api:    api,
		stream: api.BorrowStream(w),
		frames: make([]frame, 0, 8),
	}
}

// Release hands the underlying stream back to its pool. The writer is not closed.
func (g *Generator) Release() {
	if g.stream != nil {
		g.api.ReturnStream(g.stream)
		g.stream = nil
	}
}

func (g *Generator) Err() error {
	if g.err != nil {
		return g.err
	}
	if g.stream != nil && g.stream.Error != nil {
		return errors.Wrap(g.stream.Error, "write json")
	}
	return nil
}

func (g *Generator) Flush() error {
	if err := g.Err(); err != nil {
		return err
	}
	if err := g.stream.Flush(); err != nil {
		return errors.Wrap(err, "flush json")
	}
	return nil
}

func (g *Generator) Buffered() int {
	return g.stream.Buffered()
}

// Depth is the number of open objects and arrays.
func (g *Generator) Depth() int {
	return len(g.frames)
}

func (g *Generator) fail(format string, args ...any) {
	if g.err == nil {
		g.err = InvalidConfiguration(fmt.Sprintf(format, args...))
	}
}

func (g *Generator) top() *frame {
	if len(g.frames) == 0 {
		return nil
	}
	return &g.frames[len(g.frames)-1]
}

// value positions the stream for a value and reports whether writing may proceed.
func (g *Generator) value() bool {
	if g.Err() != nil {
		return false
	}

	f := g.top()
	switch {
	case f == nil:
	case f.object:
		if !f.named {
			g.fail("value written inside an object without a field name")
			return false
		}
		f.named = false
	default:
		if f.entries > 0 {
			g.stream.WriteMore()
		}
		f.entries++
	}

	return true
}

// Field writes an object field name. The next call must write its value.
func (g *Generator) Field(name string) {
	if g.Err() != nil {
		return
	}

	f := g.top()
	if f == nil || !f.object {
		g.fail("field %q written outside of an object", name)
		return
	}
	if f.named {
		g.fail("field %q written before the previous field's value", name)
		return
	}

	if f.entries > 0 {
		g.stream.WriteMore()
	}
	f.entries++
	f.named = true
	g.stream.WriteObjectField(name)
}

// Name writes a field name unless name is empty, which denotes a bare value.
func (g *Generator) Name(name string) {
	if name != "" {
		g.Field(name)
	}
}

func (g *Generator) StartObject() {
	if g.value() {
		g.stream.WriteObjectStart()
		g.frames = append(g.frames, frame{object: true})
	}
}

func (g *Generator) EndObject() {
	if g.Err() != nil {
		return
	}

	f := g.top()
	if f == nil || !f.object || f.named {
		g.fail("unbalanced object end")
		return
	}

	g.frames = g.frames[:len(g.frames)-1]
	g.stream.WriteObjectEnd()
}

func (g *Generator) StartArray() {
	if g.value() {
		g.stream.WriteArrayStart()
		g.frames = append(g.frames, frame{})
	}
}

func (g *Generator) EndArray() {
	if g.Err() != nil {
		return
	}

	f := g.top()
	if f == nil || f.object {
		g.fail("unbalanced array end")
		return
	}

	g.frames = g.frames[:len(g.frames)-1]
	g.stream.WriteArrayEnd()
}

func (g *Generator) String(s string) {
	if g.value() {
		g.stream.WriteString(s)
	}
}

func (g *Generator) Int(i int64) {
	if g.value() {
		g.stream.WriteInt64(i)
	}
}

func (g *Generator) Uint(u uint64) {
	if g.value() {
		g.stream.WriteUint64(u)
	}
}

func (g *Generator) Float(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if g.err == nil {
			g.err = UnsupportedValue("", CategoryNumeric, f, errors.New("non finite number"))
		}
		return
	}
	if g.value() {
		g.stream.WriteFloat64(f)
	}
}

func (g *Generator) Float32(f float32) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		if g.err == nil {
			g.err = UnsupportedValue("", CategoryNumeric, f, errors.New("non finite number"))
		}
		return
	}
	if g.value() {
		g.stream.WriteFloat32(f)
	}
}

func (g *Generator) Bool(b bool) {
	if g.value() {
		g.stream.WriteBool(b)
	}
}

func (g *Generator) Null() {
	if g.value() {
		g.stream.WriteNil()
	}
}

// Raw writes an already encoded JSON value.
func (g *Generator) Raw(encoded []byte) {
	if g.value() {
		g.stream.Write(encoded)
	}
}

// Value writes any Go value using the generator's jsoniter configuration.
func (g *Generator) Value(v any) {
	if g.value() {
		g.stream.WriteVal(v)
	}
}
