package lr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeProperty encodes a single property inside an object and returns the object.
func encodeProperty(t *testing.T, encoder Encoder, name string, value any) (string, bool) {
	t.Helper()

	var buffer bytes.Buffer
	out := NewGenerator(JSON, &buffer)
	defer out.Release()

	out.StartObject()
	written, err := encoder.Encode(name, value, out)
	require.NoError(t, err)
	out.EndObject()
	require.NoError(t, out.Flush())

	return buffer.String(), written
}

func encodeDocument(t *testing.T, service *EncoderService, entity Described, objects any) string {
	t.Helper()

	var buffer bytes.Buffer
	require.NoError(t, service.Write(&buffer, service.DataEncoder(entity), objects))
	return buffer.String()
}
