package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Timestamp string `msgpack:"ts" json:"ts"`
	Payload   []byte `msgpack:"p" json:"p"`
}

func TestJsonCodec_RoundTrip(t *testing.T) {
	c := NewJsonCodec()
	in := map[string]interface{}{"a": 1, "b": "x"}
	b, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := map[string]interface{}{}
	if err := c.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out["b"].(string) != "x" {
		t.Fatalf("unexpected round-trip: %#v", out)
	}
}

func TestSerializers_EnvelopeRoundTrip(t *testing.T) {
	serializers := []Serializer{
		NewJsonCodec(),
		NewVmihailencoMsgpackCodec(),
		NewShamatonMsgpackCodec(),
		NewHashicorpMsgpackCodec(),
	}

	in := testEnvelope{
		Timestamp: "2024-01-15T10:30:00.123Z-001A-node-alpha",
		Payload:   []byte("hello"),
	}

	for _, s := range serializers {
		t.Run(s.Name(), func(t *testing.T) {
			data, err := s.Marshal(in)
			require.NoError(t, err)

			var out testEnvelope
			require.NoError(t, s.Unmarshal(data, &out))
			assert.Equal(t, in.Timestamp, out.Timestamp)
			assert.Equal(t, in.Payload, out.Payload)
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "msgpack", "shamaton-msgpack", "hashicorp-msgpack"} {
		s, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
	}

	_, err := ByName("xml")
	assert.Error(t, err)
	assert.Contains(t, Names(), "msgpack")
}
