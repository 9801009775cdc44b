package hlc

import (
	"errors"
	"fmt"
)

const (
	flagCompressed byte = 1 << iota
	flagEncrypted
)

var ErrEnvelopeTooShort = errors.New("envelope too short")

// Envelope carries a payload stamped with the sender's clock
type Envelope struct {
	Timestamp Timestamp
	Payload   []byte
}

// The timestamp travels in canonical form so every codec encodes it identically
type envelopeWire struct {
	Timestamp string `msgpack:"ts" json:"ts"`
	Payload   []byte `msgpack:"p" json:"p"`
}

// Stamper seals outgoing payloads with a fresh timestamp and merges the timestamps of
// incoming ones. Wire layout is one flags byte followed by the codec output, which is
// optionally compressed and then encrypted with the flags byte as additional data.
type Stamper struct {
	clock  *Clock
	config *Config
}

// NewStamper creates a stamper using the clock's codec, compression and encryption settings
func NewStamper(clock *Clock) *Stamper {
	return &Stamper{clock: clock, config: clock.config}
}

// Seal increments the node's clock and encodes the payload with the new timestamp
func (s *Stamper) Seal(nodeID string, payload []byte) ([]byte, Timestamp, error) {
	ts, err := s.clock.Increment(nodeID)
	if err != nil {
		return nil, Timestamp{}, err
	}

	data, err := s.Encode(Envelope{Timestamp: ts, Payload: payload})
	if err != nil {
		return nil, Timestamp{}, err
	}
	return data, ts, nil
}

// Open decodes an envelope and merges its timestamp into the node's clock
func (s *Stamper) Open(nodeID string, data []byte) (Envelope, Timestamp, error) {
	env, err := s.Decode(data)
	if err != nil {
		return Envelope{}, Timestamp{}, err
	}

	ts, err := s.clock.Merge(nodeID, env.Timestamp)
	if err != nil {
		return env, Timestamp{}, err
	}
	return env, ts, nil
}

// Encode serializes an envelope without touching any clock
func (s *Stamper) Encode(env Envelope) ([]byte, error) {
	body, err := s.config.MsgCodec.Marshal(&envelopeWire{
		Timestamp: env.Timestamp.String(),
		Payload:   env.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	var flags byte
	if s.config.Compressor != nil {
		body, err = s.config.Compressor.Compress(body)
		if err != nil {
			return nil, fmt.Errorf("compress envelope: %w", err)
		}
		flags |= flagCompressed
	}

	if s.config.Cipher != nil {
		flags |= flagEncrypted
		body, err = s.config.Cipher.Encrypt(s.config.EncryptionKey, body, []byte{flags})
		if err != nil {
			return nil, fmt.Errorf("encrypt envelope: %w", err)
		}
	}

	out := make([]byte, 0, len(body)+1)
	out = append(out, flags)
	return append(out, body...), nil
}

// Decode reverses Encode, the envelope's flags must match the stamper's configuration
func (s *Stamper) Decode(data []byte) (Envelope, error) {
	if len(data) < 2 {
		return Envelope{}, ErrEnvelopeTooShort
	}

	flags, body := data[0], data[1:]
	var err error

	if flags&flagEncrypted != 0 {
		if s.config.Cipher == nil {
			return Envelope{}, fmt.Errorf("envelope is encrypted but no cipher is configured")
		}
		body, err = s.config.Cipher.Decrypt(s.config.EncryptionKey, body, []byte{flags})
		if err != nil {
			return Envelope{}, fmt.Errorf("decrypt envelope: %w", err)
		}
	} else if s.config.Cipher != nil {
		return Envelope{}, fmt.Errorf("envelope is not encrypted")
	}

	if flags&flagCompressed != 0 {
		if s.config.Compressor == nil {
			return Envelope{}, fmt.Errorf("envelope is compressed but no compressor is configured")
		}
		body, err = s.config.Compressor.Decompress(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("decompress envelope: %w", err)
		}
	}

	var wire envelopeWire
	if err := s.config.MsgCodec.Unmarshal(body, &wire); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	ts, err := Parse(wire.Timestamp)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{Timestamp: ts, Payload: wire.Payload}, nil
}
