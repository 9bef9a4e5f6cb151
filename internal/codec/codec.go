package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Domain errors for the codec package.
var (
	// ErrEncode is returned when a value cannot be encoded to MessagePack.
	ErrEncode = errors.New("codec: encode failed")

	// ErrDecode is returned when a payload cannot be decoded from MessagePack.
	ErrDecode = errors.New("codec: decode failed")

	// ErrInvalidJSON is returned when a JSON source document cannot be parsed.
	ErrInvalidJSON = errors.New("codec: invalid JSON")
)

// Encode serializes a value to MessagePack.
//
// Struct values are encoded with named fields (string keys) so that
// subscribers in any language can decode them without shared schemas.
func Encode(value any) ([]byte, error) {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return payload, nil
}

// EncodeJSON parses a JSON document and re-encodes it as MessagePack.
// This is the path for payloads supplied on the command line or read from
// batch files.
func EncodeJSON(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return Encode(value)
}

// Decode deserializes a MessagePack payload into a generic value
// (maps, slices, strings, numbers).
func Decode(payload []byte) (any, error) {
	var value any
	if err := msgpack.Unmarshal(payload, &value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return value, nil
}

// DecodeToJSON decodes a MessagePack payload and renders it as a JSON
// string for display. An empty payload decodes to the empty string.
func DecodeToJSON(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", nil
	}
	value, err := Decode(payload)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return string(out), nil
}
