// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// codec.go — payload codecs for decoded levels stored in the shared cache.

// Package codec provides encode/decode interfaces for cached level payloads.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCodec is returned by ByName for an unrecognised codec name.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec encodes and decodes values for cache storage.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used in configuration and logs.
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = MsgPack{}

// ByName resolves a codec from its configuration name.
// An empty name selects Default.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default, nil
	case "msgpack":
		return MsgPack{}, nil
	case "json":
		return JSON{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}
