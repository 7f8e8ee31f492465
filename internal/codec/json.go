// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// json.go — JSON codec for cached levels; entries stay readable with
// redis-cli GET. Selected with the codec name "json".

package codec

import (
	"bytes"
	"encoding/json"
)

// JSON stores level payloads as JSON text.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal rejects fields the destination does not declare, so an entry
// written with another payload shape reads as corrupt.
func (JSON) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (JSON) Name() string { return "json" }
