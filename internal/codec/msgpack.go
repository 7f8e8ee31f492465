// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// msgpack.go — MessagePack codec; the compact default for cached levels.

package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack stores level payloads as MessagePack.
type MsgPack struct{}

func (MsgPack) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

// Unmarshal rejects fields the destination does not declare, like JSON.
func (MsgPack) Unmarshal(data []byte, v any) error {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)
	dec.Reset(bytes.NewReader(data))
	dec.DisallowUnknownFields(true)
	return dec.Decode(v)
}

func (MsgPack) Name() string { return "msgpack" }
