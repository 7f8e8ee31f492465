// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// cipher.go — the byte-level transforms of the save format: constant-key XOR
// and the URL-safe base64 transport with tolerance for on-disk filler bytes.

// Package cipher implements the XOR/base64 layers of save files and level
// records and the two pipelines built on top of them.
package cipher

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Key is the XOR key applied to whole save documents.
const Key byte = 11

// ErrDecode is returned when the base64 layer contains characters outside the alphabet.
var ErrDecode = errors.New("cipher: invalid base64")

// XOR returns a copy of data with every byte XORed with key. Applying it twice
// with the same key yields the original bytes.
func XOR(data []byte, key byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key
	}
	return out
}

// standard-alphabet characters are folded onto the URL-safe ones so that
// files written by older tools still decode.
var alphabetFold = strings.NewReplacer("+", "-", "/", "_")

// DecodeBase64 decodes URL-safe base64 text. Trailing NUL bytes, padding and
// whitespace left by fixed-size buffers are stripped first.
func DecodeBase64(text []byte) ([]byte, error) {
	s := strings.TrimRight(string(text), "\x00\r\n\t =")
	s = alphabetFold.Replace(s)
	out, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return out, nil
}

// EncodeBase64 encodes data as padded URL-safe base64.
func EncodeBase64(data []byte) []byte {
	out := make([]byte, base64.URLEncoding.EncodedLen(len(data)))
	base64.URLEncoding.Encode(out, data)
	return out
}
