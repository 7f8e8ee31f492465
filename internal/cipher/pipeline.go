// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// pipeline.go — the whole-document and per-level encode/decode pipelines.
//
//	document read : XOR(11) -> base64 -> unwrap frame -> text
//	document write: text -> wrap frame -> base64 -> XOR(11)
//	level read    : base64 -> unwrap frame -> text
//	level write   : text -> wrap frame -> base64

package cipher

import (
	"github.com/AndrewDonelson/gdsave/internal/deflate"
)

// DecodeDocument turns the raw bytes of a save file into plist text.
func DecodeDocument(raw []byte) ([]byte, error) {
	framed, err := DecodeBase64(XOR(raw, Key))
	if err != nil {
		return nil, err
	}
	return deflate.Unwrap(framed)
}

// EncodeDocument turns plist text into the raw bytes of a save file.
func EncodeDocument(text []byte) ([]byte, error) {
	framed, err := deflate.Wrap(text)
	if err != nil {
		return nil, err
	}
	b64 := EncodeBase64(framed)
	for i := range b64 {
		b64[i] ^= Key
	}
	return b64, nil
}

// DecodeLevel turns an encoded level record (the k4 string) into its object text.
func DecodeLevel(record string) (string, error) {
	framed, err := DecodeBase64([]byte(record))
	if err != nil {
		return "", err
	}
	text, err := deflate.Unwrap(framed)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// EncodeLevel turns level object text into an encoded level record.
func EncodeLevel(text string) (string, error) {
	framed, err := deflate.Wrap([]byte(text))
	if err != nil {
		return "", err
	}
	return string(EncodeBase64(framed)), nil
}
