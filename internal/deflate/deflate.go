// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// deflate.go — raw DEFLATE framing used by save files and level records:
// a fixed 10-byte gzip-style header, the raw stream, and a CRC32 + length
// trailer computed over the uncompressed bytes.

// Package deflate wraps and unwraps the pseudo-gzip frame around raw DEFLATE data.
package deflate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
)

// ErrBadFormat is returned when the frame is too short or the DEFLATE stream
// is truncated or corrupt.
var ErrBadFormat = errors.New("deflate: bad format")

// HeaderLen is the size of the fixed frame header.
const HeaderLen = 10

// TrailerLen is the size of the CRC32 + length trailer.
const TrailerLen = 8

// Header is written verbatim in front of every wrapped stream. It is never
// computed: the game expects these exact bytes (base64 "H4sIAAAAAAAAC").
var Header = [HeaderLen]byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0b}

// Unwrap discards the 10-byte header and inflates the raw DEFLATE stream that
// follows it. Anything after the end of the stream (the trailer) is ignored.
func Unwrap(framed []byte) ([]byte, error) {
	if len(framed) < HeaderLen {
		return nil, fmt.Errorf("%w: frame is %d bytes, need at least %d", ErrBadFormat, len(framed), HeaderLen)
	}
	r := flate.NewReader(bytes.NewReader(framed[HeaderLen:]))
	defer r.Close()

	var out bytes.Buffer
	out.Grow(len(framed) * 4)
	if _, err := io.Copy(&out, r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return out.Bytes(), nil
}

// Wrap compresses data and frames it: fixed header, raw DEFLATE stream, then
// little-endian CRC32 and little-endian uint32 length of data.
func Wrap(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderLen + len(data)/2 + TrailerLen)
	buf.Write(Header[:])

	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("deflate: new writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("deflate: close: %w", err)
	}

	var trailer [TrailerLen]byte
	binary.LittleEndian.PutUint32(trailer[0:4], crc32.ChecksumIEEE(data))
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(data)))
	buf.Write(trailer[:])
	return buf.Bytes(), nil
}

// Trailer returns the CRC32 and length recorded at the end of a framed stream.
func Trailer(framed []byte) (crc uint32, size uint32, err error) {
	if len(framed) < HeaderLen+TrailerLen {
		return 0, 0, fmt.Errorf("%w: no trailer", ErrBadFormat)
	}
	t := framed[len(framed)-TrailerLen:]
	return binary.LittleEndian.Uint32(t[0:4]), binary.LittleEndian.Uint32(t[4:8]), nil
}
