// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// errors.go — sentinel error variables returned by the public gdsave API,
// covering file I/O, the cipher and compression layers, plist structure,
// level lookup, configuration and the editor's cache and archive tiers.

// Package gdsave reads and writes Geometry Dash save files: the obfuscated
// local-levels document, the per-level object records inside it, and the
// typed object model those records decode to.
package gdsave

import (
	"errors"
	"fmt"

	"github.com/AndrewDonelson/gdsave/internal/cipher"
	"github.com/AndrewDonelson/gdsave/internal/deflate"
	"github.com/AndrewDonelson/gdsave/internal/plist"
)

// Codec errors
var (
	ErrIO        = errors.New("gdsave: i/o failure")
	ErrDecode    = errors.New("gdsave: invalid base64 data")
	ErrBadFormat = errors.New("gdsave: malformed data")
)

// Lookup errors
var (
	ErrUnknownKey    = errors.New("gdsave: unknown property key")
	ErrNoLevelData   = errors.New("gdsave: level has no object data")
	ErrLevelNotFound = errors.New("gdsave: level not found")
	ErrCacheMiss     = errors.New("gdsave: cache miss")
)

// Config errors
var (
	ErrInvalidConfig = errors.New("gdsave: invalid configuration")
)

// Editor errors
var (
	ErrClosed = errors.New("gdsave: editor closed")
)

// Infrastructure errors
var (
	ErrArchiveUnavailable = errors.New("gdsave: level archive not configured")
	ErrInvalidQuery       = errors.New("gdsave: invalid archive query")
)

// classify maps errors from the internal layers onto the public taxonomy.
// Errors that already carry a public sentinel pass through unchanged.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDecode), errors.Is(err, ErrBadFormat), errors.Is(err, ErrIO):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, cipher.ErrDecode):
		return fmt.Errorf("%s: %w: %v", op, ErrDecode, err)
	case errors.Is(err, deflate.ErrBadFormat), errors.Is(err, plist.ErrBadPlist):
		return fmt.Errorf("%s: %w: %v", op, ErrBadFormat, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
