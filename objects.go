// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// objects.go — constructors for a few frequently placed objects.

package gdsave

import (
	"github.com/AndrewDonelson/gdsave/internal/cipher"
)

// DefaultBlock returns a plain block.
func DefaultBlock(cfg GDObjConfig) *GDObject {
	return NewObject(ObjDefaultBlock, cfg)
}

// TextObject returns a text object. The text is stored base64 encoded.
func TextObject(cfg GDObjConfig, text string, kerning int32) *GDObject {
	return NewObject(ObjTextObject, cfg,
		Property{PropText, Text(cipher.EncodeBase64([]byte(text)))},
		Property{488, Int(kerning)},
	)
}

// MoveTrigger returns a move trigger that offsets target by (dx, dy) units
// over seconds.
func MoveTrigger(cfg GDObjConfig, target int16, dx, dy int32, seconds float64, easing MoveEasing, rate float64) *GDObject {
	props := []Property{
		{PropDuration, Float(seconds)},
		{PropTargetGroup, GroupRef(target)},
		{PropMoveX, Int(dx)},
		{PropMoveY, Int(dy)},
	}
	if easing != EasingNone {
		props = append(props, Property{PropEasing, easing}, Property{PropEasingRate, Float(rate)})
	}
	return NewObject(ObjMoveTrigger, cfg, props...)
}

// SpawnTrigger returns a spawn trigger activating target after delay seconds.
func SpawnTrigger(cfg GDObjConfig, target int16, delay float64) *GDObject {
	return NewObject(ObjSpawnTrigger, cfg,
		Property{PropTargetGroup, GroupRef(target)},
		Property{PropSpawnDelay, Float(delay)},
	)
}

// DecodedText returns the plain text of a text object.
func (o *GDObject) DecodedText() (string, bool) {
	v, ok := o.Property(PropText)
	if !ok {
		return "", false
	}
	raw, err := cipher.DecodeBase64([]byte(v.String()))
	if err != nil {
		return "", false
	}
	return string(raw), true
}
