// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// value.go — GDValue, the closed set of typed property values an object
// record can carry, plus the easing, colour-channel and z-layer enums.

package gdsave

import (
	"strconv"
	"strings"
)

// ValueKind identifies the variant held by a GDValue and doubles as the
// declared type of a PropertyDescriptor.
type ValueKind uint8

const (
	KindText ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindGroup
	KindItem
	KindEasing
	KindColour
	KindZLayer
	KindGroupList
	KindProbabilities
)

var valueKindNames = [...]string{
	KindText:          "text",
	KindInt:           "int",
	KindFloat:         "float",
	KindBool:          "bool",
	KindGroup:         "group",
	KindItem:          "item",
	KindEasing:        "easing",
	KindColour:        "colour",
	KindZLayer:        "zlayer",
	KindGroupList:     "group-list",
	KindProbabilities: "probabilities",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// GDValue is one typed property value. String returns the record encoding.
type GDValue interface {
	Kind() ValueKind
	String() string
	gdValue()
}

// ────────────────────────────────────────────────────────────────────────────
// Scalar variants
// ────────────────────────────────────────────────────────────────────────────

// Int is a plain integer property.
type Int int32

// Float is a decimal property, written without exponent.
type Float float64

// Bool is a flag property, written as "1" or "0".
type Bool bool

// GroupRef references a group id.
type GroupRef int16

// ItemRef references an item or counter id.
type ItemRef int16

// Text is free-form text, also the fallback for unparsable or unknown values.
type Text string

func (Int) Kind() ValueKind      { return KindInt }
func (Float) Kind() ValueKind    { return KindFloat }
func (Bool) Kind() ValueKind     { return KindBool }
func (GroupRef) Kind() ValueKind { return KindGroup }
func (ItemRef) Kind() ValueKind  { return KindItem }
func (Text) Kind() ValueKind     { return KindText }

func (v Int) String() string      { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string    { return formatFloat(float64(v)) }
func (v GroupRef) String() string { return strconv.FormatInt(int64(v), 10) }
func (v ItemRef) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Text) String() string     { return string(v) }

func (v Bool) String() string {
	if v {
		return "1"
	}
	return "0"
}

func (Int) gdValue()      {}
func (Float) gdValue()    {}
func (Bool) gdValue()     {}
func (GroupRef) gdValue() {}
func (ItemRef) gdValue()  {}
func (Text) gdValue()     {}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ────────────────────────────────────────────────────────────────────────────
// List variants
// ────────────────────────────────────────────────────────────────────────────

// GroupList is a dot-separated list of group ids.
type GroupList []int16

// Probability is one weighted entry of an advanced random trigger.
type Probability struct {
	Group  int16
	Weight int32
}

// ProbabilityList is written as group.weight.group.weight...
type ProbabilityList []Probability

func (GroupList) Kind() ValueKind       { return KindGroupList }
func (ProbabilityList) Kind() ValueKind { return KindProbabilities }
func (GroupList) gdValue()              {}
func (ProbabilityList) gdValue()        {}

func (v GroupList) String() string {
	var b strings.Builder
	for i, g := range v {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatInt(int64(g), 10))
	}
	return b.String()
}

func (v ProbabilityList) String() string {
	var b strings.Builder
	for i, p := range v {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatInt(int64(p.Group), 10))
		b.WriteByte('.')
		b.WriteString(strconv.FormatInt(int64(p.Weight), 10))
	}
	return b.String()
}

// parseGroupList reads a dot-separated list, skipping entries that are not
// valid group ids. Surrounding quotes are ignored.
func parseGroupList(s string) GroupList {
	s = strings.Trim(s, `"`)
	if s == "" {
		return GroupList{}
	}
	parts := strings.Split(s, ".")
	out := make(GroupList, 0, len(parts))
	for _, p := range parts {
		if g, err := strconv.ParseInt(p, 10, 16); err == nil {
			out = append(out, int16(g))
		}
	}
	return out
}

func parseProbabilityList(s string) (ProbabilityList, bool) {
	s = strings.Trim(s, `"`)
	if s == "" {
		return ProbabilityList{}, true
	}
	parts := strings.Split(s, ".")
	if len(parts)%2 != 0 {
		return nil, false
	}
	out := make(ProbabilityList, 0, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		g, err := strconv.ParseInt(parts[i], 10, 16)
		if err != nil {
			return nil, false
		}
		w, err := strconv.ParseInt(parts[i+1], 10, 32)
		if err != nil {
			return nil, false
		}
		out = append(out, Probability{Group: int16(g), Weight: int32(w)})
	}
	return out, true
}

// ────────────────────────────────────────────────────────────────────────────
// Enums
// ────────────────────────────────────────────────────────────────────────────

// MoveEasing is the easing curve of move-like triggers.
type MoveEasing uint8

const (
	EasingNone MoveEasing = iota
	EaseInOut
	EaseIn
	EaseOut
	ElasticInOut
	ElasticIn
	ElasticOut
	BounceInOut
	BounceIn
	BounceOut
	ExponentialInOut
	ExponentialIn
	ExponentialOut
	SineInOut
	SineIn
	SineOut
	BackInOut
	BackIn
	BackOut
)

var easingNames = [...]string{
	"None", "EaseInOut", "EaseIn", "EaseOut", "ElasticInOut", "ElasticIn", "ElasticOut",
	"BounceInOut", "BounceIn", "BounceOut", "ExponentialInOut", "ExponentialIn",
	"ExponentialOut", "SineInOut", "SineIn", "SineOut", "BackInOut", "BackIn", "BackOut",
}

// EasingFromInt maps out-of-range values to EasingNone.
func EasingFromInt(n int64) MoveEasing {
	if n < 0 || n > int64(BackOut) {
		return EasingNone
	}
	return MoveEasing(n)
}

func (MoveEasing) Kind() ValueKind  { return KindEasing }
func (MoveEasing) gdValue()         {}
func (e MoveEasing) String() string { return strconv.Itoa(int(e)) }

// Name returns the easing's display name.
func (e MoveEasing) Name() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return "None"
}

// ColourChannel is a colour channel id. Values 1000 and above name the
// special channels.
type ColourChannel int32

const (
	ChannelBackground    ColourChannel = 1000
	ChannelGround1       ColourChannel = 1001
	ChannelLine          ColourChannel = 1002
	ChannelThreeDLine    ColourChannel = 1003
	ChannelObject        ColourChannel = 1004
	ChannelP1            ColourChannel = 1005
	ChannelP2            ColourChannel = 1006
	ChannelGround2       ColourChannel = 1009
	ChannelMiddleGround  ColourChannel = 1013
	ChannelMiddleGround2 ColourChannel = 1014
)

var channelNames = map[ColourChannel]string{
	ChannelBackground:    "Background",
	ChannelGround1:       "Ground1",
	ChannelLine:          "Line",
	ChannelThreeDLine:    "3DLine",
	ChannelObject:        "Object",
	ChannelP1:            "P1",
	ChannelP2:            "P2",
	ChannelGround2:       "Ground2",
	ChannelMiddleGround:  "MiddleGround",
	ChannelMiddleGround2: "MiddleGround2",
}

func (ColourChannel) Kind() ValueKind  { return KindColour }
func (ColourChannel) gdValue()         {}
func (c ColourChannel) String() string { return strconv.FormatInt(int64(c), 10) }

// Name returns the special channel name, or "Channel N".
func (c ColourChannel) Name() string {
	if n, ok := channelNames[c]; ok {
		return n
	}
	return "Channel " + strconv.FormatInt(int64(c), 10)
}

// ZLayer is the render layer of an object.
type ZLayer int8

const (
	LayerB5      ZLayer = -5
	LayerB4      ZLayer = -3
	LayerB3      ZLayer = -1
	LayerDefault ZLayer = 0
	LayerB2      ZLayer = 1
	LayerB1      ZLayer = 3
	LayerT1      ZLayer = 5
	LayerT2      ZLayer = 7
	LayerT3      ZLayer = 9
	LayerT4      ZLayer = 11
)

var zLayerNames = map[ZLayer]string{
	LayerB5: "B5", LayerB4: "B4", LayerB3: "B3", LayerB2: "B2", LayerB1: "B1",
	LayerDefault: "Default", LayerT1: "T1", LayerT2: "T2", LayerT3: "T3", LayerT4: "T4",
}

// ZLayerFromInt maps values that name no layer to LayerDefault.
func ZLayerFromInt(n int64) ZLayer {
	if _, ok := zLayerNames[ZLayer(n)]; ok && n >= -128 && n <= 127 {
		return ZLayer(n)
	}
	return LayerDefault
}

func (ZLayer) Kind() ValueKind  { return KindZLayer }
func (ZLayer) gdValue()         {}
func (z ZLayer) String() string { return strconv.Itoa(int(z)) }

// Name returns the layer's editor label.
func (z ZLayer) Name() string { return zLayerNames[ZLayerFromInt(int64(z))] }

// ────────────────────────────────────────────────────────────────────────────
// Parsing
// ────────────────────────────────────────────────────────────────────────────

// parseBool accepts "1" and "true"; everything else is false.
func parseBool(s string) bool {
	return s == "1" || s == "true"
}

// ParseValue builds a value of the given kind from its record text. Text that
// does not parse as the declared kind is preserved as Text.
func ParseValue(kind ValueKind, s string) GDValue {
	switch kind {
	case KindInt:
		if n, err := strconv.ParseInt(s, 10, 32); err == nil {
			return Int(n)
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f)
		}
	case KindBool:
		switch s {
		case "1", "true":
			return Bool(true)
		case "0", "false", "":
			return Bool(false)
		}
	case KindGroup:
		if n, err := strconv.ParseInt(s, 10, 16); err == nil {
			return GroupRef(n)
		}
	case KindItem:
		if n, err := strconv.ParseInt(s, 10, 16); err == nil {
			return ItemRef(n)
		}
	case KindEasing:
		if n, err := strconv.ParseInt(s, 10, 32); err == nil && n >= 0 && n <= int64(BackOut) {
			return MoveEasing(n)
		}
	case KindColour:
		if n, err := strconv.ParseInt(s, 10, 32); err == nil {
			return ColourChannel(n)
		}
	case KindZLayer:
		if n, err := strconv.ParseInt(s, 10, 32); err == nil && n >= -128 && n <= 127 && ZLayerFromInt(n) == ZLayer(n) {
			return ZLayer(n)
		}
	case KindGroupList:
		return parseGroupList(s)
	case KindProbabilities:
		if l, ok := parseProbabilityList(s); ok {
			return l
		}
	}
	return Text(s)
}

// EqualValues reports whether a and b hold the same variant and value.
func EqualValues(a, b GDValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && a.String() == b.String()
}
