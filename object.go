// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// object.go — GDObject and the object record codec: parse a
// "key,value,...;" record into id, config and a sorted property bag, and
// serialize it back with default elision.

package gdsave

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Property is one entry of an object's property bag.
type Property struct {
	Key   uint16
	Value GDValue
}

// RawProperty is a record pair whose key has no canonical numeric form.
// It is written back as read, after the bag.
type RawProperty struct {
	Key   string
	Value string
}

// GDObject is one placed object of a level.
type GDObject struct {
	ID     int32
	Config GDObjConfig
	// props is kept sorted by ascending key.
	props []Property
	// raw keeps record order.
	raw []RawProperty
}

// NewObject builds an object from an id, a config and extra properties.
// Properties on config keys are applied to the config.
func NewObject(id int32, cfg GDObjConfig, props ...Property) *GDObject {
	o := &GDObject{ID: id, Config: cfg}
	for _, p := range props {
		o.SetProperty(p.Key, p.Value)
	}
	return o
}

// ParseObject decodes one object record. Config fields that fail to parse
// take their default; bag values that fail to parse are kept as Text.
func ParseObject(record string) (*GDObject, error) {
	record = strings.TrimSuffix(record, ";")
	parts := strings.Split(record, ",")
	if len(parts)%2 != 0 {
		return nil, fmt.Errorf("%w: object record has %d fields, want key/value pairs", ErrBadFormat, len(parts))
	}

	o := &GDObject{ID: 1, Config: DefaultConfig()}
	for i := 0; i < len(parts); i += 2 {
		val := parts[i+1]
		key, ok := CanonicalKey(parts[i])
		switch {
		case !ok:
			o.raw = append(o.raw, RawProperty{Key: parts[i], Value: val})
		case key == PropObjectID:
			n, err := strconv.ParseInt(val, 10, 32)
			if err != nil {
				n = 0
			}
			o.ID = int32(n)
		case IsConfigKey(key):
			o.Config.setRaw(key, val)
		default:
			o.setBag(key, ParseValue(PropertyKind(key), val))
		}
	}
	return o, nil
}

// MustParseObject is ParseObject for records known to be well formed.
func MustParseObject(record string) *GDObject {
	o, err := ParseObject(record)
	if err != nil {
		panic(err)
	}
	return o
}

// Serialize encodes the object as a record: id first, then config keys in
// their fixed order, then groups, then the bag in ascending key order, then
// raw pairs in record order.
func (o *GDObject) Serialize() string {
	b := make([]byte, 0, 64+len(o.props)*12)
	return string(o.AppendRecord(b))
}

// AppendRecord appends the serialized record, including the trailing ';'.
func (o *GDObject) AppendRecord(b []byte) []byte {
	start := len(b)
	b = append(b, "1,"...)
	b = strconv.AppendInt(b, int64(o.ID), 10)
	b = o.Config.appendRecord(b)
	for _, p := range o.props {
		if p.Key == UnknownKey {
			continue
		}
		b = append(b, ',')
		b = append(b, FormatKey(p.Key)...)
		b = append(b, ',')
		b = append(b, p.Value.String()...)
	}
	for _, r := range o.raw {
		b = append(b, ',')
		b = append(b, r.Key...)
		b = append(b, ',')
		b = append(b, r.Value...)
	}
	b = stripQuotes(b, start)
	return append(b, ';')
}

// stripQuotes removes '"' from b[start:] in place.
func stripQuotes(b []byte, start int) []byte {
	w := start
	for r := start; r < len(b); r++ {
		if b[r] != '"' {
			b[w] = b[r]
			w++
		}
	}
	return b[:w]
}

// ────────────────────────────────────────────────────────────────────────────
// Property access
// ────────────────────────────────────────────────────────────────────────────

// Property returns the value stored under key, including the id and config
// keys.
func (o *GDObject) Property(key uint16) (GDValue, bool) {
	if key == PropObjectID {
		return Int(o.ID), true
	}
	if v, ok := o.Config.get(key); ok {
		return v, true
	}
	i, found := o.search(key)
	if !found {
		return nil, false
	}
	return o.props[i].Value, true
}

// SetProperty stores v under key. Config keys update the config; the id key
// updates the id.
func (o *GDObject) SetProperty(key uint16, v GDValue) {
	switch {
	case v == nil:
		o.DelProperty(key)
	case key == PropObjectID:
		if n, err := strconv.ParseInt(v.String(), 10, 32); err == nil {
			o.ID = int32(n)
		}
	case IsConfigKey(key):
		o.Config.setRaw(key, v.String())
	default:
		o.setBag(key, v)
	}
}

// DelProperty removes key from the bag, or resets a config key to its
// default.
func (o *GDObject) DelProperty(key uint16) {
	if IsConfigKey(key) {
		o.Config.reset(key)
		return
	}
	if i, found := o.search(key); found {
		o.props = slices.Delete(o.props, i, i+1)
	}
}

// Properties returns a copy of the bag in ascending key order.
func (o *GDObject) Properties() []Property {
	return slices.Clone(o.props)
}

// RawProperties returns a copy of the pairs kept under non-canonical keys.
func (o *GDObject) RawProperties() []RawProperty {
	return slices.Clone(o.raw)
}

// Len returns the number of bag entries.
func (o *GDObject) Len() int { return len(o.props) }

func (o *GDObject) search(key uint16) (int, bool) {
	return slices.BinarySearchFunc(o.props, key, func(p Property, k uint16) int {
		return int(p.Key) - int(k)
	})
}

func (o *GDObject) setBag(key uint16, v GDValue) {
	i, found := o.search(key)
	if found {
		o.props[i].Value = v
		return
	}
	o.props = slices.Insert(o.props, i, Property{Key: key, Value: v})
}

// ────────────────────────────────────────────────────────────────────────────
// Comparison and display
// ────────────────────────────────────────────────────────────────────────────

// Clone returns a deep copy.
func (o *GDObject) Clone() *GDObject {
	c := *o
	c.Config.Groups = slices.Clone(o.Config.Groups)
	c.raw = slices.Clone(o.raw)
	c.props = make([]Property, len(o.props))
	for i, p := range o.props {
		c.props[i] = Property{Key: p.Key, Value: cloneValue(p.Value)}
	}
	return &c
}

func cloneValue(v GDValue) GDValue {
	switch t := v.(type) {
	case GroupList:
		return slices.Clone(t)
	case ProbabilityList:
		return slices.Clone(t)
	}
	return v
}

// Equal reports whether both objects have the same id, config, bag and raw
// pairs.
func (o *GDObject) Equal(p *GDObject) bool {
	if o.ID != p.ID || !o.Config.Equal(p.Config) || len(o.props) != len(p.props) || !slices.Equal(o.raw, p.raw) {
		return false
	}
	for i := range o.props {
		if o.props[i].Key != p.props[i].Key || !EqualValues(o.props[i].Value, p.props[i].Value) {
			return false
		}
	}
	return true
}

// Name returns the object's display name.
func (o *GDObject) Name() string { return ObjectName(o.ID) }

// String summarises the object on one line.
func (o *GDObject) String() string {
	var b strings.Builder
	t := o.Config.Trigger
	if t.Spawnable || t.Touchable {
		if t.MultiTrigger {
			b.WriteString("Multi")
		}
		if t.Touchable {
			b.WriteString("touchable ")
		} else {
			b.WriteString("spawnable ")
		}
	}
	fmt.Fprintf(&b, "%s @ (%s, %s) scaled to (%s, %s)", o.Name(),
		formatFloat(o.Config.X), formatFloat(o.Config.Y),
		formatFloat(o.Config.ScaleX), formatFloat(o.Config.ScaleY))
	if len(o.Config.Groups) > 0 {
		gs := make([]string, len(o.Config.Groups))
		for i, g := range o.Config.Groups {
			gs[i] = strconv.Itoa(int(g))
		}
		b.WriteString(" with groups: ")
		b.WriteString(strings.Join(gs, ", "))
	}
	fmt.Fprintf(&b, " angled to %s°", formatFloat(o.Config.Rotation))
	return b.String()
}

// Describe lists the bag using the property table descriptions.
func (o *GDObject) Describe() string {
	var b strings.Builder
	b.WriteString(o.String())
	b.WriteString(" with properties:")
	for _, p := range o.props {
		name := FormatKey(p.Key)
		if d, err := LookupProperty(p.Key); err == nil {
			name = d.Description
		}
		fmt.Fprintf(&b, "\n    - %s: %s(%s)", name, p.Value.Kind(), p.Value.String())
	}
	for _, r := range o.raw {
		fmt.Fprintf(&b, "\n    - %s: raw(%s)", r.Key, r.Value)
	}
	return b.String()
}
