// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// objconfig.go — GDObjConfig, the well-known object keys promoted out of the
// property bag, and the ordered field table that drives their parsing,
// default elision and emission.

package gdsave

import (
	"slices"
	"strconv"
)

// TriggerConfig is the trigger capability triple.
type TriggerConfig struct {
	Touchable    bool
	Spawnable    bool
	MultiTrigger bool
}

// Attributes are the boolean object flags from the editor's extra menu.
type Attributes struct {
	DontFade          bool
	DontEnter         bool
	NoEffects         bool
	GroupParent       bool
	AreaParent        bool
	DontBoostX        bool
	DontBoostY        bool
	HighDetail        bool
	NoTouch           bool
	Passable          bool
	Hidden            bool
	NonStickX         bool
	NonStickY         bool
	ExtraSticky       bool
	ExtendedCollision bool
	IceBlock          bool
	GripSlope         bool
	NoGlow            bool
	NoParticles       bool
	ScaleStick        bool
	NoAudioScale      bool
	SinglePlayerTouch bool
	CenterEffect      bool
	Reverse           bool
}

// GDObjConfig holds the fields every object carries.
type GDObjConfig struct {
	X, Y               float64
	ScaleX, ScaleY     float64
	Rotation           float64
	Groups             []int16
	Trigger            TriggerConfig
	ZOrder             int32
	ZLayer             ZLayer
	EditorLayer1       int32
	EditorLayer2       int32
	MainColour         ColourChannel
	DetailColour       ColourChannel
	EnterEffectChannel int32
	MaterialID         int32
	MaterialControlID  int32
	Attributes         Attributes
}

// DefaultConfig returns a config at the origin with unit scale and every
// other field at its zero value.
func DefaultConfig() GDObjConfig {
	return GDObjConfig{ScaleX: 1, ScaleY: 1}
}

// ────────────────────────────────────────────────────────────────────────────
// Field table
// ────────────────────────────────────────────────────────────────────────────

// configField binds one record key to a GDObjConfig field.
type configField struct {
	key uint16
	// always marks keys emitted even at their default value.
	always bool
	get    func(c *GDObjConfig) GDValue
	parse  func(c *GDObjConfig, s string)
}

func floatField(key uint16, always bool, def float64, ptr func(*GDObjConfig) *float64) configField {
	return configField{
		key:    key,
		always: always,
		get:    func(c *GDObjConfig) GDValue { return Float(*ptr(c)) },
		parse: func(c *GDObjConfig, s string) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				f = def
			}
			*ptr(c) = f
		},
	}
}

func intField(key uint16, ptr func(*GDObjConfig) *int32) configField {
	return configField{
		key: key,
		get: func(c *GDObjConfig) GDValue { return Int(*ptr(c)) },
		parse: func(c *GDObjConfig, s string) {
			n, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				n = 0
			}
			*ptr(c) = int32(n)
		},
	}
}

func colourField(key uint16, ptr func(*GDObjConfig) *ColourChannel) configField {
	return configField{
		key: key,
		get: func(c *GDObjConfig) GDValue { return *ptr(c) },
		parse: func(c *GDObjConfig, s string) {
			n, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				n = 0
			}
			*ptr(c) = ColourChannel(n)
		},
	}
}

func boolField(key uint16, ptr func(*GDObjConfig) *bool) configField {
	return configField{
		key:   key,
		get:   func(c *GDObjConfig) GDValue { return Bool(*ptr(c)) },
		parse: func(c *GDObjConfig, s string) { *ptr(c) = parseBool(s) },
	}
}

func attrField(key uint16, ptr func(*Attributes) *bool) configField {
	return boolField(key, func(c *GDObjConfig) *bool { return ptr(&c.Attributes) })
}

// configFields is in emission order.
var configFields = []configField{
	floatField(PropX, true, 0, func(c *GDObjConfig) *float64 { return &c.X }),
	floatField(PropY, true, 0, func(c *GDObjConfig) *float64 { return &c.Y }),
	floatField(PropAngle, false, 0, func(c *GDObjConfig) *float64 { return &c.Rotation }),
	floatField(PropScaleX, false, 1, func(c *GDObjConfig) *float64 { return &c.ScaleX }),
	floatField(PropScaleY, false, 1, func(c *GDObjConfig) *float64 { return &c.ScaleY }),
	boolField(PropTouchable, func(c *GDObjConfig) *bool { return &c.Trigger.Touchable }),
	boolField(PropSpawnable, func(c *GDObjConfig) *bool { return &c.Trigger.Spawnable }),
	boolField(PropMultiTrigger, func(c *GDObjConfig) *bool { return &c.Trigger.MultiTrigger }),
	intField(PropEditorLayer1, func(c *GDObjConfig) *int32 { return &c.EditorLayer1 }),
	intField(PropEditorLayer2, func(c *GDObjConfig) *int32 { return &c.EditorLayer2 }),
	colourField(PropMainColour, func(c *GDObjConfig) *ColourChannel { return &c.MainColour }),
	colourField(PropDetailColour, func(c *GDObjConfig) *ColourChannel { return &c.DetailColour }),
	{
		key: PropZLayer,
		get: func(c *GDObjConfig) GDValue { return c.ZLayer },
		parse: func(c *GDObjConfig, s string) {
			n, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				n = 0
			}
			c.ZLayer = ZLayerFromInt(n)
		},
	},
	intField(PropZOrder, func(c *GDObjConfig) *int32 { return &c.ZOrder }),
	intField(PropEnterChannel, func(c *GDObjConfig) *int32 { return &c.EnterEffectChannel }),
	intField(PropMaterial, func(c *GDObjConfig) *int32 { return &c.MaterialID }),
	attrField(PropDontFade, func(a *Attributes) *bool { return &a.DontFade }),
	attrField(PropDontEnter, func(a *Attributes) *bool { return &a.DontEnter }),
	attrField(116, func(a *Attributes) *bool { return &a.NoEffects }),
	attrField(PropGroupParent, func(a *Attributes) *bool { return &a.GroupParent }),
	attrField(279, func(a *Attributes) *bool { return &a.AreaParent }),
	attrField(509, func(a *Attributes) *bool { return &a.DontBoostX }),
	attrField(496, func(a *Attributes) *bool { return &a.DontBoostY }),
	attrField(103, func(a *Attributes) *bool { return &a.HighDetail }),
	attrField(121, func(a *Attributes) *bool { return &a.NoTouch }),
	attrField(134, func(a *Attributes) *bool { return &a.Passable }),
	attrField(135, func(a *Attributes) *bool { return &a.Hidden }),
	attrField(136, func(a *Attributes) *bool { return &a.NonStickX }),
	attrField(289, func(a *Attributes) *bool { return &a.NonStickY }),
	attrField(495, func(a *Attributes) *bool { return &a.ExtraSticky }),
	attrField(511, func(a *Attributes) *bool { return &a.ExtendedCollision }),
	attrField(137, func(a *Attributes) *bool { return &a.IceBlock }),
	attrField(193, func(a *Attributes) *bool { return &a.GripSlope }),
	attrField(96, func(a *Attributes) *bool { return &a.NoGlow }),
	attrField(507, func(a *Attributes) *bool { return &a.NoParticles }),
	attrField(356, func(a *Attributes) *bool { return &a.ScaleStick }),
	attrField(372, func(a *Attributes) *bool { return &a.NoAudioScale }),
	attrField(284, func(a *Attributes) *bool { return &a.SinglePlayerTouch }),
	attrField(369, func(a *Attributes) *bool { return &a.CenterEffect }),
	attrField(117, func(a *Attributes) *bool { return &a.Reverse }),
	intField(PropMaterialCtl, func(c *GDObjConfig) *int32 { return &c.MaterialControlID }),
}

var (
	configFieldByKey = func() map[uint16]*configField {
		m := make(map[uint16]*configField, len(configFields))
		for i := range configFields {
			m[configFields[i].key] = &configFields[i]
		}
		return m
	}()
	defaultConfig = DefaultConfig()
)

// IsConfigKey reports whether key is stored in GDObjConfig rather than in
// the property bag.
func IsConfigKey(key uint16) bool {
	if key == PropGroups {
		return true
	}
	_, ok := configFieldByKey[key]
	return ok
}

// get returns the value of a config key.
func (c *GDObjConfig) get(key uint16) (GDValue, bool) {
	if key == PropGroups {
		return GroupList(c.Groups), true
	}
	f, ok := configFieldByKey[key]
	if !ok {
		return nil, false
	}
	return f.get(c), true
}

// setRaw parses s into the field bound to key. Unknown keys are ignored.
func (c *GDObjConfig) setRaw(key uint16, s string) {
	if key == PropGroups {
		c.Groups = []int16(parseGroupList(s))
		return
	}
	if f, ok := configFieldByKey[key]; ok {
		f.parse(c, s)
	}
}

// reset restores the field bound to key to its default.
func (c *GDObjConfig) reset(key uint16) {
	if key == PropGroups {
		c.Groups = nil
		return
	}
	if f, ok := configFieldByKey[key]; ok {
		d := defaultConfig
		f.parse(c, f.get(&d).String())
	}
}

// appendRecord writes the config keys in emission order, skipping fields at
// their default except X and Y.
func (c *GDObjConfig) appendRecord(b []byte) []byte {
	d := defaultConfig
	for i := range configFields {
		f := &configFields[i]
		v := f.get(c)
		if !f.always && EqualValues(v, f.get(&d)) {
			continue
		}
		b = append(b, ',')
		b = strconv.AppendUint(b, uint64(f.key), 10)
		b = append(b, ',')
		b = append(b, v.String()...)
	}
	if len(c.Groups) > 0 {
		b = append(b, ",57,"...)
		b = append(b, GroupList(c.Groups).String()...)
	}
	return b
}

// Equal compares every field by its record encoding; nil and empty group
// lists are equal.
func (c GDObjConfig) Equal(o GDObjConfig) bool {
	if !slices.Equal(c.Groups, o.Groups) {
		return false
	}
	for i := range configFields {
		if !EqualValues(configFields[i].get(&c), configFields[i].get(&o)) {
			return false
		}
	}
	return true
}

// ────────────────────────────────────────────────────────────────────────────
// Builder
// ────────────────────────────────────────────────────────────────────────────

// At sets the position.
func (c GDObjConfig) At(x, y float64) GDObjConfig { c.X, c.Y = x, y; return c }

// Scaled sets both scale factors.
func (c GDObjConfig) Scaled(x, y float64) GDObjConfig { c.ScaleX, c.ScaleY = x, y; return c }

// Rotated sets the rotation in degrees.
func (c GDObjConfig) Rotated(deg float64) GDObjConfig { c.Rotation = deg; return c }

// WithGroups replaces the group list.
func (c GDObjConfig) WithGroups(groups ...int16) GDObjConfig {
	c.Groups = append([]int16(nil), groups...)
	return c
}

// Touchable sets the touch-triggered flag.
func (c GDObjConfig) Touchable(on bool) GDObjConfig { c.Trigger.Touchable = on; return c }

// Spawnable sets the spawn-triggered flag.
func (c GDObjConfig) Spawnable(on bool) GDObjConfig { c.Trigger.Spawnable = on; return c }

// MultiTriggerable sets the multi-trigger flag.
func (c GDObjConfig) MultiTriggerable(on bool) GDObjConfig { c.Trigger.MultiTrigger = on; return c }

// WithColours sets the main and detail colour channels.
func (c GDObjConfig) WithColours(main, detail ColourChannel) GDObjConfig {
	c.MainColour, c.DetailColour = main, detail
	return c
}

// OnLayer sets the z layer and z order.
func (c GDObjConfig) OnLayer(z ZLayer, order int32) GDObjConfig {
	c.ZLayer, c.ZOrder = z, order
	return c
}

// OnEditorLayers sets both editor layers.
func (c GDObjConfig) OnEditorLayers(l1, l2 int32) GDObjConfig {
	c.EditorLayer1, c.EditorLayer2 = l1, l2
	return c
}

// WithMaterial sets the material and material control ids.
func (c GDObjConfig) WithMaterial(id, control int32) GDObjConfig {
	c.MaterialID, c.MaterialControlID = id, control
	return c
}

// WithEnterChannel sets the enter effect channel.
func (c GDObjConfig) WithEnterChannel(ch int32) GDObjConfig { c.EnterEffectChannel = ch; return c }

// Flag sets the attribute stored under key, e.g. PropDontFade. Keys that are
// not attribute flags are ignored.
func (c GDObjConfig) Flag(key uint16, on bool) GDObjConfig {
	if f, ok := configFieldByKey[key]; ok {
		if _, isBool := f.get(&c).(Bool); isBool {
			f.parse(&c, Bool(on).String())
		}
	}
	return c
}
