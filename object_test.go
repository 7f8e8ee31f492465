package gdsave_test

import (
	"strings"
	"testing"

	"github.com/AndrewDonelson/gdsave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject_DefaultBlock(t *testing.T) {
	o, err := gdsave.ParseObject("1,1,2,0,3,0;")
	require.NoError(t, err)
	assert.Equal(t, int32(1), o.ID)
	assert.True(t, o.Config.Equal(gdsave.DefaultConfig()))
	assert.Equal(t, 0, o.Len())
	assert.Equal(t, "1,1,2,0,3,0;", o.Serialize())
}

func TestParseObject_StartPosKey(t *testing.T) {
	o, err := gdsave.ParseObject("1,31,2,0,3,0,kA4,1")
	require.NoError(t, err)
	v, ok := o.Property(10004)
	require.True(t, ok)
	assert.Equal(t, "1", v.String())
	assert.Equal(t, "1,31,2,0,3,0,kA4,1;", o.Serialize())
}

func TestParseObject_Groups(t *testing.T) {
	o, err := gdsave.ParseObject("1,1,2,15,3,45,57,1.2.3")
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 2, 3}, o.Config.Groups)
	assert.Equal(t, "1,1,2,15,3,45,57,1.2.3;", o.Serialize())
}

func TestParseObject_UnknownKeysKeptVerbatim(t *testing.T) {
	o, err := gdsave.ParseObject("1,1,2,0,3,0,zz,5,qq,6")
	require.NoError(t, err)
	_, ok := o.Property(gdsave.UnknownKey)
	assert.False(t, ok)
	assert.Equal(t, []gdsave.RawProperty{{Key: "zz", Value: "5"}, {Key: "qq", Value: "6"}}, o.RawProperties())
	assert.Equal(t, "1,1,2,0,3,0,zz,5,qq,6;", o.Serialize())

	again, err := gdsave.ParseObject(o.Serialize())
	require.NoError(t, err)
	assert.True(t, o.Equal(again))
}

func TestParseObject_NonCanonicalKeysDoNotCollide(t *testing.T) {
	o, err := gdsave.ParseObject("1,1,2,0,3,0,kA4,1,10004,7,kS38,2")
	require.NoError(t, err)
	v, ok := o.Property(10004)
	require.True(t, ok)
	assert.Equal(t, "1", v.String())
	assert.Equal(t, "1,1,2,0,3,0,kA4,1,10004,7,kS38,2;", o.Serialize())
	assert.Contains(t, o.Describe(), "- kS38: raw(2)")

	c := o.Clone()
	assert.True(t, c.Equal(o))
}

func TestParseObject_UnlistedKeyKeptAsText(t *testing.T) {
	o, err := gdsave.ParseObject("1,1,2,0,3,0,9999,abc")
	require.NoError(t, err)
	v, ok := o.Property(9999)
	require.True(t, ok)
	assert.Equal(t, gdsave.KindText, v.Kind())
	assert.Equal(t, "1,1,2,0,3,0,9999,abc;", o.Serialize())
}

func TestParseObject_BadBagValueKeptAsText(t *testing.T) {
	o, err := gdsave.ParseObject("1,901,2,0,3,0,51,notagroup")
	require.NoError(t, err)
	v, _ := o.Property(gdsave.PropTargetGroup)
	assert.Equal(t, gdsave.Text("notagroup"), v)
	assert.Contains(t, o.Serialize(), ",51,notagroup;")
}

func TestParseObject_BadConfigValueTakesDefault(t *testing.T) {
	o, err := gdsave.ParseObject("1,1,2,oops,3,7,128,x")
	require.NoError(t, err)
	assert.Equal(t, 0.0, o.Config.X)
	assert.Equal(t, 7.0, o.Config.Y)
	assert.Equal(t, 1.0, o.Config.ScaleX)
}

func TestParseObject_BadID(t *testing.T) {
	o, err := gdsave.ParseObject("1,abc,2,0,3,0")
	require.NoError(t, err)
	assert.Equal(t, int32(0), o.ID)
}

func TestParseObject_OddFieldCount(t *testing.T) {
	_, err := gdsave.ParseObject("1,1,2")
	assert.ErrorIs(t, err, gdsave.ErrBadFormat)
	assert.Panics(t, func() { gdsave.MustParseObject("1,1,2") })
}

func TestSerialize_Idempotent(t *testing.T) {
	records := []string{
		"1,1,2,0,3,0;",
		"1,901,2,45,3,15,6,90,128,2,129,0.5,11,1,62,1,87,1,57,4.5,10,0.5,28,30,29,-10,30,2,51,7,85,2;",
		"1,1268,2,0,3,0,24,-3,25,4,21,1004,22,1005,63,1.25,51,12;",
		"1,914,2,45,3,15,31,SGVsbG8=,488,2;",
		"1,31,2,0,3,0,kA2,1,kA4,1,kA36,1;",
	}
	for _, rec := range records {
		a, err := gdsave.ParseObject(rec)
		require.NoError(t, err)
		once := a.Serialize()
		b, err := gdsave.ParseObject(once)
		require.NoError(t, err)
		assert.Equal(t, once, b.Serialize(), rec)
		assert.True(t, a.Equal(b), rec)
	}
}

func TestSerialize_ConfigOrderAndElision(t *testing.T) {
	cfg := gdsave.DefaultConfig().
		At(15, 45).
		Scaled(2, 2).
		Rotated(90).
		WithGroups(3, 1).
		Touchable(true).
		OnLayer(gdsave.LayerT1, 3).
		WithColours(gdsave.ChannelObject, 0)
	o := gdsave.DefaultBlock(cfg)
	assert.Equal(t, "1,1,2,15,3,45,6,90,128,2,129,2,11,1,21,1004,24,5,25,3,57,3.1;", o.Serialize())
}

func TestSerialize_StripsQuotes(t *testing.T) {
	o := gdsave.NewObject(1, gdsave.DefaultConfig(), gdsave.Property{Key: 9999, Value: gdsave.Text(`"quoted"`)})
	assert.Equal(t, "1,1,2,0,3,0,9999,quoted;", o.Serialize())
}

func TestSetProperty(t *testing.T) {
	o := gdsave.DefaultBlock(gdsave.DefaultConfig())
	o.SetProperty(200, gdsave.Int(2))
	o.SetProperty(100, gdsave.Int(1))
	o.SetProperty(150, gdsave.Int(3))

	var keys []uint16
	for _, p := range o.Properties() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []uint16{100, 150, 200}, keys)

	o.SetProperty(150, gdsave.Int(9))
	v, _ := o.Property(150)
	assert.Equal(t, gdsave.Int(9), v)
	assert.Equal(t, 3, o.Len())

	o.SetProperty(150, nil)
	_, ok := o.Property(150)
	assert.False(t, ok)
}

func TestSetProperty_ConfigAndID(t *testing.T) {
	o := gdsave.DefaultBlock(gdsave.DefaultConfig())
	o.SetProperty(gdsave.PropX, gdsave.Float(30))
	o.SetProperty(gdsave.PropGroups, gdsave.GroupList{7, 8})
	o.SetProperty(gdsave.PropObjectID, gdsave.Int(914))

	assert.Equal(t, 30.0, o.Config.X)
	assert.Equal(t, []int16{7, 8}, o.Config.Groups)
	assert.Equal(t, int32(914), o.ID)
	assert.Equal(t, 0, o.Len(), "config keys never enter the bag")

	v, ok := o.Property(gdsave.PropGroups)
	require.True(t, ok)
	assert.Equal(t, "7.8", v.String())
}

func TestDelProperty_ConfigRestoresDefault(t *testing.T) {
	o := gdsave.DefaultBlock(gdsave.DefaultConfig().Scaled(3, 3).WithGroups(1))
	o.DelProperty(gdsave.PropScaleX)
	o.DelProperty(gdsave.PropGroups)
	assert.Equal(t, 1.0, o.Config.ScaleX)
	assert.Equal(t, 3.0, o.Config.ScaleY)
	assert.Empty(t, o.Config.Groups)
}

func TestClone_IsDeep(t *testing.T) {
	o := gdsave.MustParseObject("1,1,2,0,3,0,57,1.2,152,1.50")
	c := o.Clone()
	c.Config.Groups[0] = 99
	c.SetProperty(gdsave.PropProbabilities, gdsave.ProbabilityList{{Group: 2, Weight: 1}})
	assert.Equal(t, []int16{1, 2}, o.Config.Groups)
	v, _ := o.Property(gdsave.PropProbabilities)
	assert.Equal(t, "1.50", v.String())
	assert.False(t, o.Equal(c))
}

func TestObjectNames(t *testing.T) {
	assert.Equal(t, "Trigger Move", gdsave.ObjectName(gdsave.ObjMoveTrigger))
	o := gdsave.MustParseObject("1,901,2,15,3,30,57,4,11,1,87,1")
	s := o.String()
	assert.True(t, strings.HasPrefix(s, "Multitouchable Trigger Move @ (15, 30)"), s)
	assert.Contains(t, s, "with groups: 4")
}

func TestDescribe(t *testing.T) {
	o := gdsave.MoveTrigger(gdsave.DefaultConfig(), 7, 30, 0, 0.5, gdsave.EaseIn, 2)
	d := o.Describe()
	assert.Contains(t, d, "Target group id: group(7)")
	assert.Contains(t, d, "easing(2)")
}

func TestTextObject(t *testing.T) {
	o := gdsave.TextObject(gdsave.DefaultConfig().At(15, 15), "Hello, world?", 1)
	text, ok := o.DecodedText()
	require.True(t, ok)
	assert.Equal(t, "Hello, world?", text)

	again := gdsave.MustParseObject(o.Serialize())
	text, ok = again.DecodedText()
	require.True(t, ok)
	assert.Equal(t, "Hello, world?", text)

	_, ok = gdsave.DefaultBlock(gdsave.DefaultConfig()).DecodedText()
	assert.False(t, ok)
}

func TestTriggerConstructors(t *testing.T) {
	m := gdsave.MoveTrigger(gdsave.DefaultConfig(), 3, 10, -10, 1, gdsave.EasingNone, 0)
	_, hasEasing := m.Property(gdsave.PropEasing)
	assert.False(t, hasEasing, "no easing keys without an easing")

	s := gdsave.SpawnTrigger(gdsave.DefaultConfig().Spawnable(true), 5, 0.25)
	assert.Equal(t, "1,1268,2,0,3,0,62,1,51,5,63,0.25;", s.Serialize())
}

func TestConfigFlag(t *testing.T) {
	cfg := gdsave.DefaultConfig().Flag(135, true).Flag(gdsave.PropDontFade, true)
	assert.True(t, cfg.Attributes.Hidden)
	assert.True(t, cfg.Attributes.DontFade)
	assert.Equal(t, "1,1,2,0,3,0,64,1,135,1;", gdsave.DefaultBlock(cfg).Serialize())
}
