package gdsave_test

import (
	"testing"

	"github.com/AndrewDonelson/gdsave"
	"github.com/stretchr/testify/assert"
)

func TestParseValue_Kinds(t *testing.T) {
	cases := []struct {
		kind gdsave.ValueKind
		in   string
		want gdsave.GDValue
	}{
		{gdsave.KindInt, "-42", gdsave.Int(-42)},
		{gdsave.KindFloat, "1.5", gdsave.Float(1.5)},
		{gdsave.KindBool, "1", gdsave.Bool(true)},
		{gdsave.KindBool, "true", gdsave.Bool(true)},
		{gdsave.KindBool, "0", gdsave.Bool(false)},
		{gdsave.KindGroup, "12", gdsave.GroupRef(12)},
		{gdsave.KindItem, "7", gdsave.ItemRef(7)},
		{gdsave.KindEasing, "3", gdsave.EaseOut},
		{gdsave.KindColour, "1005", gdsave.ChannelP1},
		{gdsave.KindZLayer, "-3", gdsave.LayerB4},
		{gdsave.KindGroupList, "1.2.3", gdsave.GroupList{1, 2, 3}},
		{gdsave.KindProbabilities, "4.50.5.50", gdsave.ProbabilityList{{Group: 4, Weight: 50}, {Group: 5, Weight: 50}}},
		{gdsave.KindText, "SGVsbG8=", gdsave.Text("SGVsbG8=")},
	}
	for _, tc := range cases {
		got := gdsave.ParseValue(tc.kind, tc.in)
		assert.Truef(t, gdsave.EqualValues(tc.want, got), "%s %q: got %s(%s)", tc.kind, tc.in, got.Kind(), got)
	}
}

func TestParseValue_FallsBackToText(t *testing.T) {
	cases := []struct {
		kind gdsave.ValueKind
		in   string
	}{
		{gdsave.KindInt, "abc"},
		{gdsave.KindFloat, "1.2.3"},
		{gdsave.KindBool, "yes"},
		{gdsave.KindGroup, "70000"},
		{gdsave.KindEasing, "19"},
		{gdsave.KindEasing, "-1"},
		{gdsave.KindZLayer, "2"},
		{gdsave.KindZLayer, "261"},
		{gdsave.KindProbabilities, "1.2.3"},
	}
	for _, tc := range cases {
		got := gdsave.ParseValue(tc.kind, tc.in)
		assert.Equalf(t, gdsave.KindText, got.Kind(), "%s %q", tc.kind, tc.in)
		assert.Equal(t, tc.in, got.String(), "raw text is preserved")
	}
}

func TestGroupList(t *testing.T) {
	g := gdsave.ParseValue(gdsave.KindGroupList, "1.2.3")
	assert.Equal(t, "1.2.3", g.String())

	assert.Equal(t, gdsave.GroupList{4, 9}, gdsave.ParseValue(gdsave.KindGroupList, `"4.x.9"`))
	assert.Equal(t, "", gdsave.ParseValue(gdsave.KindGroupList, "").String())
}

func TestValueStrings(t *testing.T) {
	assert.Equal(t, "1", gdsave.Bool(true).String())
	assert.Equal(t, "0", gdsave.Bool(false).String())
	assert.Equal(t, "15", gdsave.Float(15).String())
	assert.Equal(t, "0.25", gdsave.Float(0.25).String())
	assert.Equal(t, "-5", gdsave.LayerB5.String())
	assert.Equal(t, "4.50", gdsave.ProbabilityList{{Group: 4, Weight: 50}}.String())
}

func TestEnumNames(t *testing.T) {
	assert.Equal(t, "BounceIn", gdsave.BounceIn.Name())
	assert.Equal(t, gdsave.EasingNone, gdsave.EasingFromInt(99))
	assert.Equal(t, "3DLine", gdsave.ChannelThreeDLine.Name())
	assert.Equal(t, "Channel 12", gdsave.ColourChannel(12).Name())
	assert.Equal(t, "T4", gdsave.LayerT4.Name())
	assert.Equal(t, gdsave.LayerDefault, gdsave.ZLayerFromInt(4))
	assert.Equal(t, "Default", gdsave.ZLayer(4).Name())
	assert.Equal(t, "group-list", gdsave.KindGroupList.String())
}

func TestEqualValues(t *testing.T) {
	assert.True(t, gdsave.EqualValues(gdsave.Int(3), gdsave.Int(3)))
	assert.False(t, gdsave.EqualValues(gdsave.Int(3), gdsave.GroupRef(3)), "variant matters")
	assert.False(t, gdsave.EqualValues(gdsave.Int(3), nil))
	assert.True(t, gdsave.EqualValues(nil, nil))
}
