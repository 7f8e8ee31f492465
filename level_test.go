package gdsave_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/AndrewDonelson/gdsave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData(n int) *gdsave.LevelData {
	d := &gdsave.LevelData{Header: "kS38,1_40|,kA13,0"}
	for i := 0; i < n; i++ {
		cfg := gdsave.DefaultConfig().At(float64(i*30), 15).WithGroups(int16(i%7 + 1))
		d.AddObject(gdsave.DefaultBlock(cfg))
	}
	return d
}

func TestParseLevelData_HeaderAndOrder(t *testing.T) {
	text := "kS38,1|,kA2,0;1,1,2,0,3,0;1,8,2,30,3,0;;1,1,2,60,3,0;"
	d, err := gdsave.ParseLevelData(text, 2)
	require.NoError(t, err)
	assert.Equal(t, "kS38,1|,kA2,0", d.Header)
	require.Len(t, d.Objects, 3, "empty segments are skipped")
	assert.Equal(t, int32(8), d.Objects[1].ID)
	assert.Equal(t, 60.0, d.Objects[2].Config.X)
	assert.Equal(t, "kS38,1|,kA2,0;1,1,2,0,3,0;1,8,2,30,3,0;1,1,2,60,3,0;", d.Serialize())
}

func TestParseLevelData_HeaderOnly(t *testing.T) {
	d, err := gdsave.ParseLevelData("kS38,1", 0)
	require.NoError(t, err)
	assert.Empty(t, d.Objects)
	assert.Equal(t, "kS38,1;", d.Serialize())
}

func TestParseLevelData_TrailingFiller(t *testing.T) {
	for _, text := range []string{
		"hdr;1,1,2,0,3,0;\n",
		"hdr;1,1,2,0,3,0;\x00",
		"hdr;1,1,2,0,3,0; ;",
		"hdr;1,1,2,0,3,0;\r\n",
	} {
		d, err := gdsave.ParseLevelData(text, 1)
		require.NoError(t, err, "%q", text)
		require.Len(t, d.Objects, 1, "%q", text)
		assert.Equal(t, "hdr;1,1,2,0,3,0;", d.Serialize())
	}
}

func TestParseLevelData_BadObject(t *testing.T) {
	_, err := gdsave.ParseLevelData("h;1,1,2,0,3,0;1,1,2;", 1)
	assert.ErrorIs(t, err, gdsave.ErrBadFormat)
}

func TestParseLevelData_ManyChunksKeepOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString("h;")
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&b, "1,1,2,%d,3,0;", i)
	}
	d, err := gdsave.ParseLevelData(b.String(), 4)
	require.NoError(t, err)
	require.Len(t, d.Objects, 2000)
	for i, o := range d.Objects {
		assert.Equal(t, float64(i), o.Config.X)
	}
}

func TestLevelData_EncodeDecodeRoundTrip(t *testing.T) {
	d := sampleData(40)
	rec, err := d.Encode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rec, "H4sIAAAAAAAAC"), rec[:16])

	l := gdsave.NewLevel("x", "y", "", 0)
	l.SetData(d)
	enc, err := l.EncodedRecord()
	require.NoError(t, err)
	assert.Equal(t, rec, enc)
}

func TestLevelData_Groups(t *testing.T) {
	d := &gdsave.LevelData{}
	d.AddObject(gdsave.DefaultBlock(gdsave.DefaultConfig().WithGroups(3, 1)))
	d.AddObject(gdsave.DefaultBlock(gdsave.DefaultConfig().WithGroups(3)))
	d.AddObject(gdsave.MoveTrigger(gdsave.DefaultConfig(), 9, 0, 0, 1, gdsave.EasingNone, 0))
	rnd := gdsave.DefaultBlock(gdsave.DefaultConfig())
	rnd.SetProperty(gdsave.PropProbabilities, gdsave.ProbabilityList{{Group: 12, Weight: 50}})
	d.AddObject(rnd)

	assert.Equal(t, []int16{1, 3}, d.UsedGroups())
	assert.Equal(t, []int16{9, 12}, d.ArgumentGroups())
	unused := d.UnusedGroups()
	assert.Len(t, unused, gdsave.MaxGroup-2)
	assert.Equal(t, int16(2), unused[0])
	assert.NotContains(t, unused, int16(3))
}

func TestLevelData_CloneIsDeep(t *testing.T) {
	d := sampleData(2)
	c := d.Clone()
	c.Objects[0].Config.X = 999
	c.AddObject(gdsave.DefaultBlock(gdsave.DefaultConfig()))
	assert.Equal(t, 0.0, d.Objects[0].Config.X)
	assert.Len(t, d.Objects, 2)
}

func TestNewLevel(t *testing.T) {
	l := gdsave.NewLevel("My level", "me", "a description", 5)
	assert.Equal(t, gdsave.StateDecrypted, l.State())
	d, err := l.Decode()
	require.NoError(t, err)
	assert.Equal(t, gdsave.DefaultLevelHeader, d.Header)
	assert.Empty(t, d.Objects)

	desc, err := l.DecodedDescription()
	require.NoError(t, err)
	assert.Equal(t, "a description", desc)
	assert.NotEqual(t, "a description", l.Description, "stored encoded")

	assert.Contains(t, l.ExtraKeys(), "kCEK")
	assert.Equal(t, `"My level" (a description) by me using song 5; 0 Objects`, l.String())
}

func TestLevel_DecodeIsLazyAndStable(t *testing.T) {
	src := gdsave.NewLevel("lazy", "me", "", 0)
	src.SetData(sampleData(3))
	doc := gdsave.NewSaveDocument()
	doc.AddLevel(src)
	text, err := doc.Text()
	require.NoError(t, err)

	back, err := gdsave.ParseSaveDocument(text)
	require.NoError(t, err)
	l, err := back.Level(0)
	require.NoError(t, err)
	assert.Equal(t, gdsave.StateEncrypted, l.State())
	assert.Contains(t, l.String(), " Bytes")

	d1, err := l.Decode()
	require.NoError(t, err)
	assert.Equal(t, gdsave.StateDecrypted, l.State())
	d2, err := l.Decode()
	require.NoError(t, err)
	assert.Same(t, d1, d2)
	require.Len(t, d1.Objects, 3)
	assert.Equal(t, []int16{1, 2, 3}, d1.UsedGroups())
}

func TestLevel_DecodeCorruptRecord(t *testing.T) {
	text := `<?xml version="1.0"?><plist version="1.0" gjver="2.0"><dict><k>LLM_01</k><d><k>_isArr</k><t /><k>k_0</k><d><k>k2</k><s>bad</s><k>k4</k><s>!!!!</s></d></d></dict></plist>`
	doc, err := gdsave.ParseSaveDocument(text)
	require.NoError(t, err)
	_, err = doc.Levels[0].Decode()
	assert.ErrorIs(t, err, gdsave.ErrDecode)
	assert.Equal(t, gdsave.StateEncrypted, doc.Levels[0].State())
}

func TestLevel_EmptyState(t *testing.T) {
	text := `<?xml version="1.0"?><plist version="1.0" gjver="2.0"><dict><k>LLM_01</k><d><k>_isArr</k><t /><k>k_0</k><d><k>k2</k><s>blank</s></d></d></dict></plist>`
	doc, err := gdsave.ParseSaveDocument(text)
	require.NoError(t, err)
	l := doc.Levels[0]
	assert.Equal(t, gdsave.StateEmpty, l.State())
	_, err = l.Decode()
	assert.ErrorIs(t, err, gdsave.ErrNoLevelData)
	assert.Contains(t, l.String(), "; Empty")

	require.NoError(t, l.AddObject(gdsave.DefaultBlock(gdsave.DefaultConfig())))
	assert.Equal(t, gdsave.StateDecrypted, l.State())
	d, err := l.Decode()
	require.NoError(t, err)
	assert.Len(t, d.Objects, 1)
}

func TestLevel_BadKeyType(t *testing.T) {
	text := `<?xml version="1.0"?><plist version="1.0" gjver="2.0"><dict><k>LLM_01</k><d><k>k_0</k><d><k>k2</k><i>5</i></d></d></dict></plist>`
	_, err := gdsave.ParseSaveDocument(text)
	assert.ErrorIs(t, err, gdsave.ErrBadFormat)
}
