package codec_test

import (
	"testing"

	"github.com/AndrewDonelson/gdsave/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Header  string   `json:"h" msgpack:"h"`
	Records []string `json:"r" msgpack:"r"`
}

var sample = payload{
	Header:  "kS38,1_40_2_125_3_255",
	Records: []string{"1,1,2,15,3,15", "1,914,2,45,3,15,31,SGk="},
}

func TestJSONCodec(t *testing.T) {
	c := codec.JSON{}
	b, err := c.Marshal(sample)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"h":"kS38`)

	var got payload
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, sample, got)
	assert.Equal(t, "json", c.Name())
}

func TestMsgPackCodec(t *testing.T) {
	c := codec.MsgPack{}
	b, err := c.Marshal(sample)
	require.NoError(t, err)

	var got payload
	require.NoError(t, c.Unmarshal(b, &got))
	assert.Equal(t, sample, got)
	assert.Equal(t, "msgpack", c.Name())
}

func TestMsgPackCodec_BadInput(t *testing.T) {
	var got payload
	assert.Error(t, codec.MsgPack{}.Unmarshal([]byte{0xc1}, &got))
}

func TestCodecs_RejectForeignPayloadShape(t *testing.T) {
	foreign := struct {
		Header string `json:"h" msgpack:"h"`
		Extra  int    `json:"x" msgpack:"x"`
	}{Header: "kS38", Extra: 1}
	for _, c := range []codec.Codec{codec.JSON{}, codec.MsgPack{}} {
		b, err := c.Marshal(foreign)
		require.NoError(t, err)
		var got payload
		assert.Error(t, c.Unmarshal(b, &got), c.Name())
	}
}

func TestJSONCodec_BadInput(t *testing.T) {
	var got payload
	assert.Error(t, codec.JSON{}.Unmarshal([]byte("{"), &got))
}

func TestByName(t *testing.T) {
	c, err := codec.ByName("")
	require.NoError(t, err)
	assert.Equal(t, "msgpack", c.Name())

	c, err = codec.ByName(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	_, err = codec.ByName("gob")
	assert.ErrorIs(t, err, codec.ErrUnknownCodec)
}
