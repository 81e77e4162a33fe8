package xipnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/x/bsonx/bsoncore"
)

func TestNetworkBSONValueRoundTrip(t *testing.T) {
	tests := []string{"10.0.0.0/8", "2001:db8::/32", "0.0.0.0/0", "::/0"}

	for _, s := range tests {
		in := MustParseNetwork(s)

		typ, data, err := in.MarshalBSONValue()
		require.NoError(t, err)
		assert.Equal(t, byte(bson.TypeString), typ)

		str, _, ok := bsoncore.ReadString(data)
		require.True(t, ok)
		assert.Equal(t, s, str)

		var out Network
		require.NoError(t, out.UnmarshalBSONValue(typ, data))
		assert.Equal(t, in, out)
	}
}

func TestNetworkBSONNull(t *testing.T) {
	var zero Network
	typ, data, err := zero.MarshalBSONValue()
	require.NoError(t, err)
	assert.Equal(t, byte(bson.TypeNull), typ)
	assert.Empty(t, data)

	out := MustParseNetwork("10.0.0.0/8")
	require.NoError(t, out.UnmarshalBSONValue(typ, data))
	assert.False(t, out.IsValid())
}

func TestNetworkBSONErrors(t *testing.T) {
	var n Network

	// 非 string/null 类型
	err := n.UnmarshalBSONValue(byte(bson.TypeInt32), []byte{1, 0, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidFormat)

	// 截断的 string 载荷
	err = n.UnmarshalBSONValue(byte(bson.TypeString), []byte{0xff, 0xff})
	assert.ErrorIs(t, err, ErrInvalidFormat)

	// 严格构造仍然生效
	bad := bsoncore.AppendString(nil, "10.0.0.1/8")
	err = n.UnmarshalBSONValue(byte(bson.TypeString), bad)
	assert.ErrorIs(t, err, ErrHostBitsSet)

	var nilRecv *Network
	assert.ErrorIs(t, nilRecv.UnmarshalBSONValue(byte(bson.TypeNull), nil), ErrNilReceiver)
}

func TestFamilyBSONValue(t *testing.T) {
	v4 := MustParseIPv4Network("192.168.0.0/16")
	typ, data, err := v4.MarshalBSONValue()
	require.NoError(t, err)
	var out4 IPv4Network
	require.NoError(t, out4.UnmarshalBSONValue(typ, data))
	assert.Equal(t, v4, out4)

	v6 := MustParseIPv6Network("2001:db8::/32")
	typ, data, err = v6.MarshalBSONValue()
	require.NoError(t, err)
	var out6 IPv6Network
	require.NoError(t, out6.UnmarshalBSONValue(typ, data))
	assert.Equal(t, v6, out6)

	// 地址族不匹配的文本
	assert.Error(t, out4.UnmarshalBSONValue(typ, data))
}

func TestNetworkBSONInDocument(t *testing.T) {
	type record struct {
		Name string  `bson:"name"`
		Net  Network `bson:"net"`
	}

	in := record{Name: "lab", Net: MustParseNetwork("2001:db8::/32")}
	data, err := bson.Marshal(in)
	require.NoError(t, err)

	var out record
	require.NoError(t, bson.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
