package xipnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetwork(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "v4 basic", input: "192.168.0.0/24", want: "192.168.0.0/24"},
		{name: "v4 whole space", input: "0.0.0.0/0", want: "0.0.0.0/0"},
		{name: "v4 host route", input: "10.0.0.1/32", want: "10.0.0.1/32"},
		{name: "v6 basic", input: "2001:db8::/32", want: "2001:db8::/32"},
		{name: "v6 whole space", input: "::/0", want: "::/0"},
		{name: "v6 canonicalized", input: "2001:0db8:0000::/32", want: "2001:db8::/32"},
		{name: "v6 mapped", input: "::ffff:192.168.0.0/112", want: "::ffff:192.168.0.0/112"},

		{name: "empty", input: "", wantErr: ErrEmpty},
		{name: "missing slash", input: "192.168.0.0", wantErr: ErrInvalidFormat},
		{name: "empty address part", input: "/24", wantErr: ErrInvalidFormat},
		{name: "empty prefix part", input: "192.168.0.0/", wantErr: ErrInvalidFormat},
		{name: "double slash", input: "10.0.0.0//8", wantErr: ErrInvalidAddress},
		{name: "leading zero prefix", input: "10.0.0.0/08", wantErr: ErrInvalidFormat},
		{name: "plus sign prefix", input: "10.0.0.0/+8", wantErr: ErrInvalidFormat},
		{name: "negative prefix", input: "10.0.0.0/-1", wantErr: ErrInvalidFormat},
		{name: "hex prefix", input: "10.0.0.0/0x8", wantErr: ErrInvalidFormat},
		{name: "garbage address", input: "not-an-ip/24", wantErr: ErrInvalidAddress},
		{name: "octet overflow", input: "192.168.0.256/24", wantErr: ErrInvalidAddress},
		{name: "zone rejected", input: "fe80::1%eth0/64", wantErr: ErrInvalidAddress},
		{name: "v4 prefix too long", input: "192.168.0.0/33", wantErr: ErrPrefixLength},
		{name: "v6 prefix too long", input: "2001:db8::/129", wantErr: ErrPrefixLength},
		{name: "prefix overflows uint64", input: "10.0.0.0/99999999999999999999", wantErr: ErrPrefixLength},
		{name: "v4 host bits", input: "192.168.1.1/24", wantErr: ErrHostBitsSet},
		{name: "v6 host bits", input: "2001:db8::1/32", wantErr: ErrHostBitsSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNetwork(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, got.IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseNetworkTruncated(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "v4 host bits cleared", input: "192.168.1.1/24", want: "192.168.1.0/24"},
		{name: "v6 host bits cleared", input: "2001:db8::1/32", want: "2001:db8::/32"},
		{name: "aligned input unchanged", input: "10.0.0.0/8", want: "10.0.0.0/8"},
		{name: "format errors still surface", input: "10.0.0.0/08", wantErr: ErrInvalidFormat},
		{name: "prefix errors still surface", input: "10.0.0.0/33", wantErr: ErrPrefixLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNetworkTruncated(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseFamilySpecific(t *testing.T) {
	n4, err := ParseIPv4Network("192.168.0.0/16")
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.0/16", n4.String())

	// 地址族不匹配
	_, err = ParseIPv4Network("2001:db8::/32")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	n6, err := ParseIPv6Network("2001:db8::/32")
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::/32", n6.String())

	_, err = ParseIPv6Network("192.168.0.0/16")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	// mapped 文本是 16 字节表示，归 IPv6
	_, err = ParseIPv4Network("::ffff:192.168.0.0/112")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestMustParsePanics(t *testing.T) {
	assert.NotPanics(t, func() { MustParseNetwork("10.0.0.0/8") })
	assert.Panics(t, func() { MustParseNetwork("10.0.0.1/8") })
	assert.Panics(t, func() { MustParseIPv4Network("bogus") })
	assert.Panics(t, func() { MustParseIPv6Network("10.0.0.0/8") })
}

func TestParseFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"0.0.0.0/0",
		"10.0.0.0/8",
		"192.168.1.0/24",
		"203.0.113.192/26",
		"255.255.255.255/32",
		"::/0",
		"::1/128",
		"2001:db8::/32",
		"fe80::/10",
		"ff0e::/16",
	}

	for _, s := range inputs {
		n := MustParseNetwork(s)
		assert.Equal(t, s, n.String())
		assert.Equal(t, n, MustParseNetwork(n.String()))
	}
}
