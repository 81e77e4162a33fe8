package xipnet

import (
	"math/big"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIPv6Network(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		bits    uint8
		want    string
		wantErr error
	}{
		{name: "aligned /32", addr: "2001:db8::", bits: 32, want: "2001:db8::/32"},
		{name: "host bits set", addr: "2001:db8::1", bits: 32, wantErr: ErrHostBitsSet},
		{name: "host bits in hi limb", addr: "2001:db8:1::", bits: 32, wantErr: ErrHostBitsSet},
		{name: "whole space", addr: "::", bits: 0, want: "::/0"},
		{name: "host route", addr: "::1", bits: 128, want: "::1/128"},
		{name: "prefix too long", addr: "2001:db8::", bits: 129, wantErr: ErrPrefixLength},
		{name: "ipv4 address rejected", addr: "192.168.1.0", bits: 24, wantErr: ErrInvalidAddress},
		{name: "mapped stays ipv6", addr: "::ffff:c0a8:0", bits: 112, want: "::ffff:192.168.0.0/112"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewIPv6Network(netip.MustParseAddr(tt.addr), tt.bits)
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

func TestNewIPv6NetworkRejectsZone(t *testing.T) {
	addr := netip.MustParseAddr("fe80::1%eth0")
	_, err := NewIPv6Network(addr, 64)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = NewIPv6NetworkTruncated(addr, 64)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestNewIPv6NetworkTruncated(t *testing.T) {
	tests := []struct {
		name string
		addr string
		bits uint8
		want string
	}{
		{name: "host bits cleared", addr: "2001:db8::dead:beef", bits: 32, want: "2001:db8::/32"},
		{name: "cross limb boundary", addr: "2001:db8:0:1:8000::", bits: 65, want: "2001:db8:0:1:8000::/65"},
		{name: "clear below limb boundary", addr: "2001:db8:0:1:8000::1", bits: 65, want: "2001:db8:0:1:8000::/65"},
		{name: "clear to zero", addr: "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff", bits: 0, want: "::/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewIPv6NetworkTruncated(netip.MustParseAddr(tt.addr), tt.bits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestIPv6NetworkRoundTrip(t *testing.T) {
	// 解析-格式化比特级往返
	inputs := []string{
		"::/0",
		"::1/128",
		"2001:db8::/32",
		"fe80::/10",
		"ff0e::/16",
		"2001:db8:0:1::/64",
		"::ffff:192.168.0.0/112",
	}
	for _, s := range inputs {
		n := MustParseIPv6Network(s)
		assert.Equal(t, s, n.String())
		again := MustParseIPv6Network(n.String())
		assert.Equal(t, n, again)
	}
}

func TestIPv6NetworkZeroValue(t *testing.T) {
	var n IPv6Network
	assert.False(t, n.IsValid())
	assert.Equal(t, "", n.String())
	assert.Equal(t, netip.Addr{}, n.Addr())
	assert.Equal(t, "0", n.AddrCount().String())

	whole := MustParseIPv6Network("::/0")
	assert.True(t, whole.IsValid())
	assert.NotEqual(t, n, whole)
}

func TestIPv6NetworkAccessors(t *testing.T) {
	n := MustParseIPv6Network("2001:db8::/32")

	assert.Equal(t, "2001:db8::", n.Addr().String())
	assert.Equal(t, uint8(32), n.PrefixLen())
	assert.Equal(t, "ffff:ffff::", n.Netmask().String())
	assert.Equal(t, "::ffff:ffff:ffff:ffff:ffff:ffff", n.Hostmask().String())
	assert.Equal(t, "2001:db8:ffff:ffff:ffff:ffff:ffff:ffff", n.Broadcast().String())
	assert.Equal(t, netip.MustParsePrefix("2001:db8::/32"), n.Prefix())
}

func TestIPv6NetworkContains(t *testing.T) {
	n := MustParseIPv6Network("2001:db8::/32")

	tests := []struct {
		addr string
		want bool
	}{
		{"2001:db8::", true},
		{"2001:db8::1", true},
		{"2001:db8:ffff:ffff:ffff:ffff:ffff:ffff", true},
		{"2001:db9::", false},
		{"2001:db7:ffff::", false},
		{"192.168.1.1", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Contains(netip.MustParseAddr(tt.addr)), "Contains(%s)", tt.addr)
	}

	// zone 地址不参与判断
	assert.False(t, MustParseIPv6Network("fe80::/10").Contains(netip.MustParseAddr("fe80::1%eth0")))
}

func TestIPv6NetworkContainsNetwork(t *testing.T) {
	tests := []struct {
		outer string
		inner string
		want  bool
	}{
		{"2001:db8::/32", "2001:db8:1::/48", true},
		{"2001:db8::/32", "2001:db8::/32", true},
		{"2001:db8:1::/48", "2001:db8::/32", false},
		{"2001:db8::/32", "2001:db9::/48", false},
		{"::/0", "2001:db8::/32", true},
	}

	for _, tt := range tests {
		outer := MustParseIPv6Network(tt.outer)
		inner := MustParseIPv6Network(tt.inner)
		assert.Equal(t, tt.want, outer.ContainsNetwork(inner), "%s contains %s", tt.outer, tt.inner)
	}
}

func TestIPv6NetworkSupernet(t *testing.T) {
	n := MustParseIPv6Network("2001:db8::/32")

	super, ok := n.Supernet()
	require.True(t, ok)
	assert.Equal(t, "2001:db8::/31", super.String())
	assert.True(t, super.ContainsNetwork(n))

	_, ok = MustParseIPv6Network("::/0").Supernet()
	assert.False(t, ok)
}

func TestIPv6NetworkCompare(t *testing.T) {
	ordered := []string{
		"::/0",
		"::1/128",
		"2001:db8::/32",
		"2001:db8::/48",
		"2001:db9::/32",
	}
	for i, s := range ordered {
		for j, other := range ordered {
			got := MustParseIPv6Network(s).Compare(MustParseIPv6Network(other))
			switch {
			case i < j:
				assert.Equal(t, -1, got, "%s < %s", s, other)
			case i > j:
				assert.Equal(t, 1, got, "%s > %s", s, other)
			default:
				assert.Equal(t, 0, got)
			}
		}
	}
}

func TestIPv6NetworkCounts(t *testing.T) {
	two := big.NewInt(2)

	full := MustParseIPv6Network("::/0")
	wantFull := new(big.Int).Lsh(big.NewInt(1), 128)
	assert.Equal(t, wantFull.String(), full.AddrCount().String())
	assert.Equal(t, new(big.Int).Sub(wantFull, two).String(), full.HostCount().String())

	slash64 := MustParseIPv6Network("2001:db8::/64")
	want64 := new(big.Int).Lsh(big.NewInt(1), 64)
	assert.Equal(t, want64.String(), slash64.AddrCount().String())

	tests := []struct {
		cidr      string
		wantAddrs string
		wantHosts string
	}{
		{"2001:db8::/126", "4", "2"},
		{"2001:db8::/127", "2", "2"},
		{"2001:db8::1/128", "1", "1"},
	}
	for _, tt := range tests {
		n := MustParseIPv6Network(tt.cidr)
		assert.Equal(t, tt.wantAddrs, n.AddrCount().String(), "AddrCount(%s)", tt.cidr)
		assert.Equal(t, tt.wantHosts, n.HostCount().String(), "HostCount(%s)", tt.cidr)
	}
}

func TestIPv6NetworkClassify(t *testing.T) {
	tests := []struct {
		cidr  string
		check func(IPv6Network) bool
		want  bool
	}{
		{"::/128", IPv6Network.IsUnspecified, true},
		{"::/0", IPv6Network.IsUnspecified, false},
		{"::1/128", IPv6Network.IsLoopback, true},
		{"::/128", IPv6Network.IsLoopback, false},
		{"fc00::/7", IPv6Network.IsUniqueLocal, true},
		{"fd00::/8", IPv6Network.IsUniqueLocal, true},
		{"fe00::/7", IPv6Network.IsUniqueLocal, false},
		{"fe80::/10", IPv6Network.IsUnicastLinkLocal, true},
		{"fe80::/64", IPv6Network.IsUnicastLinkLocal, true},
		{"fec0::/10", IPv6Network.IsUnicastSiteLocal, true},
		{"2001:db8::/32", IPv6Network.IsDocumentation, true},
		{"2001:db8:1::/48", IPv6Network.IsDocumentation, true},
		{"2001:db0::/28", IPv6Network.IsDocumentation, false},
		{"ff00::/8", IPv6Network.IsMulticast, true},
		{"ff02::/16", IPv6Network.IsMulticast, true},
		{"fe00::/8", IPv6Network.IsMulticast, false},
		{"2001:db8::/32", IPv6Network.IsUnicastGlobal, false},
		{"2a00::/12", IPv6Network.IsUnicastGlobal, true},
		{"2a00::/12", IPv6Network.IsGlobal, true},
		{"ff0e::/16", IPv6Network.IsGlobal, true},
		{"ff02::/16", IPv6Network.IsGlobal, false},
		{"fc00::/7", IPv6Network.IsGlobal, false},
	}

	for _, tt := range tests {
		n := MustParseIPv6Network(tt.cidr)
		assert.Equal(t, tt.want, tt.check(n), "%s", tt.cidr)
	}
}

func TestIPv6NetworkScope(t *testing.T) {
	tests := []struct {
		cidr string
		want MulticastScope
	}{
		{"ff01::/16", ScopeInterfaceLocal},
		{"ff02::/16", ScopeLinkLocal},
		{"ff03::/16", ScopeRealmLocal},
		{"ff04::/16", ScopeAdminLocal},
		{"ff05::/16", ScopeSiteLocal},
		{"ff08::/16", ScopeOrganizationLocal},
		{"ff0e::/16", ScopeGlobal},
		{"ff0f::/16", ScopeNone}, // 未分配的作用域值
		{"2001:db8::/32", ScopeNone},
	}

	for _, tt := range tests {
		n := MustParseIPv6Network(tt.cidr)
		assert.Equal(t, tt.want, n.Scope(), "%s", tt.cidr)
	}

	assert.Equal(t, "link-local", ScopeLinkLocal.String())
	assert.Equal(t, "none", ScopeNone.String())
}

func TestIPv6NetworkComparable(t *testing.T) {
	a := MustParseIPv6Network("2001:db8::/32")
	b := MustParseIPv6Network("2001:db8::/32")
	assert.True(t, a == b)

	seen := map[IPv6Network]int{a: 1}
	assert.Equal(t, 1, seen[b])
}
