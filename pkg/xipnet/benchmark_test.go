package xipnet

import (
	"net/netip"
	"testing"
)

func BenchmarkParseNetwork(b *testing.B) {
	inputs := []struct {
		name  string
		input string
	}{
		{"v4", "192.168.1.0/24"},
		{"v6", "2001:db8::/32"},
		{"v6 long", "2001:db8:1234:5678:9abc:def0:0:0/112"},
	}

	for _, tc := range inputs {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_, _ = ParseNetwork(tc.input)
			}
		})
	}
}

func BenchmarkNetworkString(b *testing.B) {
	v4 := MustParseNetwork("192.168.1.0/24")
	v6 := MustParseNetwork("2001:db8::/32")

	b.Run("v4", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_ = v4.String()
		}
	})
	b.Run("v6", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_ = v6.String()
		}
	})
}

func BenchmarkContains(b *testing.B) {
	n4 := MustParseIPv4Network("10.0.0.0/8")
	addr4 := netip.MustParseAddr("10.1.2.3")
	n6 := MustParseIPv6Network("2001:db8::/32")
	addr6 := netip.MustParseAddr("2001:db8::1")

	b.Run("v4", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_ = n4.Contains(addr4)
		}
	})
	b.Run("v6", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_ = n6.Contains(addr6)
		}
	})
}

func BenchmarkSubnets(b *testing.B) {
	n := MustParseIPv4Network("10.0.0.0/8")
	b.ReportAllocs()
	for b.Loop() {
		seq, _ := n.Subnets(16)
		for range seq {
		}
	}
}

func BenchmarkHostsIteration(b *testing.B) {
	n := MustParseIPv4Network("192.168.0.0/24")
	b.ReportAllocs()
	for b.Loop() {
		for range n.Hosts() {
		}
	}
}

func BenchmarkNewIPv4Network(b *testing.B) {
	addr := netip.MustParseAddr("192.168.1.0")
	b.ReportAllocs()
	for b.Loop() {
		_, _ = NewIPv4Network(addr, 24)
	}
}
