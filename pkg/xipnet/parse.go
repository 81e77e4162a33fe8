package xipnet

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// ParseNetwork 解析 CIDR 文本 "addr/bits" 为 [Network]（严格构造）。
//
// 解析规则：
//   - 在最后一个 "/" 处分割，地址部分交给 [netip.ParseAddr]
//   - 地址族由地址本身决定：点分十进制为 IPv4，冒分十六进制
//     （含 ::ffff:x.x.x.x）为 IPv6
//   - 前缀长度必须是不带符号、不带前导零的十进制（"0" 本身除外）
//   - 携带 zone ID（如 "fe80::1%eth0/64"）的输入被拒绝
//
// 错误：空输入 [ErrEmpty]；缺少 "/"、任一部分为空或前缀长度格式非法
// [ErrInvalidFormat]；地址非法或带 zone [ErrInvalidAddress]；前缀长度
// 超出地址族位宽 [ErrPrefixLength]；主机位非零 [ErrHostBitsSet]。
func ParseNetwork(s string) (Network, error) {
	addr, bits, err := splitCIDR(s)
	if err != nil {
		return Network{}, err
	}
	return NewNetwork(addr, bits)
}

// ParseNetworkTruncated 与 [ParseNetwork] 规则相同，但截断构造：
// 主机位被静默清除而不是报错。调用方由此显式选择掩码语义。
func ParseNetworkTruncated(s string) (Network, error) {
	addr, bits, err := splitCIDR(s)
	if err != nil {
		return Network{}, err
	}
	return NewNetworkTruncated(addr, bits)
}

// ParseIPv4Network 解析 IPv4 CIDR 文本（严格构造）。
// 解析出的地址不是 IPv4 时返回 [ErrInvalidAddress]。
func ParseIPv4Network(s string) (IPv4Network, error) {
	addr, bits, err := splitCIDR(s)
	if err != nil {
		return IPv4Network{}, err
	}
	return NewIPv4Network(addr, bits)
}

// ParseIPv6Network 解析 IPv6 CIDR 文本（严格构造）。
// 解析出的地址不是 IPv6 时返回 [ErrInvalidAddress]。
func ParseIPv6Network(s string) (IPv6Network, error) {
	addr, bits, err := splitCIDR(s)
	if err != nil {
		return IPv6Network{}, err
	}
	return NewIPv6Network(addr, bits)
}

// MustParseNetwork 等同 [ParseNetwork]，解析失败时 panic。
// 仅用于测试和以常量字符串初始化的场合。
func MustParseNetwork(s string) Network {
	n, err := ParseNetwork(s)
	if err != nil {
		panic(err)
	}
	return n
}

// MustParseIPv4Network 等同 [ParseIPv4Network]，解析失败时 panic。
func MustParseIPv4Network(s string) IPv4Network {
	n, err := ParseIPv4Network(s)
	if err != nil {
		panic(err)
	}
	return n
}

// MustParseIPv6Network 等同 [ParseIPv6Network]，解析失败时 panic。
func MustParseIPv6Network(s string) IPv6Network {
	n, err := ParseIPv6Network(s)
	if err != nil {
		panic(err)
	}
	return n
}

// splitCIDR 把 "addr/bits" 拆为地址和前缀长度。
// 在最后一个 "/" 处分割，IPv6 地址内部不含 "/"，因此无歧义。
func splitCIDR(s string) (netip.Addr, uint8, error) {
	if s == "" {
		return netip.Addr{}, 0, ErrEmpty
	}
	idx := strings.LastIndexByte(s, '/')
	if idx < 0 {
		return netip.Addr{}, 0, fmt.Errorf("%w: missing '/' in %q", ErrInvalidFormat, s)
	}
	addrPart, bitsPart := s[:idx], s[idx+1:]
	if addrPart == "" || bitsPart == "" {
		return netip.Addr{}, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	addr, err := netip.ParseAddr(addrPart)
	if err != nil {
		return netip.Addr{}, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, addrPart)
	}
	if addr.Zone() != "" {
		return netip.Addr{}, 0, fmt.Errorf("%w: zone identifier not supported: %q", ErrInvalidAddress, addrPart)
	}

	bits, err := parsePrefixLen(bitsPart, addr)
	if err != nil {
		return netip.Addr{}, 0, err
	}
	return addr, bits, nil
}

// parsePrefixLen 解析前缀长度的十进制文本。
// 拒绝符号、前导零和非数字字符；数值超出地址族位宽返回 [ErrPrefixLength]。
func parsePrefixLen(s string, addr netip.Addr) (uint8, error) {
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("%w: prefix length %q has leading zero", ErrInvalidFormat, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: prefix length %q is not decimal", ErrInvalidFormat, s)
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		// 全数字但超出 uint64，必然超出位宽。
		return 0, fmt.Errorf("%w: %q", ErrPrefixLength, s)
	}
	width := uint64(32)
	if !addr.Is4() {
		width = 128
	}
	if v > width {
		return 0, fmt.Errorf("%w: %d > %d", ErrPrefixLength, v, width)
	}
	return uint8(v), nil
}
