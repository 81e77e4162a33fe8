package xipnet

import (
	"fmt"
	"math/big"
	"net/netip"
	"strconv"

	"go4.org/netipx"
)

// IPv6Network 表示一个 IPv6 网络（CIDR 块）：网络地址 + 前缀长度。
//
// 与 [IPv4Network] 相同的值语义：零值无效、可比较、可作 map key、并发安全。
// 不变量：存储的地址一定是网络地址（主机位全零）。
//
// IPv4-mapped IPv6 地址（::ffff:x.x.x.x）以 16 字节形式参与 IPv6 运算，
// 不会被自动 Unmap；如需 IPv4 语义请使用 [NewIPv4Network]。
type IPv6Network struct {
	// 地址的 128 位表示（网络字节序）。
	ip uint128
	// 前缀长度 + 1。0 表示无效（零值）。
	bitsPlusOne uint8
}

// ipv6NetworkFromU128 从已校验的 (ip, bits) 直接构建，内部使用。
// 调用前必须保证 bits <= 128 且 ip 主机位为零。
func ipv6NetworkFromU128(ip uint128, bits uint8) IPv6Network {
	return IPv6Network{ip: ip, bitsPlusOne: bits + 1}
}

// NewIPv6Network 严格构造 IPv6 网络。
//
// addr 必须是 16 字节表示的 IPv6 地址（含 IPv4-mapped），且不携带 zone ID。
// bits > 128 返回 [ErrPrefixLength]；addr 在 bits 之外存在非零主机位
// 返回 [ErrHostBitsSet]（不做任何截断）。
func NewIPv6Network(addr netip.Addr, bits uint8) (IPv6Network, error) {
	ip, err := checkIPv6Args(addr, bits)
	if err != nil {
		return IPv6Network{}, err
	}
	if !ip.and(mask128(bits).not()).isZero() {
		return IPv6Network{}, fmt.Errorf("%w: %s/%d", ErrHostBitsSet, addr, bits)
	}
	return ipv6NetworkFromU128(ip, bits), nil
}

// NewIPv6NetworkTruncated 截断构造 IPv6 网络：静默清除主机位。
// 仅在 bits > 128 或 addr 不是 IPv6 地址时失败。
func NewIPv6NetworkTruncated(addr netip.Addr, bits uint8) (IPv6Network, error) {
	ip, err := checkIPv6Args(addr, bits)
	if err != nil {
		return IPv6Network{}, err
	}
	return ipv6NetworkFromU128(ip.and(mask128(bits)), bits), nil
}

// checkIPv6Args 校验构造参数，返回地址的 uint128 表示。
func checkIPv6Args(addr netip.Addr, bits uint8) (uint128, error) {
	if !addr.IsValid() || addr.Is4() {
		return uint128{}, fmt.Errorf("%w: %s is not IPv6", ErrInvalidAddress, addr)
	}
	if addr.Zone() != "" {
		return uint128{}, fmt.Errorf("%w: zone identifier not supported: %s", ErrInvalidAddress, addr)
	}
	if bits > 128 {
		return uint128{}, fmt.Errorf("%w: %d > 128", ErrPrefixLength, bits)
	}
	return addrToU128(addr), nil
}

// IsValid 报告 n 是否为有效网络。零值返回 false。
func (n IPv6Network) IsValid() bool {
	return n.bitsPlusOne > 0
}

// Addr 返回网络地址（范围内第一个地址）。无效网络返回零值 [netip.Addr]。
func (n IPv6Network) Addr() netip.Addr {
	if !n.IsValid() {
		return netip.Addr{}
	}
	return addrFromU128(n.ip)
}

// PrefixLen 返回前缀长度（0..128）。无效网络返回 0。
func (n IPv6Network) PrefixLen() uint8 {
	if !n.IsValid() {
		return 0
	}
	return n.bitsPlusOne - 1
}

// Netmask 返回网络掩码地址（前缀位全 1）。无效网络返回零值。
func (n IPv6Network) Netmask() netip.Addr {
	if !n.IsValid() {
		return netip.Addr{}
	}
	return addrFromU128(mask128(n.PrefixLen()))
}

// Hostmask 返回主机掩码地址（网络掩码按位取反）。无效网络返回零值。
func (n IPv6Network) Hostmask() netip.Addr {
	if !n.IsValid() {
		return netip.Addr{}
	}
	return addrFromU128(mask128(n.PrefixLen()).not())
}

// Broadcast 返回范围内最后一个地址（主机位全 1）。
// IPv6 没有广播概念，方法名沿用 CIDR 术语以与 [IPv4Network] 对称。
// 无效网络返回零值。
func (n IPv6Network) Broadcast() netip.Addr {
	if !n.IsValid() {
		return netip.Addr{}
	}
	return addrFromU128(n.last())
}

// last 返回范围内最后一个地址的 uint128 表示。
func (n IPv6Network) last() uint128 {
	return n.ip.or(mask128(n.PrefixLen()).not())
}

// Contains 报告 addr 是否在 n 的范围内。
// 非 IPv6 地址（4 字节表示）、携带 zone ID 的地址或无效网络返回 false。
func (n IPv6Network) Contains(addr netip.Addr) bool {
	if !n.IsValid() || !addr.IsValid() || addr.Is4() || addr.Zone() != "" {
		return false
	}
	return addrToU128(addr).and(mask128(n.PrefixLen())) == n.ip
}

// ContainsNetwork 报告 other 是否完整落在 n 的范围内。
// 任一网络无效返回 false。
func (n IPv6Network) ContainsNetwork(other IPv6Network) bool {
	if !n.IsValid() || !other.IsValid() {
		return false
	}
	return other.PrefixLen() >= n.PrefixLen() &&
		other.ip.and(mask128(n.PrefixLen())) == n.ip
}

// Overlaps 报告 n 与 other 的地址范围是否存在交集。
func (n IPv6Network) Overlaps(other IPv6Network) bool {
	return n.ContainsNetwork(other) || other.ContainsNetwork(n)
}

// Supernet 返回前缀长度减一的父网络（截断构造）。
// 前缀长度已为 0 或网络无效时返回 (零值, false)。
func (n IPv6Network) Supernet() (IPv6Network, bool) {
	if !n.IsValid() || n.PrefixLen() == 0 {
		return IPv6Network{}, false
	}
	bits := n.PrefixLen() - 1
	return ipv6NetworkFromU128(n.ip.and(mask128(bits)), bits), true
}

// Compare 比较两个网络的顺序：网络地址优先，前缀长度次之。
// 返回 -1 (n < other)、0 (n == other)、1 (n > other)。
func (n IPv6Network) Compare(other IPv6Network) int {
	if c := n.ip.cmp(other.ip); c != 0 {
		return c
	}
	switch {
	case n.bitsPlusOne < other.bitsPlusOne:
		return -1
	case n.bitsPlusOne > other.bitsPlusOne:
		return 1
	default:
		return 0
	}
}

// Prefix 返回等价的 [netip.Prefix]。无效网络返回零值。
func (n IPv6Network) Prefix() netip.Prefix {
	if !n.IsValid() {
		return netip.Prefix{}
	}
	return netip.PrefixFrom(n.Addr(), int(n.PrefixLen()))
}

// IPRange 返回等价的 [netipx.IPRange]。无效网络返回零值。
func (n IPv6Network) IPRange() netipx.IPRange {
	if !n.IsValid() {
		return netipx.IPRange{}
	}
	return netipx.RangeOfPrefix(n.Prefix())
}

// String 返回 CIDR 文本形式 "x:x::x/y"（RFC 5952 规范化）。
// 无效网络返回空字符串。
func (n IPv6Network) String() string {
	if !n.IsValid() {
		return ""
	}
	return n.Addr().String() + "/" + strconv.Itoa(int(n.PrefixLen()))
}

// AddrCount 返回范围内的地址总数 2^(128-前缀长度)。
// 结果可达 2^128，因此返回 *big.Int。无效网络返回 0。
func (n IPv6Network) AddrCount() *big.Int {
	if !n.IsValid() {
		return new(big.Int)
	}
	return new(big.Int).Lsh(big.NewInt(1), 128-uint(n.PrefixLen()))
}

// HostCount 返回 [IPv6Network.Hosts] 会产出的主机地址数量。
// 前缀长度 <= 126 时为地址总数减 2（排除首尾地址）；/127 与 /128 不做排除。
// 无效网络返回 0。
func (n IPv6Network) HostCount() *big.Int {
	count := n.AddrCount()
	if count.Cmp(big.NewInt(2)) > 0 {
		return count.Sub(count, big.NewInt(2))
	}
	return count
}
