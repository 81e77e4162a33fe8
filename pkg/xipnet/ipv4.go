package xipnet

import (
	"fmt"
	"net/netip"
	"strconv"

	"go4.org/netipx"
)

// IPv4Network 表示一个 IPv4 网络（CIDR 块）：网络地址 + 前缀长度。
//
// IPv4Network 是不可变值类型：
//   - 零值表示无效网络，IsValid() 返回 false
//   - 可直接比较（==）和用作 map key
//   - 并发安全，无需加锁
//
// 不变量：存储的地址一定是网络地址（主机位全零）。
// 使用 [NewIPv4Network]（严格）或 [NewIPv4NetworkTruncated]（截断）创建。
type IPv4Network struct {
	// 地址的 32 位无符号整数表示（网络字节序）。
	ip uint32
	// 前缀长度 + 1。0 表示无效（零值），借鉴 [netip.Prefix] 的编码方式，
	// 使零值与合法的 0.0.0.0/0 可区分。
	bitsPlusOne uint8
}

// ipv4NetworkFromUint32 从已校验的 (ip, bits) 直接构建，内部使用。
// 调用前必须保证 bits <= 32 且 ip 主机位为零。
func ipv4NetworkFromUint32(ip uint32, bits uint8) IPv4Network {
	return IPv4Network{ip: ip, bitsPlusOne: bits + 1}
}

// NewIPv4Network 严格构造 IPv4 网络。
//
// addr 必须是 IPv4 地址（4 字节或 IPv4-mapped IPv6，后者自动 Unmap）。
// bits > 32 返回 [ErrPrefixLength]；addr 在 bits 之外存在非零主机位
// 返回 [ErrHostBitsSet]（不做任何截断）。
func NewIPv4Network(addr netip.Addr, bits uint8) (IPv4Network, error) {
	ip, err := checkIPv4Args(addr, bits)
	if err != nil {
		return IPv4Network{}, err
	}
	if ip&^mask32(bits) != 0 {
		return IPv4Network{}, fmt.Errorf("%w: %s/%d", ErrHostBitsSet, addr.Unmap(), bits)
	}
	return ipv4NetworkFromUint32(ip, bits), nil
}

// NewIPv4NetworkTruncated 截断构造 IPv4 网络：静默清除主机位。
// 仅在 bits > 32 或 addr 不是 IPv4 地址时失败。
// 调用方可用 [HostBitsSet] 预先判断截断是否会改变地址。
func NewIPv4NetworkTruncated(addr netip.Addr, bits uint8) (IPv4Network, error) {
	ip, err := checkIPv4Args(addr, bits)
	if err != nil {
		return IPv4Network{}, err
	}
	return ipv4NetworkFromUint32(ip&mask32(bits), bits), nil
}

// checkIPv4Args 校验构造参数，返回地址的 uint32 表示。
func checkIPv4Args(addr netip.Addr, bits uint8) (uint32, error) {
	if !addr.Is4() && !addr.Is4In6() {
		return 0, fmt.Errorf("%w: %s is not IPv4", ErrInvalidAddress, addr)
	}
	if bits > 32 {
		return 0, fmt.Errorf("%w: %d > 32", ErrPrefixLength, bits)
	}
	return addrToUint32(addr), nil
}

// IsValid 报告 n 是否为有效网络。零值返回 false。
func (n IPv4Network) IsValid() bool {
	return n.bitsPlusOne > 0
}

// Addr 返回网络地址（范围内第一个地址）。
// 无效网络返回零值 [netip.Addr]。
func (n IPv4Network) Addr() netip.Addr {
	if !n.IsValid() {
		return netip.Addr{}
	}
	return addrFromUint32(n.ip)
}

// PrefixLen 返回前缀长度（0..32）。无效网络返回 0。
func (n IPv4Network) PrefixLen() uint8 {
	if !n.IsValid() {
		return 0
	}
	return n.bitsPlusOne - 1
}

// Netmask 返回网络掩码地址（前缀位全 1）。无效网络返回零值。
func (n IPv4Network) Netmask() netip.Addr {
	if !n.IsValid() {
		return netip.Addr{}
	}
	return addrFromUint32(mask32(n.PrefixLen()))
}

// Hostmask 返回主机掩码地址（网络掩码按位取反）。无效网络返回零值。
func (n IPv4Network) Hostmask() netip.Addr {
	if !n.IsValid() {
		return netip.Addr{}
	}
	return addrFromUint32(^mask32(n.PrefixLen()))
}

// Broadcast 返回广播地址（范围内最后一个地址，主机位全 1）。
// 无效网络返回零值。
func (n IPv4Network) Broadcast() netip.Addr {
	if !n.IsValid() {
		return netip.Addr{}
	}
	return addrFromUint32(n.last())
}

// last 返回范围内最后一个地址的 uint32 表示。
func (n IPv4Network) last() uint32 {
	return n.ip | ^mask32(n.PrefixLen())
}

// Contains 报告 addr 是否在 n 的范围内。
// IPv4-mapped IPv6 地址（::ffff:x.x.x.x）自动 Unmap 后参与判断。
// 非 IPv4 地址或无效网络返回 false。
func (n IPv4Network) Contains(addr netip.Addr) bool {
	if !n.IsValid() || (!addr.Is4() && !addr.Is4In6()) {
		return false
	}
	return addrToUint32(addr)&mask32(n.PrefixLen()) == n.ip
}

// ContainsNetwork 报告 other 是否完整落在 n 的范围内：
// other 的前缀长度不小于 n，且两者的前 n.PrefixLen() 位相同。
// 任一网络无效返回 false。
func (n IPv4Network) ContainsNetwork(other IPv4Network) bool {
	if !n.IsValid() || !other.IsValid() {
		return false
	}
	return other.PrefixLen() >= n.PrefixLen() &&
		other.ip&mask32(n.PrefixLen()) == n.ip
}

// Overlaps 报告 n 与 other 的地址范围是否存在交集。
// CIDR 块要么不相交要么包含，因此等价于"其一包含另一"。
func (n IPv4Network) Overlaps(other IPv4Network) bool {
	return n.ContainsNetwork(other) || other.ContainsNetwork(n)
}

// Supernet 返回前缀长度减一的父网络（截断构造）。
// 前缀长度已为 0 或网络无效时返回 (零值, false)。
func (n IPv4Network) Supernet() (IPv4Network, bool) {
	if !n.IsValid() || n.PrefixLen() == 0 {
		return IPv4Network{}, false
	}
	bits := n.PrefixLen() - 1
	return ipv4NetworkFromUint32(n.ip&mask32(bits), bits), true
}

// Compare 比较两个网络的顺序：网络地址优先，前缀长度次之。
// 返回 -1 (n < other)、0 (n == other)、1 (n > other)。
// 无效网络排在所有有效网络之前。
func (n IPv4Network) Compare(other IPv4Network) int {
	switch {
	case n.ip < other.ip:
		return -1
	case n.ip > other.ip:
		return 1
	case n.bitsPlusOne < other.bitsPlusOne:
		return -1
	case n.bitsPlusOne > other.bitsPlusOne:
		return 1
	default:
		return 0
	}
}

// Prefix 返回等价的 [netip.Prefix]。无效网络返回零值。
func (n IPv4Network) Prefix() netip.Prefix {
	if !n.IsValid() {
		return netip.Prefix{}
	}
	return netip.PrefixFrom(n.Addr(), int(n.PrefixLen()))
}

// IPRange 返回等价的 [netipx.IPRange]（网络地址到广播地址）。
// 无效网络返回零值。
func (n IPv4Network) IPRange() netipx.IPRange {
	if !n.IsValid() {
		return netipx.IPRange{}
	}
	return netipx.RangeOfPrefix(n.Prefix())
}

// String 返回 CIDR 文本形式 "x.x.x.x/y"。无效网络返回空字符串。
func (n IPv4Network) String() string {
	if !n.IsValid() {
		return ""
	}
	return n.Addr().String() + "/" + strconv.Itoa(int(n.PrefixLen()))
}

// AddrCount 返回范围内的地址总数 2^(32-前缀长度)。
// 无效网络返回 0。
func (n IPv4Network) AddrCount() uint64 {
	if !n.IsValid() {
		return 0
	}
	return uint64(1) << (32 - n.PrefixLen())
}

// HostCount 返回 [IPv4Network.Hosts] 会产出的主机地址数量。
// 前缀长度 <= 30 时为地址总数减 2（排除网络地址和广播地址）；
// /31 与 /32 不存在独立的网络/广播地址，不做排除。
// 无效网络返回 0。
func (n IPv4Network) HostCount() uint64 {
	count := n.AddrCount()
	if count > 2 {
		return count - 2
	}
	return count
}
