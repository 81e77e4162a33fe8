package xipnet

import (
	"math/big"
	"net/netip"
)

// Network 是 IPv4/IPv6 网络的统一封装，按 [Version] 区分变体。
//
// 设计决策: Go 没有 sum type，用"标签 + 两个值字段"模拟封闭的二元联合。
// 同一时刻只有标签对应的字段有效，另一个保持零值，因此 Network 仍然
// 可直接比较（==）和用作 map key。零值（V0）表示无效网络。
type Network struct {
	version Version
	v4      IPv4Network
	v6      IPv6Network
}

// NetworkFrom4 用 IPv4 网络构建 Network。无效输入返回零值。
func NetworkFrom4(n IPv4Network) Network {
	if !n.IsValid() {
		return Network{}
	}
	return Network{version: V4, v4: n}
}

// NetworkFrom6 用 IPv6 网络构建 Network。无效输入返回零值。
func NetworkFrom6(n IPv6Network) Network {
	if !n.IsValid() {
		return Network{}
	}
	return Network{version: V6, v6: n}
}

// NewNetwork 严格构造网络，地址族由 addr 决定：
// 4 字节表示走 [NewIPv4Network]，16 字节表示（含 IPv4-mapped）走 [NewIPv6Network]。
// 错误语义与对应的族构造器一致。
func NewNetwork(addr netip.Addr, bits uint8) (Network, error) {
	if addr.Is4() {
		n, err := NewIPv4Network(addr, bits)
		if err != nil {
			return Network{}, err
		}
		return NetworkFrom4(n), nil
	}
	n, err := NewIPv6Network(addr, bits)
	if err != nil {
		return Network{}, err
	}
	return NetworkFrom6(n), nil
}

// NewNetworkTruncated 截断构造网络：静默清除主机位。
// 地址族选择规则与 [NewNetwork] 相同。
func NewNetworkTruncated(addr netip.Addr, bits uint8) (Network, error) {
	if addr.Is4() {
		n, err := NewIPv4NetworkTruncated(addr, bits)
		if err != nil {
			return Network{}, err
		}
		return NetworkFrom4(n), nil
	}
	n, err := NewIPv6NetworkTruncated(addr, bits)
	if err != nil {
		return Network{}, err
	}
	return NetworkFrom6(n), nil
}

// NetworkFromPrefix 从 [netip.Prefix] 严格构造网络。
// prefix 无效返回 [ErrInvalidAddress]；主机位非零返回 [ErrHostBitsSet]。
func NetworkFromPrefix(prefix netip.Prefix) (Network, error) {
	if !prefix.IsValid() {
		return Network{}, ErrInvalidAddress
	}
	return NewNetwork(prefix.Addr(), uint8(prefix.Bits()))
}

// IsValid 报告 n 是否为有效网络。零值返回 false。
func (n Network) IsValid() bool {
	return n.version != V0
}

// Version 返回网络的 IP 版本。无效网络返回 V0。
func (n Network) Version() Version {
	return n.version
}

// Is4 报告 n 是否为 IPv4 网络。
func (n Network) Is4() bool {
	return n.version == V4
}

// Is6 报告 n 是否为 IPv6 网络。
func (n Network) Is6() bool {
	return n.version == V6
}

// IPv4 返回 IPv4 变体。非 IPv4 网络返回 (零值, false)。
func (n Network) IPv4() (IPv4Network, bool) {
	if n.version != V4 {
		return IPv4Network{}, false
	}
	return n.v4, true
}

// IPv6 返回 IPv6 变体。非 IPv6 网络返回 (零值, false)。
func (n Network) IPv6() (IPv6Network, bool) {
	if n.version != V6 {
		return IPv6Network{}, false
	}
	return n.v6, true
}

// Addr 返回网络地址。无效网络返回零值 [netip.Addr]。
func (n Network) Addr() netip.Addr {
	switch n.version {
	case V4:
		return n.v4.Addr()
	case V6:
		return n.v6.Addr()
	default:
		return netip.Addr{}
	}
}

// PrefixLen 返回前缀长度。无效网络返回 0。
func (n Network) PrefixLen() uint8 {
	switch n.version {
	case V4:
		return n.v4.PrefixLen()
	case V6:
		return n.v6.PrefixLen()
	default:
		return 0
	}
}

// Netmask 返回网络掩码地址。无效网络返回零值。
func (n Network) Netmask() netip.Addr {
	switch n.version {
	case V4:
		return n.v4.Netmask()
	case V6:
		return n.v6.Netmask()
	default:
		return netip.Addr{}
	}
}

// Hostmask 返回主机掩码地址。无效网络返回零值。
func (n Network) Hostmask() netip.Addr {
	switch n.version {
	case V4:
		return n.v4.Hostmask()
	case V6:
		return n.v6.Hostmask()
	default:
		return netip.Addr{}
	}
}

// Broadcast 返回范围内最后一个地址。无效网络返回零值。
func (n Network) Broadcast() netip.Addr {
	switch n.version {
	case V4:
		return n.v4.Broadcast()
	case V6:
		return n.v6.Broadcast()
	default:
		return netip.Addr{}
	}
}

// Contains 报告 addr 是否在 n 的范围内。
// 地址族不匹配（如 IPv6 网络与 4 字节地址）返回 false。
func (n Network) Contains(addr netip.Addr) bool {
	switch n.version {
	case V4:
		return n.v4.Contains(addr)
	case V6:
		return n.v6.Contains(addr)
	default:
		return false
	}
}

// ContainsNetwork 报告 other 是否完整落在 n 的范围内。
// 地址族不匹配返回 false。
func (n Network) ContainsNetwork(other Network) bool {
	switch {
	case n.version == V4 && other.version == V4:
		return n.v4.ContainsNetwork(other.v4)
	case n.version == V6 && other.version == V6:
		return n.v6.ContainsNetwork(other.v6)
	default:
		return false
	}
}

// Overlaps 报告 n 与 other 的地址范围是否存在交集。
// 地址族不匹配返回 false。
func (n Network) Overlaps(other Network) bool {
	return n.ContainsNetwork(other) || other.ContainsNetwork(n)
}

// Supernet 返回前缀长度减一的父网络。
// 前缀长度已为 0 或网络无效时返回 (零值, false)。
func (n Network) Supernet() (Network, bool) {
	switch n.version {
	case V4:
		if super, ok := n.v4.Supernet(); ok {
			return NetworkFrom4(super), true
		}
	case V6:
		if super, ok := n.v6.Supernet(); ok {
			return NetworkFrom6(super), true
		}
	}
	return Network{}, false
}

// Compare 比较两个网络的顺序：版本优先（IPv4 < IPv6），
// 同版本内网络地址优先、前缀长度次之。无效网络排在最前。
func (n Network) Compare(other Network) int {
	switch {
	case n.version < other.version:
		return -1
	case n.version > other.version:
		return 1
	case n.version == V4:
		return n.v4.Compare(other.v4)
	case n.version == V6:
		return n.v6.Compare(other.v6)
	default:
		return 0
	}
}

// Prefix 返回等价的 [netip.Prefix]。无效网络返回零值。
func (n Network) Prefix() netip.Prefix {
	switch n.version {
	case V4:
		return n.v4.Prefix()
	case V6:
		return n.v6.Prefix()
	default:
		return netip.Prefix{}
	}
}

// String 返回 CIDR 文本形式。无效网络返回空字符串。
func (n Network) String() string {
	switch n.version {
	case V4:
		return n.v4.String()
	case V6:
		return n.v6.String()
	default:
		return ""
	}
}

// AddrCount 返回范围内的地址总数。统一返回 *big.Int 以覆盖 IPv6 的量级。
// 无效网络返回 0。
func (n Network) AddrCount() *big.Int {
	switch n.version {
	case V4:
		return new(big.Int).SetUint64(n.v4.AddrCount())
	case V6:
		return n.v6.AddrCount()
	default:
		return new(big.Int)
	}
}

// HostCount 返回 Hosts 会产出的主机地址数量。无效网络返回 0。
func (n Network) HostCount() *big.Int {
	switch n.version {
	case V4:
		return new(big.Int).SetUint64(n.v4.HostCount())
	case V6:
		return n.v6.HostCount()
	default:
		return new(big.Int)
	}
}

// IsLoopback 报告 n 是否完整落在环回范围内。
func (n Network) IsLoopback() bool {
	switch n.version {
	case V4:
		return n.v4.IsLoopback()
	case V6:
		return n.v6.IsLoopback()
	default:
		return false
	}
}

// IsMulticast 报告 n 是否完整落在多播范围内。
func (n Network) IsMulticast() bool {
	switch n.version {
	case V4:
		return n.v4.IsMulticast()
	case V6:
		return n.v6.IsMulticast()
	default:
		return false
	}
}

// IsDocumentation 报告 n 是否完整落在文档保留范围内。
func (n Network) IsDocumentation() bool {
	switch n.version {
	case V4:
		return n.v4.IsDocumentation()
	case V6:
		return n.v6.IsDocumentation()
	default:
		return false
	}
}

// IsGlobal 报告 n 是否可全局路由。
func (n Network) IsGlobal() bool {
	switch n.version {
	case V4:
		return n.v4.IsGlobal()
	case V6:
		return n.v6.IsGlobal()
	default:
		return false
	}
}
