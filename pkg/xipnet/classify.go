package xipnet

// 设计决策: 网络级分类与地址级分类（netip.Addr.IsXxx）语义不同：
// 判定对象是整个 CIDR 块而非单个地址。一个网络属于某保留范围，当且仅当
// 它完整落在该范围内（网络地址匹配范围前缀，且前缀长度不小于范围前缀长度）。
// 例如 10.0.0.0/8 是私有网络，但 10.0.0.0/7 不是（其后半段超出 10/8）。

// inRange 报告 n 是否完整落在 base/bits 范围内。
func (n IPv4Network) inRange(base uint32, bits uint8) bool {
	return n.IsValid() && n.PrefixLen() >= bits && n.ip&mask32(bits) == base
}

// IsUnspecified 报告 n 是否为未指定网络 0.0.0.0/32。
func (n IPv4Network) IsUnspecified() bool {
	return n.IsValid() && n.ip == 0 && n.PrefixLen() == 32
}

// IsLoopback 报告 n 是否完整落在环回范围 127.0.0.0/8 (RFC 1122) 内。
func (n IPv4Network) IsLoopback() bool {
	return n.inRange(0x7f000000, 8)
}

// IsBroadcast 报告 n 是否为受限广播网络 255.255.255.255/32。
func (n IPv4Network) IsBroadcast() bool {
	return n.IsValid() && n.ip == ^uint32(0) && n.PrefixLen() == 32
}

// IsPrivate 报告 n 是否完整落在 RFC 1918 私有范围内：
// 10.0.0.0/8、172.16.0.0/12 或 192.168.0.0/16。
func (n IPv4Network) IsPrivate() bool {
	return n.inRange(0x0a000000, 8) ||
		n.inRange(0xac100000, 12) ||
		n.inRange(0xc0a80000, 16)
}

// IsLinkLocal 报告 n 是否完整落在链路本地范围 169.254.0.0/16 (RFC 3927) 内。
func (n IPv4Network) IsLinkLocal() bool {
	return n.inRange(0xa9fe0000, 16)
}

// IsMulticast 报告 n 是否完整落在多播范围 224.0.0.0/4 (RFC 5771) 内。
func (n IPv4Network) IsMulticast() bool {
	return n.inRange(0xe0000000, 4)
}

// IsDocumentation 报告 n 是否完整落在文档保留范围 (RFC 5737) 内：
// 192.0.2.0/24 (TEST-NET-1)、198.51.100.0/24 (TEST-NET-2)
// 或 203.0.113.0/24 (TEST-NET-3)。
func (n IPv4Network) IsDocumentation() bool {
	return n.inRange(0xc0000200, 24) ||
		n.inRange(0xc6336400, 24) ||
		n.inRange(0xcb007100, 24)
}

// IsIetfProtocolAssignments 报告 n 是否完整落在 IETF 协议分配范围
// 192.0.0.0/24 (RFC 6890) 内。
func (n IPv4Network) IsIetfProtocolAssignments() bool {
	return n.inRange(0xc0000000, 24)
}

// IsBenchmarking 报告 n 是否完整落在网络互连设备基准测试范围
// 198.18.0.0/15 (RFC 2544) 内。
func (n IPv4Network) IsBenchmarking() bool {
	return n.inRange(0xc6120000, 15)
}

// IsSharedAddressSpace 报告 n 是否完整落在运营商级 NAT 共享地址范围
// 100.64.0.0/10 (RFC 6598) 内。
func (n IPv4Network) IsSharedAddressSpace() bool {
	return n.inRange(0x64400000, 10)
}

// IsReserved 报告 n 是否完整落在保留范围 240.0.0.0/4 (RFC 1112) 内。
// 受限广播网络 255.255.255.255/32 不算保留网络。
func (n IPv4Network) IsReserved() bool {
	return n.inRange(0xf0000000, 4) && !n.IsBroadcast()
}

// IsGlobal 报告 n 是否可全局路由：不属于上述任何特殊用途范围。
func (n IPv4Network) IsGlobal() bool {
	return n.IsValid() &&
		!n.IsUnspecified() &&
		!n.IsLoopback() &&
		!n.IsBroadcast() &&
		!n.IsPrivate() &&
		!n.IsLinkLocal() &&
		!n.IsDocumentation() &&
		!n.IsIetfProtocolAssignments() &&
		!n.IsBenchmarking() &&
		!n.IsSharedAddressSpace() &&
		!n.IsReserved()
}

// MulticastScope 表示 IPv6 多播地址的作用域 (RFC 7346)。
type MulticastScope uint8

const (
	// ScopeNone 表示网络不是多播网络或作用域值未分配。
	ScopeNone MulticastScope = 0
	// ScopeInterfaceLocal 表示接口本地作用域 (ff01::/16)。
	ScopeInterfaceLocal MulticastScope = 1
	// ScopeLinkLocal 表示链路本地作用域 (ff02::/16)。
	ScopeLinkLocal MulticastScope = 2
	// ScopeRealmLocal 表示域本地作用域 (ff03::/16)。
	ScopeRealmLocal MulticastScope = 3
	// ScopeAdminLocal 表示管理本地作用域 (ff04::/16)。
	ScopeAdminLocal MulticastScope = 4
	// ScopeSiteLocal 表示站点本地作用域 (ff05::/16)。
	ScopeSiteLocal MulticastScope = 5
	// ScopeOrganizationLocal 表示组织本地作用域 (ff08::/16)。
	ScopeOrganizationLocal MulticastScope = 8
	// ScopeGlobal 表示全局作用域 (ff0e::/16)。
	ScopeGlobal MulticastScope = 14
)

// String 返回作用域的字符串表示。
func (s MulticastScope) String() string {
	switch s {
	case ScopeInterfaceLocal:
		return "interface-local"
	case ScopeLinkLocal:
		return "link-local"
	case ScopeRealmLocal:
		return "realm-local"
	case ScopeAdminLocal:
		return "admin-local"
	case ScopeSiteLocal:
		return "site-local"
	case ScopeOrganizationLocal:
		return "organization-local"
	case ScopeGlobal:
		return "global"
	default:
		return "none"
	}
}

// segment0 返回网络地址的第一个 16 位段。
func (n IPv6Network) segment0() uint16 {
	return uint16(n.ip.hi >> 48)
}

// IsUnspecified 报告 n 是否为未指定网络 ::/128。
func (n IPv6Network) IsUnspecified() bool {
	return n.IsValid() && n.ip.isZero() && n.PrefixLen() == 128
}

// IsLoopback 报告 n 是否为环回网络 ::1/128 (RFC 4291)。
func (n IPv6Network) IsLoopback() bool {
	return n.IsValid() && n.ip == uint128{0, 1} && n.PrefixLen() == 128
}

// IsUniqueLocal 报告 n 是否完整落在唯一本地范围 fc00::/7 (RFC 4193) 内。
func (n IPv6Network) IsUniqueLocal() bool {
	return n.IsValid() && n.segment0()&0xfe00 == 0xfc00 && n.PrefixLen() >= 7
}

// IsUnicastLinkLocal 报告 n 是否完整落在单播链路本地范围 fe80::/10 (RFC 4291) 内。
func (n IPv6Network) IsUnicastLinkLocal() bool {
	return n.IsValid() && n.segment0()&0xffc0 == 0xfe80 && n.PrefixLen() >= 10
}

// IsUnicastSiteLocal 报告 n 是否完整落在已废弃的单播站点本地范围
// fec0::/10 (RFC 3879) 内。
func (n IPv6Network) IsUnicastSiteLocal() bool {
	return n.IsValid() && n.segment0()&0xffc0 == 0xfec0 && n.PrefixLen() >= 10
}

// IsDocumentation 报告 n 是否完整落在文档保留范围 2001:db8::/32 (RFC 3849) 内。
func (n IPv6Network) IsDocumentation() bool {
	return n.IsValid() && n.ip.hi>>32 == 0x20010db8 && n.PrefixLen() >= 32
}

// IsMulticast 报告 n 是否完整落在多播范围 ff00::/8 (RFC 4291) 内。
func (n IPv6Network) IsMulticast() bool {
	return n.IsValid() && n.segment0()&0xff00 == 0xff00 && n.PrefixLen() >= 8
}

// Scope 返回多播网络的作用域。非多播网络或作用域值未分配返回 ScopeNone。
func (n IPv6Network) Scope() MulticastScope {
	if !n.IsMulticast() {
		return ScopeNone
	}
	switch s := MulticastScope(n.segment0() & 0x000f); s {
	case ScopeInterfaceLocal, ScopeLinkLocal, ScopeRealmLocal,
		ScopeAdminLocal, ScopeSiteLocal, ScopeOrganizationLocal, ScopeGlobal:
		return s
	default:
		return ScopeNone
	}
}

// IsUnicastGlobal 报告 n 是否为可全局路由的单播网络：
// 不属于多播、环回、链路本地、站点本地、唯一本地、未指定或文档范围。
func (n IPv6Network) IsUnicastGlobal() bool {
	return n.IsValid() &&
		!n.IsMulticast() &&
		!n.IsLoopback() &&
		!n.IsUnicastLinkLocal() &&
		!n.IsUnicastSiteLocal() &&
		!n.IsUniqueLocal() &&
		!n.IsUnspecified() &&
		!n.IsDocumentation()
}

// IsGlobal 报告 n 是否可全局路由：全局作用域多播网络，或可全局路由的单播网络。
func (n IPv6Network) IsGlobal() bool {
	if n.IsMulticast() {
		return n.Scope() == ScopeGlobal
	}
	return n.IsUnicastGlobal()
}
