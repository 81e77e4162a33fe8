package xipnet

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"net/netip"
)

// mask32 返回高 bits 位为 1、其余为 0 的 32 位网络掩码。
// bits == 0 返回 0；bits >= 32 返回全一。
func mask32(bits uint8) uint32 {
	if bits >= 32 {
		return ^uint32(0)
	}
	return ^(^uint32(0) >> bits)
}

// prefixLenFromMask32 从 32 位掩码推导前缀长度。
// 非连续掩码（如 255.0.255.0）返回 [ErrInvalidMask]。
func prefixLenFromMask32(mask uint32) (uint8, error) {
	inv := ^mask
	if inv&(inv+1) != 0 {
		return 0, ErrInvalidMask
	}
	return uint8(bits.OnesCount32(mask)), nil
}

// addrFromUint32 从 IPv4 的 uint32 表示（网络字节序）创建 [netip.Addr]。
func addrFromUint32(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

// addrToUint32 将 4 字节地址转换为 uint32（网络字节序）。
// 调用前必须确保 addr.Is4() || addr.Is4In6()。
func addrToUint32(addr netip.Addr) uint32 {
	b := addr.Unmap().As4()
	return binary.BigEndian.Uint32(b[:])
}

// addrFromU128 从 uint128 创建 16 字节 [netip.Addr]。
func addrFromU128(v uint128) netip.Addr {
	return netip.AddrFrom16(v.bytes16())
}

// addrToU128 将 16 字节地址转换为 uint128。
// 调用前必须确保 addr 是 16 字节表示（Is6，含 IPv4-mapped）。
func addrToU128(addr netip.Addr) uint128 {
	return u128From16(addr.As16())
}

// NetmaskAddr 返回 ver 地址族中前缀长度为 bits 的网络掩码地址。
// bits == 0 → 全零；bits == 位宽 → 全一。
// bits 超出位宽返回 [ErrPrefixLength]，ver 非 V4/V6 返回 [ErrInvalidAddress]。
func NetmaskAddr(ver Version, bits uint8) (netip.Addr, error) {
	switch ver {
	case V4:
		if bits > 32 {
			return netip.Addr{}, fmt.Errorf("%w: %d > 32", ErrPrefixLength, bits)
		}
		return addrFromUint32(mask32(bits)), nil
	case V6:
		if bits > 128 {
			return netip.Addr{}, fmt.Errorf("%w: %d > 128", ErrPrefixLength, bits)
		}
		return addrFromU128(mask128(bits)), nil
	default:
		return netip.Addr{}, fmt.Errorf("%w: version %v", ErrInvalidAddress, ver)
	}
}

// HostmaskAddr 返回网络掩码的按位取反（主机掩码）。
// 错误语义与 [NetmaskAddr] 相同。
func HostmaskAddr(ver Version, bits uint8) (netip.Addr, error) {
	switch ver {
	case V4:
		if bits > 32 {
			return netip.Addr{}, fmt.Errorf("%w: %d > 32", ErrPrefixLength, bits)
		}
		return addrFromUint32(^mask32(bits)), nil
	case V6:
		if bits > 128 {
			return netip.Addr{}, fmt.Errorf("%w: %d > 128", ErrPrefixLength, bits)
		}
		return addrFromU128(mask128(bits).not()), nil
	default:
		return netip.Addr{}, fmt.Errorf("%w: version %v", ErrInvalidAddress, ver)
	}
}

// NetworkAddr 返回 addr 清除主机位后的网络地址（addr AND 网络掩码）。
// addr 无效返回 [ErrInvalidAddress]；bits 超出地址位宽返回 [ErrPrefixLength]。
func NetworkAddr(addr netip.Addr, bits uint8) (netip.Addr, error) {
	switch {
	case !addr.IsValid():
		return netip.Addr{}, ErrInvalidAddress
	case addr.Is4():
		if bits > 32 {
			return netip.Addr{}, fmt.Errorf("%w: %d > 32", ErrPrefixLength, bits)
		}
		return addrFromUint32(addrToUint32(addr) & mask32(bits)), nil
	default:
		if bits > 128 {
			return netip.Addr{}, fmt.Errorf("%w: %d > 128", ErrPrefixLength, bits)
		}
		return addrFromU128(addrToU128(addr).and(mask128(bits))), nil
	}
}

// BroadcastAddr 返回 addr 所在网络的广播地址（addr OR 主机掩码）。
// 对 IPv6 语义为"范围内最后一个地址"（IPv6 没有广播概念，沿用 CIDR 术语）。
// 错误语义与 [NetworkAddr] 相同。
func BroadcastAddr(addr netip.Addr, bits uint8) (netip.Addr, error) {
	switch {
	case !addr.IsValid():
		return netip.Addr{}, ErrInvalidAddress
	case addr.Is4():
		if bits > 32 {
			return netip.Addr{}, fmt.Errorf("%w: %d > 32", ErrPrefixLength, bits)
		}
		return addrFromUint32(addrToUint32(addr) | ^mask32(bits)), nil
	default:
		if bits > 128 {
			return netip.Addr{}, fmt.Errorf("%w: %d > 128", ErrPrefixLength, bits)
		}
		return addrFromU128(addrToU128(addr).or(mask128(bits).not())), nil
	}
}

// HostBitsSet 报告 addr 在前缀长度 bits 之外是否存在非零位，
// 即截断构造器是否会改变该地址。
// 错误语义与 [NetworkAddr] 相同。
func HostBitsSet(addr netip.Addr, bits uint8) (bool, error) {
	network, err := NetworkAddr(addr, bits)
	if err != nil {
		return false, err
	}
	return network != addr.WithZone(""), nil
}

// PrefixLenFromNetmask 从点分/冒分掩码地址推导前缀长度。
// 掩码必须是"前缀全 1 后缀全 0"的连续位模式：
//
//	255.255.255.0   → 24
//	ffff:ffff::     → 32
//	255.0.255.0     → ErrInvalidMask
//
// 用于调用方拿到点分十进制掩码而非前缀长度的场合。
// 无效地址返回 [ErrInvalidAddress]。
func PrefixLenFromNetmask(mask netip.Addr) (uint8, error) {
	switch {
	case !mask.IsValid():
		return 0, ErrInvalidAddress
	case mask.Is4():
		return prefixLenFromMask32(addrToUint32(mask))
	default:
		return prefixLenFromMask128(addrToU128(mask))
	}
}
