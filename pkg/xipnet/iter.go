package xipnet

import (
	"fmt"
	"iter"
	"math/big"
	"net/netip"
)

// 设计决策: 迭代 API 统一使用 iter.Seq（range-over-func）而非游标对象：
//   - 惰性产出，2^64 量级的范围也不会物化任何切片
//   - 每个 range 语句得到全新序列，天然可重启
//   - 终止判断在自增之前（current == last 即停），任何路径都不会溢出回绕
//
// 需要预知数量时使用对应的 AddrCount / HostCount / SubnetCount，
// 它们是纯算术，不遍历。

// AddrRange 返回 [from, to] 闭区间内所有地址的递增序列。
// from 与 to 必须同族（同为 4 字节或同为 16 字节表示）；
// 族不匹配、任一地址无效或 from > to 时返回空序列。
func AddrRange(from, to netip.Addr) iter.Seq[netip.Addr] {
	switch {
	case from.Is4() && to.Is4():
		return rangeV4(addrToUint32(from), addrToUint32(to))
	case from.IsValid() && to.IsValid() && !from.Is4() && !to.Is4():
		return rangeV6(addrToU128(from.WithZone("")), addrToU128(to.WithZone("")))
	default:
		return func(yield func(netip.Addr) bool) {}
	}
}

// rangeV4 返回 [first, last] 内所有 IPv4 地址的序列。first > last 为空。
func rangeV4(first, last uint32) iter.Seq[netip.Addr] {
	return func(yield func(netip.Addr) bool) {
		if first > last {
			return
		}
		for cur := first; ; cur++ {
			if !yield(addrFromUint32(cur)) {
				return
			}
			if cur == last {
				return
			}
		}
	}
}

// rangeV6 返回 [first, last] 内所有 IPv6 地址的序列。first > last 为空。
func rangeV6(first, last uint128) iter.Seq[netip.Addr] {
	return func(yield func(netip.Addr) bool) {
		if first.cmp(last) > 0 {
			return
		}
		cur := first
		for {
			if !yield(addrFromU128(cur)) {
				return
			}
			if cur == last {
				return
			}
			next, ok := cur.addChecked(uint128{0, 1})
			if !ok {
				return
			}
			cur = next
		}
	}
}

// Addrs 返回 n 范围内所有地址的递增序列（网络地址到广播地址）。
// 无效网络返回空序列。
func (n IPv4Network) Addrs() iter.Seq[netip.Addr] {
	if !n.IsValid() {
		return func(yield func(netip.Addr) bool) {}
	}
	return rangeV4(n.ip, n.last())
}

// Hosts 返回 n 范围内主机地址的递增序列：
// 前缀长度 <= 30 时排除网络地址和广播地址；/31（点对点链路，RFC 3021）
// 与 /32 不存在独立的网络/广播地址，产出全部地址。
// 无效网络返回空序列。
func (n IPv4Network) Hosts() iter.Seq[netip.Addr] {
	if !n.IsValid() {
		return func(yield func(netip.Addr) bool) {}
	}
	first, last := n.ip, n.last()
	if n.PrefixLen() <= 30 {
		first++
		last--
	}
	return rangeV4(first, last)
}

// Subnets 返回把 n 划分为前缀长度 newBits 的子网的递增序列，
// 共 2^(newBits-前缀长度) 个，连续且无缝覆盖整个范围。
// newBits 等于当前前缀长度时产出 n 自身。
// newBits 小于当前前缀长度或大于 32 返回 [ErrPrefixLength]；
// 无效网络返回 [ErrInvalidAddress]。
func (n IPv4Network) Subnets(newBits uint8) (iter.Seq[IPv4Network], error) {
	if err := n.checkSubnetBits(newBits); err != nil {
		return nil, err
	}
	step := uint32(1) << (32 - newBits)
	lastBase := n.last() & mask32(newBits)
	return func(yield func(IPv4Network) bool) {
		for cur := n.ip; ; cur += step {
			if !yield(ipv4NetworkFromUint32(cur, newBits)) {
				return
			}
			if cur == lastBase {
				return
			}
		}
	}, nil
}

// SubnetCount 返回 [IPv4Network.Subnets] 会产出的子网数量 2^(newBits-前缀长度)。
// 参数校验与 Subnets 相同。
func (n IPv4Network) SubnetCount(newBits uint8) (uint64, error) {
	if err := n.checkSubnetBits(newBits); err != nil {
		return 0, err
	}
	return uint64(1) << (newBits - n.PrefixLen()), nil
}

// checkSubnetBits 校验子网划分的目标前缀长度。
func (n IPv4Network) checkSubnetBits(newBits uint8) error {
	switch {
	case !n.IsValid():
		return ErrInvalidAddress
	case newBits > 32:
		return fmt.Errorf("%w: %d > 32", ErrPrefixLength, newBits)
	case newBits < n.PrefixLen():
		return fmt.Errorf("%w: %d < %d", ErrPrefixLength, newBits, n.PrefixLen())
	default:
		return nil
	}
}

// Addrs 返回 n 范围内所有地址的递增序列（首地址到末地址）。
// 无效网络返回空序列。
func (n IPv6Network) Addrs() iter.Seq[netip.Addr] {
	if !n.IsValid() {
		return func(yield func(netip.Addr) bool) {}
	}
	return rangeV6(n.ip, n.last())
}

// Hosts 返回 n 范围内主机地址的递增序列：
// 前缀长度 <= 126 时排除首地址和末地址；/127 与 /128 产出全部地址。
// 无效网络返回空序列。
func (n IPv6Network) Hosts() iter.Seq[netip.Addr] {
	if !n.IsValid() {
		return func(yield func(netip.Addr) bool) {}
	}
	first, last := n.ip, n.last()
	if n.PrefixLen() <= 126 {
		first, _ = first.addChecked(uint128{0, 1})
		last, _ = last.subChecked(uint128{0, 1})
	}
	return rangeV6(first, last)
}

// Subnets 返回把 n 划分为前缀长度 newBits 的子网的递增序列。
// 语义与 [IPv4Network.Subnets] 相同，位宽上限为 128。
func (n IPv6Network) Subnets(newBits uint8) (iter.Seq[IPv6Network], error) {
	if err := n.checkSubnetBits(newBits); err != nil {
		return nil, err
	}
	lastBase := n.last().and(mask128(newBits))
	return func(yield func(IPv6Network) bool) {
		cur := n.ip
		for {
			if !yield(ipv6NetworkFromU128(cur, newBits)) {
				return
			}
			if cur == lastBase {
				return
			}
			// newBits > 0 时步长 < 2^128；newBits == 0 只有一个子网，
			// 已在上面的相等判断终止，不会走到这里。
			next, ok := cur.addChecked(pow2of128(128 - newBits))
			if !ok {
				return
			}
			cur = next
		}
	}, nil
}

// SubnetCount 返回 [IPv6Network.Subnets] 会产出的子网数量。
// 结果可达 2^128，因此返回 *big.Int。参数校验与 Subnets 相同。
func (n IPv6Network) SubnetCount(newBits uint8) (*big.Int, error) {
	if err := n.checkSubnetBits(newBits); err != nil {
		return nil, err
	}
	return new(big.Int).Lsh(big.NewInt(1), uint(newBits-n.PrefixLen())), nil
}

// checkSubnetBits 校验子网划分的目标前缀长度。
func (n IPv6Network) checkSubnetBits(newBits uint8) error {
	switch {
	case !n.IsValid():
		return ErrInvalidAddress
	case newBits > 128:
		return fmt.Errorf("%w: %d > 128", ErrPrefixLength, newBits)
	case newBits < n.PrefixLen():
		return fmt.Errorf("%w: %d < %d", ErrPrefixLength, newBits, n.PrefixLen())
	default:
		return nil
	}
}

// Addrs 返回 n 范围内所有地址的递增序列。无效网络返回空序列。
func (n Network) Addrs() iter.Seq[netip.Addr] {
	switch n.version {
	case V4:
		return n.v4.Addrs()
	case V6:
		return n.v6.Addrs()
	default:
		return func(yield func(netip.Addr) bool) {}
	}
}

// Hosts 返回 n 范围内主机地址的递增序列。无效网络返回空序列。
func (n Network) Hosts() iter.Seq[netip.Addr] {
	switch n.version {
	case V4:
		return n.v4.Hosts()
	case V6:
		return n.v6.Hosts()
	default:
		return func(yield func(netip.Addr) bool) {}
	}
}

// Subnets 返回把 n 划分为前缀长度 newBits 的子网的递增序列。
// 语义与各族的 Subnets 相同；无效网络返回 [ErrInvalidAddress]。
func (n Network) Subnets(newBits uint8) (iter.Seq[Network], error) {
	switch n.version {
	case V4:
		seq, err := n.v4.Subnets(newBits)
		if err != nil {
			return nil, err
		}
		return func(yield func(Network) bool) {
			for sub := range seq {
				if !yield(NetworkFrom4(sub)) {
					return
				}
			}
		}, nil
	case V6:
		seq, err := n.v6.Subnets(newBits)
		if err != nil {
			return nil, err
		}
		return func(yield func(Network) bool) {
			for sub := range seq {
				if !yield(NetworkFrom6(sub)) {
					return
				}
			}
		}, nil
	default:
		return nil, ErrInvalidAddress
	}
}

// SubnetCount 返回 Subnets 会产出的子网数量。统一返回 *big.Int。
func (n Network) SubnetCount(newBits uint8) (*big.Int, error) {
	switch n.version {
	case V4:
		count, err := n.v4.SubnetCount(newBits)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(count), nil
	case V6:
		return n.v6.SubnetCount(newBits)
	default:
		return nil, ErrInvalidAddress
	}
}
