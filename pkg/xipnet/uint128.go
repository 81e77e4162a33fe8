package xipnet

import (
	"encoding/binary"
	"math/bits"
)

// uint128 是 128 位无符号整数，表示 IPv6 地址的原始位。
//
// 设计决策: Go 没有原生 u128，使用高低两个 64 位 limb 组合。
// 所有算术都经过显式进位/借位检查（math/bits 的 Add64/Sub64），
// 绝不静默回绕——溢出由调用方转化为迭代终止。
type uint128 struct {
	hi uint64
	lo uint64
}

// u128From16 从 16 字节（网络字节序）构建 uint128。
func u128From16(b [16]byte) uint128 {
	return uint128{
		hi: binary.BigEndian.Uint64(b[:8]),
		lo: binary.BigEndian.Uint64(b[8:]),
	}
}

// bytes16 返回网络字节序的 16 字节表示。
func (u uint128) bytes16() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], u.hi)
	binary.BigEndian.PutUint64(b[8:], u.lo)
	return b
}

// isZero 报告 u 是否为 0。
// hi|lo 比 u == (uint128{}) 少一次分支。
func (u uint128) isZero() bool { return u.hi|u.lo == 0 }

// and 返回按位与 u&m。
func (u uint128) and(m uint128) uint128 {
	return uint128{u.hi & m.hi, u.lo & m.lo}
}

// or 返回按位或 u|m。
func (u uint128) or(m uint128) uint128 {
	return uint128{u.hi | m.hi, u.lo | m.lo}
}

// not 返回按位取反 ^u。
func (u uint128) not() uint128 {
	return uint128{^u.hi, ^u.lo}
}

// cmp 比较 u 与 v：-1 (u < v)、0 (u == v)、1 (u > v)。
func (u uint128) cmp(v uint128) int {
	switch {
	case u.hi < v.hi:
		return -1
	case u.hi > v.hi:
		return 1
	case u.lo < v.lo:
		return -1
	case u.lo > v.lo:
		return 1
	default:
		return 0
	}
}

// addChecked 返回 u+v。溢出 2^128 时 ok 为 false，结果未定义。
func (u uint128) addChecked(v uint128) (sum uint128, ok bool) {
	lo, carry := bits.Add64(u.lo, v.lo, 0)
	hi, carry := bits.Add64(u.hi, v.hi, carry)
	return uint128{hi, lo}, carry == 0
}

// subChecked 返回 u-v。下溢（u < v）时 ok 为 false，结果未定义。
func (u uint128) subChecked(v uint128) (diff uint128, ok bool) {
	lo, borrow := bits.Sub64(u.lo, v.lo, 0)
	hi, borrow := bits.Sub64(u.hi, v.hi, borrow)
	return uint128{hi, lo}, borrow == 0
}

// onesCount 返回置位比特数。
func (u uint128) onesCount() int {
	return bits.OnesCount64(u.hi) + bits.OnesCount64(u.lo)
}

// pow2of128 返回 2^n（n < 128），用作子网步长。
func pow2of128(n uint8) uint128 {
	if n >= 64 {
		return uint128{1 << (n - 64), 0}
	}
	return uint128{0, 1 << n}
}

// mask128 返回高 bits 位为 1、其余为 0 的 128 位网络掩码。
// bits == 0 返回全零；bits >= 128 返回全一。
func mask128(bits uint8) uint128 {
	switch {
	case bits == 0:
		return uint128{}
	case bits >= 128:
		return uint128{^uint64(0), ^uint64(0)}
	case bits <= 64:
		return uint128{^uint64(0) << (64 - bits), 0}
	default:
		return uint128{^uint64(0), ^uint64(0) << (128 - bits)}
	}
}

// prefixLenFromMask128 从 128 位掩码推导前缀长度。
// 掩码必须是"前缀全 1 后缀全 0"的连续位模式，否则返回 [ErrInvalidMask]。
func prefixLenFromMask128(mask uint128) (uint8, error) {
	// 连续性校验：取反后必须是 2^k - 1 形式，即 inv & (inv+1) == 0。
	// 这是 32 位掩码校验技巧（inverted&(inverted+1) != 0）加宽到 128 位。
	inv := mask.not()
	invPlusOne, ok := inv.addChecked(uint128{0, 1})
	if ok && !inv.and(invPlusOne).isZero() {
		return 0, ErrInvalidMask
	}
	return uint8(mask.onesCount()), nil
}
