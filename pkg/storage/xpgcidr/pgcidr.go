package xpgcidr

import (
	"database/sql/driver"
	"fmt"

	"github.com/JakubOnderka/ip-network/pkg/xipnet"
)

// PostgreSQL inet/cidr 二进制线格式：
//
//	[family, prefix_len, is_cidr, addr_len, addr bytes...]
//
// family 使用 PostgreSQL 内部的地址族编号（非系统 AF_INET），
// is_cidr 区分 cidr(1) 与 inet(0) 列类型，addr_len 是地址字节数。
const (
	// familyIPv4 是 PostgreSQL 的 PGSQL_AF_INET。
	familyIPv4 = 2
	// familyIPv6 是 PostgreSQL 的 PGSQL_AF_INET6 (= AF_INET + 1)。
	familyIPv6 = 3
	// flagCIDR 标记 cidr 类型（区别于 inet）。
	flagCIDR = 1

	headerLen = 4
	v4WireLen = headerLen + 4
	v6WireLen = headerLen + 16
)

// EncodeIPv4 把 IPv4 网络编码为 PostgreSQL CIDR 线格式（8 字节）。
// 无效网络返回 [ErrInvalidNetwork]。
func EncodeIPv4(n xipnet.IPv4Network) ([]byte, error) {
	if !n.IsValid() {
		return nil, ErrInvalidNetwork
	}
	addr := n.Addr().As4()
	out := make([]byte, 0, v4WireLen)
	out = append(out, familyIPv4, n.PrefixLen(), flagCIDR, 4)
	return append(out, addr[:]...), nil
}

// EncodeIPv6 把 IPv6 网络编码为 PostgreSQL CIDR 线格式（20 字节）。
// 无效网络返回 [ErrInvalidNetwork]。
func EncodeIPv6(n xipnet.IPv6Network) ([]byte, error) {
	if !n.IsValid() {
		return nil, ErrInvalidNetwork
	}
	addr := n.Addr().As16()
	out := make([]byte, 0, v6WireLen)
	out = append(out, familyIPv6, n.PrefixLen(), flagCIDR, 16)
	return append(out, addr[:]...), nil
}

// Encode 把网络编码为 PostgreSQL CIDR 线格式，按变体分派。
// 无效网络返回 [ErrInvalidNetwork]。
func Encode(n xipnet.Network) ([]byte, error) {
	if v4, ok := n.IPv4(); ok {
		return EncodeIPv4(v4)
	}
	if v6, ok := n.IPv6(); ok {
		return EncodeIPv6(v6)
	}
	return nil, ErrInvalidNetwork
}

// DecodeIPv4 从 PostgreSQL CIDR 线格式解码 IPv4 网络（严格构造）。
// 线格式损坏返回 [ErrWireFormat]；前缀长度越界或主机位非零时
// 返回核心包的对应错误，包装在 ErrWireFormat 之下。
func DecodeIPv4(data []byte) (xipnet.IPv4Network, error) {
	addr, bits, err := checkWire(data, familyIPv4, 4)
	if err != nil {
		return xipnet.IPv4Network{}, err
	}
	var n xipnet.IPv4Network
	if err := n.UnmarshalBinary(binaryForm(addr, bits)); err != nil {
		return xipnet.IPv4Network{}, fmt.Errorf("%w: %w", ErrWireFormat, err)
	}
	return n, nil
}

// DecodeIPv6 从 PostgreSQL CIDR 线格式解码 IPv6 网络（严格构造）。
// 错误语义与 [DecodeIPv4] 相同。
func DecodeIPv6(data []byte) (xipnet.IPv6Network, error) {
	addr, bits, err := checkWire(data, familyIPv6, 16)
	if err != nil {
		return xipnet.IPv6Network{}, err
	}
	var n xipnet.IPv6Network
	if err := n.UnmarshalBinary(binaryForm(addr, bits)); err != nil {
		return xipnet.IPv6Network{}, fmt.Errorf("%w: %w", ErrWireFormat, err)
	}
	return n, nil
}

// Decode 从 PostgreSQL CIDR 线格式解码网络，地址族由 family 字节决定。
func Decode(data []byte) (xipnet.Network, error) {
	if len(data) < headerLen {
		return xipnet.Network{}, fmt.Errorf("%w: got %d bytes, want at least %d", ErrWireFormat, len(data), headerLen)
	}
	switch data[0] {
	case familyIPv4:
		n, err := DecodeIPv4(data)
		if err != nil {
			return xipnet.Network{}, err
		}
		return xipnet.NetworkFrom4(n), nil
	case familyIPv6:
		n, err := DecodeIPv6(data)
		if err != nil {
			return xipnet.Network{}, err
		}
		return xipnet.NetworkFrom6(n), nil
	default:
		return xipnet.Network{}, fmt.Errorf("%w: unknown address family %d", ErrWireFormat, data[0])
	}
}

// binaryForm 拼出核心包二进制形式（地址字节 + 前缀长度），
// 复制而非 append，避免写入调用方的底层数组。
func binaryForm(addr []byte, bits byte) []byte {
	buf := make([]byte, len(addr)+1)
	copy(buf, addr)
	buf[len(addr)] = bits
	return buf
}

// checkWire 校验线格式头部，返回地址字节和前缀长度字节。
func checkWire(data []byte, family, addrLen byte) ([]byte, byte, error) {
	wantLen := headerLen + int(addrLen)
	switch {
	case len(data) != wantLen:
		return nil, 0, fmt.Errorf("%w: got %d bytes, want %d", ErrWireFormat, len(data), wantLen)
	case data[0] != family:
		return nil, 0, fmt.Errorf("%w: address family %d, want %d", ErrWireFormat, data[0], family)
	case data[2] != flagCIDR:
		return nil, 0, fmt.Errorf("%w: is_cidr flag %d, want %d", ErrWireFormat, data[2], flagCIDR)
	case data[3] != addrLen:
		return nil, 0, fmt.Errorf("%w: address length %d, want %d", ErrWireFormat, data[3], addrLen)
	default:
		return data[headerLen:], data[1], nil
	}
}

// CIDR 包装 [xipnet.Network]，为 database/sql 提供 cidr 列的读写。
//
// 写出使用 CIDR 文本（PostgreSQL 文本协议直接接受），读入兼容文本与
// 二进制线格式两种来源。零值网络写出 SQL NULL，NULL 读入得到零值。
//
//	var c xpgcidr.CIDR
//	err := db.QueryRow("SELECT network FROM subnets WHERE id = $1", id).Scan(&c)
type CIDR struct {
	Network xipnet.Network
}

// Value 实现 [driver.Valuer]。
func (c CIDR) Value() (driver.Value, error) {
	if !c.Network.IsValid() {
		return nil, nil
	}
	return c.Network.String(), nil
}

// Scan 实现 [sql.Scanner]。接受 nil、string（CIDR 文本）和
// []byte（PostgreSQL 线格式或 CIDR 文本）。
func (c *CIDR) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		c.Network = xipnet.Network{}
		return nil
	case string:
		return c.scanText(v)
	case []byte:
		if len(v) == v4WireLen || len(v) == v6WireLen {
			n, err := Decode(v)
			if err == nil {
				c.Network = n
				return nil
			}
		}
		return c.scanText(string(v))
	default:
		return fmt.Errorf("%w: %T", ErrScanType, src)
	}
}

// scanText 从 CIDR 文本恢复网络值。
func (c *CIDR) scanText(s string) error {
	n, err := xipnet.ParseNetwork(s)
	if err != nil {
		return err
	}
	c.Network = n
	return nil
}
