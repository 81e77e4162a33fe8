package xipnet

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/netip"
)

// 本文件实现标准编码接口：
//   - encoding.TextMarshaler / TextUnmarshaler（规范化 CIDR 文本）
//   - json.Marshaler / Unmarshaler（带引号的文本形式，null 与 "" 映射零值）
//   - encoding.BinaryMarshaler / BinaryUnmarshaler（地址字节 + 1 字节前缀长度，
//     IPv4 共 5 字节，IPv6 共 17 字节；Network 按长度区分地址族）
//   - driver.Valuer / sql.Scanner（写出文本，读入接受 nil、文本或二进制）
//
// 约定：无效网络序列化为空（空文本、JSON null、空字节、SQL NULL）；
// 反序列化空输入得到零值。二进制反序列化是严格构造：主机位非零的数据
// 视为损坏（ErrHostBitsSet）。

// MarshalText 实现 [encoding.TextMarshaler]。无效网络返回空字节。
func (n IPv4Network) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]。
// 空输入重置为零值；nil 接收者返回 [ErrNilReceiver]。
func (n *IPv4Network) UnmarshalText(text []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	if len(text) == 0 {
		*n = IPv4Network{}
		return nil
	}
	parsed, err := ParseIPv4Network(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// MarshalJSON 实现 [json.Marshaler]：带引号的 CIDR 文本，无效网络为 ""。
func (n IPv4Network) MarshalJSON() ([]byte, error) {
	return jsonQuote(n.String()), nil
}

// UnmarshalJSON 实现 [json.Unmarshaler]。null 和 "" 重置为零值。
func (n *IPv4Network) UnmarshalJSON(data []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	s, err := jsonUnquote(data)
	if err != nil {
		return err
	}
	return n.UnmarshalText([]byte(s))
}

// MarshalBinary 实现 [encoding.BinaryMarshaler]：
// 4 字节网络地址（网络字节序）+ 1 字节前缀长度。无效网络返回空字节。
func (n IPv4Network) MarshalBinary() ([]byte, error) {
	if !n.IsValid() {
		return []byte{}, nil
	}
	b := n.Addr().As4()
	return append(b[:], n.PrefixLen()), nil
}

// UnmarshalBinary 实现 [encoding.BinaryUnmarshaler]（严格构造）。
// 空输入重置为零值；长度不是 5 返回 [ErrInvalidLength]；
// 前缀长度越界返回 [ErrPrefixLength]；主机位非零返回 [ErrHostBitsSet]。
func (n *IPv4Network) UnmarshalBinary(data []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	if len(data) == 0 {
		*n = IPv4Network{}
		return nil
	}
	if len(data) != 5 {
		return fmt.Errorf("%w: got %d bytes, want 5", ErrInvalidLength, len(data))
	}
	parsed, err := NewIPv4Network(netip.AddrFrom4([4]byte(data[:4])), data[4])
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Value 实现 [driver.Valuer]：CIDR 文本，无效网络为 SQL NULL。
func (n IPv4Network) Value() (driver.Value, error) {
	if !n.IsValid() {
		return nil, nil
	}
	return n.String(), nil
}

// Scan 实现 [sql.Scanner]。接受 nil（零值）、string（CIDR 文本）和
// []byte（5 字节二进制形式或 CIDR 文本）。
// 长度恰好为 5 的 []byte 先按二进制尝试，失败后回退按文本解析，
// 这样 "::/12" 这类恰好 5 字节的合法 CIDR 文本不会被二进制路径拒绝。
func (n *IPv4Network) Scan(src any) error {
	if n == nil {
		return ErrNilReceiver
	}
	switch v := src.(type) {
	case nil:
		*n = IPv4Network{}
		return nil
	case string:
		return n.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 5 {
			if err := n.UnmarshalBinary(v); err == nil {
				return nil
			}
		}
		return n.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidFormat, src)
	}
}

// MarshalText 实现 [encoding.TextMarshaler]。无效网络返回空字节。
func (n IPv6Network) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]。
// 空输入重置为零值；nil 接收者返回 [ErrNilReceiver]。
func (n *IPv6Network) UnmarshalText(text []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	if len(text) == 0 {
		*n = IPv6Network{}
		return nil
	}
	parsed, err := ParseIPv6Network(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// MarshalJSON 实现 [json.Marshaler]：带引号的 CIDR 文本，无效网络为 ""。
func (n IPv6Network) MarshalJSON() ([]byte, error) {
	return jsonQuote(n.String()), nil
}

// UnmarshalJSON 实现 [json.Unmarshaler]。null 和 "" 重置为零值。
func (n *IPv6Network) UnmarshalJSON(data []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	s, err := jsonUnquote(data)
	if err != nil {
		return err
	}
	return n.UnmarshalText([]byte(s))
}

// MarshalBinary 实现 [encoding.BinaryMarshaler]：
// 16 字节网络地址（网络字节序）+ 1 字节前缀长度。无效网络返回空字节。
func (n IPv6Network) MarshalBinary() ([]byte, error) {
	if !n.IsValid() {
		return []byte{}, nil
	}
	b := n.Addr().As16()
	return append(b[:], n.PrefixLen()), nil
}

// UnmarshalBinary 实现 [encoding.BinaryUnmarshaler]（严格构造）。
// 空输入重置为零值；长度不是 17 返回 [ErrInvalidLength]。
func (n *IPv6Network) UnmarshalBinary(data []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	if len(data) == 0 {
		*n = IPv6Network{}
		return nil
	}
	if len(data) != 17 {
		return fmt.Errorf("%w: got %d bytes, want 17", ErrInvalidLength, len(data))
	}
	parsed, err := NewIPv6Network(netip.AddrFrom16([16]byte(data[:16])), data[16])
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Value 实现 [driver.Valuer]：CIDR 文本，无效网络为 SQL NULL。
func (n IPv6Network) Value() (driver.Value, error) {
	if !n.IsValid() {
		return nil, nil
	}
	return n.String(), nil
}

// Scan 实现 [sql.Scanner]。接受 nil（零值）、string（CIDR 文本）和
// []byte（17 字节二进制形式或 CIDR 文本）。
// 长度恰好为 17 的 []byte 先按二进制尝试，失败后回退按文本解析。
func (n *IPv6Network) Scan(src any) error {
	if n == nil {
		return ErrNilReceiver
	}
	switch v := src.(type) {
	case nil:
		*n = IPv6Network{}
		return nil
	case string:
		return n.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 17 {
			if err := n.UnmarshalBinary(v); err == nil {
				return nil
			}
		}
		return n.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidFormat, src)
	}
}

// MarshalText 实现 [encoding.TextMarshaler]。无效网络返回空字节。
func (n Network) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]，地址族由文本决定。
// 空输入重置为零值；nil 接收者返回 [ErrNilReceiver]。
func (n *Network) UnmarshalText(text []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	if len(text) == 0 {
		*n = Network{}
		return nil
	}
	parsed, err := ParseNetwork(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// MarshalJSON 实现 [json.Marshaler]：带引号的 CIDR 文本，无效网络为 ""。
func (n Network) MarshalJSON() ([]byte, error) {
	return jsonQuote(n.String()), nil
}

// UnmarshalJSON 实现 [json.Unmarshaler]。null 和 "" 重置为零值。
func (n *Network) UnmarshalJSON(data []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	s, err := jsonUnquote(data)
	if err != nil {
		return err
	}
	return n.UnmarshalText([]byte(s))
}

// MarshalBinary 实现 [encoding.BinaryMarshaler]：IPv4 为 5 字节，
// IPv6 为 17 字节（各族的二进制形式）。无效网络返回空字节。
func (n Network) MarshalBinary() ([]byte, error) {
	switch n.version {
	case V4:
		return n.v4.MarshalBinary()
	case V6:
		return n.v6.MarshalBinary()
	default:
		return []byte{}, nil
	}
}

// UnmarshalBinary 实现 [encoding.BinaryUnmarshaler]，按长度区分地址族：
// 5 字节为 IPv4，17 字节为 IPv6，空输入重置为零值，
// 其余长度返回 [ErrInvalidLength]。
func (n *Network) UnmarshalBinary(data []byte) error {
	if n == nil {
		return ErrNilReceiver
	}
	switch len(data) {
	case 0:
		*n = Network{}
		return nil
	case 5:
		var v4 IPv4Network
		if err := v4.UnmarshalBinary(data); err != nil {
			return err
		}
		*n = NetworkFrom4(v4)
		return nil
	case 17:
		var v6 IPv6Network
		if err := v6.UnmarshalBinary(data); err != nil {
			return err
		}
		*n = NetworkFrom6(v6)
		return nil
	default:
		return fmt.Errorf("%w: got %d bytes, want 5 or 17", ErrInvalidLength, len(data))
	}
}

// Value 实现 [driver.Valuer]：CIDR 文本，无效网络为 SQL NULL。
func (n Network) Value() (driver.Value, error) {
	if !n.IsValid() {
		return nil, nil
	}
	return n.String(), nil
}

// Scan 实现 [sql.Scanner]。接受 nil（零值）、string（CIDR 文本）和
// []byte（5/17 字节二进制形式或 CIDR 文本）。
// 长度恰好为 5 或 17 的 []byte 先按二进制尝试，失败后回退按文本解析，
// 这样 "192.168.100.40/32" 这类恰好 17 字节的合法 CIDR 文本仍可扫描。
func (n *Network) Scan(src any) error {
	if n == nil {
		return ErrNilReceiver
	}
	switch v := src.(type) {
	case nil:
		*n = Network{}
		return nil
	case string:
		return n.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 5 || len(v) == 17 {
			if err := n.UnmarshalBinary(v); err == nil {
				return nil
			}
		}
		return n.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidFormat, src)
	}
}

// jsonQuote 给文本加 JSON 引号。CIDR 文本只含 [0-9a-f:./]，无需转义。
func jsonQuote(s string) []byte {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	b = append(b, s...)
	return append(b, '"')
}

// jsonUnquote 去掉 JSON 字符串的引号。null 映射为空字符串。
// 规范形式不含转义，走快路径；出现反斜杠时（如 "10.0.0.0\/8"）
// 交给 encoding/json 完成转义解码。
func jsonUnquote(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", fmt.Errorf("%w: not a JSON string: %q", ErrInvalidFormat, data)
	}
	if bytes.IndexByte(data, '\\') < 0 {
		return string(data[1 : len(data)-1]), nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("%w: not a JSON string: %q", ErrInvalidFormat, data)
	}
	return s, nil
}
