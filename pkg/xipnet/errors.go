package xipnet

import "errors"

// 预定义错误变量，支持 errors.Is 判断。
var (
	// ErrEmpty 表示输入为空字符串。
	ErrEmpty = errors.New("xipnet: empty input")

	// ErrInvalidFormat 表示 CIDR 文本格式无效（缺少 "/"、前缀长度非十进制、
	// 前缀长度带前导零等）。
	ErrInvalidFormat = errors.New("xipnet: invalid CIDR format")

	// ErrInvalidAddress 表示地址部分无效（语法错误、携带 zone ID、地址族不匹配）。
	ErrInvalidAddress = errors.New("xipnet: invalid IP address")

	// ErrInvalidLength 表示原始字节长度不正确（IPv4 期望 4+1 字节，IPv6 期望 16+1 字节）。
	ErrInvalidLength = errors.New("xipnet: invalid length")

	// ErrPrefixLength 表示前缀长度超出地址宽度（IPv4 为 32，IPv6 为 128），
	// 或子网划分时新前缀长度小于父网络前缀长度。
	ErrPrefixLength = errors.New("xipnet: prefix length out of range")

	// ErrHostBitsSet 表示网络地址的主机位非零（严格构造器拒绝）。
	ErrHostBitsSet = errors.New("xipnet: host bits set in network address")

	// ErrInvalidMask 表示点分十进制掩码的位模式不连续（如 255.0.255.0）。
	ErrInvalidMask = errors.New("xipnet: non-contiguous netmask")

	// ErrNilReceiver 表示在 nil 接收者上调用了反序列化方法。
	ErrNilReceiver = errors.New("xipnet: nil receiver")
)
