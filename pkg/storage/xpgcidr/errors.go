package xpgcidr

import "errors"

// 预定义错误变量，支持 errors.Is 判断。
var (
	// ErrWireFormat 表示 PostgreSQL CIDR 线格式损坏（长度不足、family 未知、
	// is_cidr 标志缺失、地址长度与 family 不符等）。
	ErrWireFormat = errors.New("xpgcidr: malformed CIDR wire data")

	// ErrInvalidNetwork 表示待编码的网络值无效（零值）。
	ErrInvalidNetwork = errors.New("xpgcidr: invalid network")

	// ErrScanType 表示 Scan 收到不支持的源类型。
	ErrScanType = errors.New("xpgcidr: unsupported scan source type")
)
