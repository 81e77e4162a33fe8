// Package xpgcidr 提供 PostgreSQL cidr 类型的二进制线格式编解码。
//
// PostgreSQL 的 inet/cidr 列在二进制协议下使用统一的线格式：
//
//	[family, prefix_len, is_cidr, addr_len, addr bytes...]
//
// 其中 family 是 PostgreSQL 内部的地址族编号（IPv4 为 2，IPv6 为 3），
// is_cidr 为 1 表示 cidr 列，addr_len 为 4 或 16。
//
// # 快速示例
//
// 直接编解码（用于实现驱动层的自定义类型）：
//
//	data, err := xpgcidr.Encode(xipnet.MustParseNetwork("192.168.0.0/16"))
//	// data = [2, 16, 1, 4, 192, 168, 0, 0]
//	n, err := xpgcidr.Decode(data)
//
// database/sql 扫描（文本协议或二进制协议均可）：
//
//	var c xpgcidr.CIDR
//	err := db.QueryRow("SELECT network FROM subnets WHERE id = $1", id).Scan(&c)
//	fmt.Println(c.Network)
//
// # 设计决策
//
//   - 解码是严格构造：主机位非零的数据视为损坏（PostgreSQL 的 cidr 类型
//     本身保证主机位为零，出现非零说明数据或协议解析出错）
//   - 所有线格式错误统一落在 [ErrWireFormat] 之下，核心包的细分错误
//     （ErrHostBitsSet, ErrPrefixLength 等）通过 errors.Is 仍可判断
//   - 只支持 cidr（is_cidr = 1），不支持 inet：inet 允许主机位，
//     与本库的网络值语义不符
package xpgcidr
