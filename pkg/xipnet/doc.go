// Package xipnet 提供 IPv4/IPv6 网络（CIDR 块）的值类型与前缀运算。
//
// xipnet 基于 Go 标准库 [net/netip] 构建，在其地址类型之上补齐网络级语义：
//
//   - 严格/截断两种构造器（[NewIPv4Network] 拒绝主机位非零，
//     [NewIPv4NetworkTruncated] 静默清除）
//   - 前缀算术（[NetmaskAddr], [HostmaskAddr], [NetworkAddr], [BroadcastAddr],
//     [PrefixLenFromNetmask], [HostBitsSet]）
//   - 惰性迭代器（[IPv4Network.Addrs], Hosts, Subnets 与 [AddrRange]），
//     基于 range-over-func，不物化任何切片
//   - 网络级分类（IsPrivate, IsMulticast, IsGlobal 等，判定整个块而非单个地址）
//   - JSON/Text/Binary/SQL/BSON 序列化支持
//
// # 快速示例
//
// 解析和检查：
//
//	n, err := xipnet.ParseNetwork("192.168.0.0/24")
//	fmt.Println(n.Addr())      // 192.168.0.0
//	fmt.Println(n.Broadcast()) // 192.168.0.255
//	fmt.Println(n.Netmask())   // 255.255.255.0
//	n.Contains(netip.MustParseAddr("192.168.0.42")) // true
//
// 严格构造与截断构造：
//
//	// 主机位非零，严格构造失败
//	_, err := xipnet.ParseNetwork("192.168.1.1/24")
//	errors.Is(err, xipnet.ErrHostBitsSet) // true
//
//	// 截断构造清除主机位
//	n, _ := xipnet.ParseNetworkTruncated("192.168.1.1/24")
//	fmt.Println(n) // 192.168.1.0/24
//
// 子网划分与主机遍历：
//
//	n := xipnet.MustParseIPv4Network("10.0.0.0/8")
//	subnets, _ := n.Subnets(10)
//	for sub := range subnets {
//	    fmt.Println(sub) // 10.0.0.0/10 10.64.0.0/10 10.128.0.0/10 10.192.0.0/10
//	}
//	for host := range xipnet.MustParseIPv4Network("10.0.0.0/30").Hosts() {
//	    fmt.Println(host) // 10.0.0.1 10.0.0.2
//	}
//
// # 设计决策
//
//   - 定宽整数内核：IPv4 用 uint32，IPv6 用双 64 位 limb 的 128 位整数，
//     所有前缀运算是纯位运算，无堆分配
//   - 零值表示无效网络，受 [net/netip.Prefix] 零值语义启发：内部存储
//     "前缀长度 + 1"，使零值与合法的 0.0.0.0/0 可区分
//   - 不变量：网络值内部存储的一定是网络地址（主机位全零）。严格构造器
//     是默认入口，截断是调用方的显式选择
//   - IPv4-mapped IPv6 地址（::ffff:x.x.x.x）按 16 字节表示归入 IPv6 运算；
//     IPv4 构造器接受并自动 Unmap 它们
//   - zone ID 不支持：携带 zone 的输入一律拒绝（网络前缀与接口作用域无关）
//   - 文本格式遵循 RFC 5952 规范化（由 [net/netip] 保证），解析-格式化
//     往返是比特级精确的
//   - JSON/Text 序列化：无效网络输出 ""；SQL 输出 NULL；BSON 输出 null。
//     反序列化时空输入重置为零值
//
// # 主机迭代的排除规则
//
// [IPv4Network.Hosts] 在前缀长度不超过 30 时排除网络地址和广播地址；
// /31（RFC 3021 点对点链路）与 /32 不存在独立的网络/广播地址，产出全部地址。
// IPv6 对应的边界是 /126 与 /127、/128。
package xipnet
