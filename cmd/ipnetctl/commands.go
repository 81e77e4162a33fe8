package main

import (
	"context"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/JakubOnderka/ip-network/pkg/xipnet"
)

// defaultListLimit 是 subnets/hosts 列表输出的默认上限，
// 防止把 /8 的主机全部打到终端。
const defaultListLimit = 256

// exitError 表示需要非零退出码但已完成输出的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数错误（退出码 2）。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createInspectCommand(),
		createSubnetsCommand(),
		createHostsCommand(),
		createContainsCommand(),
	}
}

// createInspectCommand 创建 inspect 子命令。
func createInspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Aliases:   []string{"i"},
		Usage:     "显示网络详情",
		ArgsUsage: "<cidr>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "truncate",
				Aliases: []string{"t"},
				Usage:   "接受主机位非零的输入并静默清除",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return &usageError{msg: "inspect 需要一个 CIDR 参数"}
			}
			return cmdInspect(os.Stdout, cmd.Args().First(), cmd.Bool("truncate"))
		},
	}
}

// createSubnetsCommand 创建 subnets 子命令。
func createSubnetsCommand() *cli.Command {
	return &cli.Command{
		Name:      "subnets",
		Aliases:   []string{"s"},
		Usage:     "把网络划分为指定前缀长度的子网",
		ArgsUsage: "<cidr> <prefix>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "最多输出的子网数量",
				Value:   defaultListLimit,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return &usageError{msg: "subnets 需要 CIDR 和前缀长度两个参数"}
			}
			return cmdSubnets(os.Stdout, cmd.Args().Get(0), cmd.Args().Get(1), int(cmd.Int("limit")))
		},
	}
}

// createHostsCommand 创建 hosts 子命令。
func createHostsCommand() *cli.Command {
	return &cli.Command{
		Name:      "hosts",
		Aliases:   []string{"H"},
		Usage:     "列出网络内的主机地址",
		ArgsUsage: "<cidr>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "包含网络地址和广播地址",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "最多输出的地址数量",
				Value:   defaultListLimit,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return &usageError{msg: "hosts 需要一个 CIDR 参数"}
			}
			return cmdHosts(os.Stdout, cmd.Args().First(), cmd.Bool("all"), int(cmd.Int("limit")))
		},
	}
}

// createContainsCommand 创建 contains 子命令。
func createContainsCommand() *cli.Command {
	return &cli.Command{
		Name:      "contains",
		Aliases:   []string{"c"},
		Usage:     "判断地址是否属于网络（属于: 退出码 0，不属于: 退出码 1）",
		ArgsUsage: "<cidr> <addr>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return &usageError{msg: "contains 需要 CIDR 和地址两个参数"}
			}
			return cmdContains(os.Stdout, cmd.Args().Get(0), cmd.Args().Get(1))
		},
	}
}

// parseNetworkArg 解析 CIDR 参数，解析失败归类为参数错误。
func parseNetworkArg(s string, truncate bool) (xipnet.Network, error) {
	parse := xipnet.ParseNetwork
	if truncate {
		parse = xipnet.ParseNetworkTruncated
	}
	n, err := parse(s)
	if err != nil {
		return xipnet.Network{}, &usageError{msg: fmt.Sprintf("无效的 CIDR %q: %v", s, err)}
	}
	return n, nil
}

// cmdInspect 输出网络详情。
func cmdInspect(w io.Writer, cidr string, truncate bool) error {
	n, err := parseNetworkArg(cidr, truncate)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Network:    %s\n", n)
	fmt.Fprintf(w, "Version:    %s\n", n.Version())
	fmt.Fprintf(w, "Address:    %s\n", n.Addr())
	fmt.Fprintf(w, "Prefix:     %d\n", n.PrefixLen())
	fmt.Fprintf(w, "Netmask:    %s\n", n.Netmask())
	fmt.Fprintf(w, "Hostmask:   %s\n", n.Hostmask())
	fmt.Fprintf(w, "Last:       %s\n", n.Broadcast())
	fmt.Fprintf(w, "Addresses:  %s\n", n.AddrCount())
	fmt.Fprintf(w, "Hosts:      %s\n", n.HostCount())
	fmt.Fprintf(w, "Flags:      %s\n", classifyFlags(n))
	return nil
}

// classifyFlags 汇总网络的分类标签。
func classifyFlags(n xipnet.Network) string {
	flags := ""
	add := func(name string, set bool) {
		if !set {
			return
		}
		if flags != "" {
			flags += ","
		}
		flags += name
	}
	add("loopback", n.IsLoopback())
	add("multicast", n.IsMulticast())
	add("documentation", n.IsDocumentation())
	add("global", n.IsGlobal())
	if flags == "" {
		flags = "-"
	}
	return flags
}

// cmdSubnets 列出子网。
func cmdSubnets(w io.Writer, cidr, prefix string, limit int) error {
	n, err := parseNetworkArg(cidr, false)
	if err != nil {
		return err
	}
	newBits, err := strconv.ParseUint(prefix, 10, 8)
	if err != nil {
		return &usageError{msg: fmt.Sprintf("无效的前缀长度 %q", prefix)}
	}

	seq, err := n.Subnets(uint8(newBits))
	if err != nil {
		return &usageError{msg: fmt.Sprintf("无法划分 %s 到 /%d: %v", n, newBits, err)}
	}
	count, err := n.SubnetCount(uint8(newBits))
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	printed := 0
	for sub := range seq {
		if limit > 0 && printed >= limit {
			fmt.Fprintf(w, "... (%s total, limit %d reached)\n", count, limit)
			break
		}
		fmt.Fprintln(w, sub)
		printed++
	}
	return nil
}

// cmdHosts 列出主机地址。
func cmdHosts(w io.Writer, cidr string, all bool, limit int) error {
	n, err := parseNetworkArg(cidr, false)
	if err != nil {
		return err
	}

	seq := n.Hosts()
	total := n.HostCount()
	if all {
		seq = n.Addrs()
		total = n.AddrCount()
	}

	printed := 0
	for addr := range seq {
		if limit > 0 && printed >= limit {
			fmt.Fprintf(w, "... (%s total, limit %d reached)\n", total, limit)
			break
		}
		fmt.Fprintln(w, addr)
		printed++
	}
	return nil
}

// cmdContains 判断地址归属，不属于时返回退出码 1。
func cmdContains(w io.Writer, cidr, addrText string) error {
	n, err := parseNetworkArg(cidr, false)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(addrText)
	if err != nil {
		return &usageError{msg: fmt.Sprintf("无效的地址 %q", addrText)}
	}

	if !n.Contains(addr) {
		fmt.Fprintf(w, "%s does not contain %s\n", n, addr)
		return &exitError{code: 1}
	}
	fmt.Fprintf(w, "%s contains %s\n", n, addr)
	return nil
}
