// ipnetctl 是 xipnet 库的命令行前端，用于检查和划分 CIDR 网络。
//
// 用法:
//
//	ipnetctl <命令> [命令参数]
//
// 命令:
//
//	inspect <cidr>            显示网络详情（地址、掩码、数量、分类）
//	subnets <cidr> <prefix>   把网络划分为指定前缀长度的子网
//	hosts <cidr>              列出网络内的主机地址
//	contains <cidr> <addr>    判断地址是否属于网络
//	help                      显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功（contains 命令: 地址属于网络）
//	1: 命令执行失败（contains 命令: 地址不属于网络）
//	2: 参数错误（无效 CIDR、缺少参数、未知命令等）
//
// 示例:
//
//	ipnetctl inspect 192.168.1.0/24
//	ipnetctl inspect --truncate 192.168.1.1/24   # 接受并清除主机位
//	ipnetctl subnets 10.0.0.0/8 10
//	ipnetctl hosts --limit 10 192.168.1.0/24
//	ipnetctl contains 10.0.0.0/8 10.1.2.3
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:           "ipnetctl",
		Usage:          "检查和划分 CIDR 网络",
		Version:        fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run(args []string) int {
	app := createApp()

	if err := app.Run(context.Background(), args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		if _, ok := err.(cli.ExitCoder); ok {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
