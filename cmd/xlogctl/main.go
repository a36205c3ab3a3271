// xlogctl 是日志目录的命令行巡检工具。
//
// 用法:
//
//	xlogctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-d, --dir          日志目录路径
//	-a, --app          应用名（从平台基础目录解析 <base>/<app>/logs）
//	    --date-format  文件名日期布局 (默认: 2006-01-02)
//	    --ext          日志文件扩展名 (默认: .log)
//
// 命令:
//
//	ls             列出目录中符合命名方案的日志文件
//	active         打印当前应写入的文件路径
//	prune          删除保留窗口之外的日志文件
//	help           显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（目录不可读、删除失败等）
//	2: 参数错误（缺少目录、非法日期布局、未知命令等）
//
// 示例:
//
//	xlogctl -d /var/log/myapp ls               # 列出受管日志文件
//	xlogctl -a myapp active --max-size 5       # 当前写入目标（5MB 分卷上限）
//	xlogctl -d /var/log/myapp prune --days 7   # 清理 7 天窗口之外的文件
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/logkit/pkg/observability/xrotate"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xlogctl",
		Usage:   "日志目录巡检工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "日志目录路径",
			},
			&cli.StringFlag{
				Name:    "app",
				Aliases: []string{"a"},
				Usage:   "应用名（从平台基础目录解析 <base>/<app>/logs）",
			},
			&cli.StringFlag{
				Name:  "date-format",
				Usage: "文件名日期布局（Go 时间布局）",
				Value: xrotate.DefaultFileDateFormat,
			},
			&cli.StringFlag{
				Name:  "ext",
				Usage: "日志文件扩展名",
				Value: xrotate.DefaultExt,
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors: []any{
			"LogKit Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			// ExitCoder 错误（如未知命令）的消息需在此输出，
			// 替代 HandleExitCoder 的默认 os.Exit 行为。
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return &usageError{msg: err.Error()}
		},
		Description: `xlogctl 面向按日轮转、按大小分卷的日志目录，
文件命名方案为 <日期>_<序号><扩展名>（如 2024-03-15_0.log）。

主要命令:
  ls                  列出符合命名方案的文件（日期、序号、大小）
  active              打印当前应写入的文件路径
    --max-size, -m    分卷大小上限（单位 MB，0 表示不限）
  prune               删除保留窗口之外的文件
    --days, -n        保留窗口天数（含当天，必填）
    --dry-run         只列出将被删除的文件，不实际删除`,
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）也返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if _, ok := err.(cli.ExitCoder); ok {
			// ExitErrHandler 已向 stderr 输出错误详情，此处仅设置退出码
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
