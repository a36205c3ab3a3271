package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/logkit/pkg/observability/xrotate"
	"github.com/omeyang/logkit/pkg/util/xfile"
)

// logsSubDir 平台基础目录下存放日志文件的固定子目录名，
// 与 xflog 的目录解析规则一致。
const logsSubDir = "logs"

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数错误，统一映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createLsCommand(),
		createActiveCommand(),
		createPruneCommand(),
	}
}

// createLsCommand 创建 ls 子命令。
func createLsCommand() *cli.Command {
	return &cli.Command{
		Name:    "ls",
		Aliases: []string{"list"},
		Usage:   "列出符合命名方案的日志文件",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, layout, err := resolveTarget(cmd)
			if err != nil {
				return err
			}
			return cmdLs(ctx, dir, layout)
		},
	}
}

// createActiveCommand 创建 active 子命令。
func createActiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "active",
		Usage: "打印当前应写入的文件路径",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max-size",
				Aliases: []string{"m"},
				Usage:   "分卷大小上限（单位 MB，0 表示不限）",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, layout, err := resolveTarget(cmd)
			if err != nil {
				return err
			}
			units := cmd.Int("max-size")
			if units < 0 {
				return &usageError{msg: "--max-size 不能为负数"}
			}
			return cmdActive(ctx, dir, layout, int64(units)*xrotate.SizeUnit)
		},
	}
}

// createPruneCommand 创建 prune 子命令。
func createPruneCommand() *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "删除保留窗口之外的日志文件",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "days",
				Aliases: []string{"n"},
				Usage:   "保留窗口天数（含当天）",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "只列出将被删除的文件，不实际删除",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, layout, err := resolveTarget(cmd)
			if err != nil {
				return err
			}
			days := cmd.Int("days")
			if days < 1 {
				return &usageError{msg: "--days 必须 >= 1"}
			}
			return cmdPrune(ctx, dir, layout, days, cmd.Bool("dry-run"))
		},
	}
}

// resolveTarget 从全局 flag 解析日志目录与命名方案。
// 目录来源优先级：--dir > --app（平台基础目录下的 <app>/logs）。
func resolveTarget(cmd *cli.Command) (string, xrotate.Layout, error) {
	layout := xrotate.Layout{
		DateFormat: cmd.String("date-format"),
		Ext:        cmd.String("ext"),
	}
	if err := layout.Validate(); err != nil {
		return "", xrotate.Layout{}, &usageError{msg: err.Error()}
	}

	if dir := cmd.String("dir"); dir != "" {
		return dir, layout, nil
	}
	if app := cmd.String("app"); app != "" {
		base, err := xfile.BaseDir(app)
		if err != nil {
			return "", xrotate.Layout{}, fmt.Errorf("解析平台基础目录失败: %w", err)
		}
		return filepath.Join(base, logsSubDir), layout, nil
	}
	return "", xrotate.Layout{}, &usageError{msg: "需要 --dir 或 --app 指定日志目录"}
}

// cmdLs 列出符合命名方案的日志文件，按日期、序号排序输出。
func cmdLs(ctx context.Context, dir string, layout xrotate.Layout) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := layout.Scan(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("目录 %s 中没有符合命名方案的日志文件\n", dir)
		return nil
	}

	fmt.Printf("%-28s %-12s %6s %12s\n", "文件", "日期", "序号", "大小")
	for _, e := range entries {
		size := "-"
		if info, statErr := os.Stat(filepath.Join(dir, e.Name)); statErr == nil {
			size = fmt.Sprintf("%d", info.Size())
		}
		fmt.Printf("%-28s %-12s %6d %12s\n",
			e.Name, e.Date.Format(layout.DateFormat), e.Index, size)
	}
	return nil
}

// cmdActive 打印当前应写入的文件路径。
// 只读操作：不创建目录和文件，目录不存在视为失败。
func cmdActive(ctx context.Context, dir string, layout xrotate.Layout, maxBytes int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := layout.Select(dir, time.Now(), maxBytes)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// cmdPrune 删除保留窗口之外的日志文件。
// 单个文件删除失败不中断，全部处理完后以退出码 1 汇报。
func cmdPrune(ctx context.Context, dir string, layout xrotate.Layout, days int, dryRun bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := layout.Scan(dir)
	if err != nil {
		return err
	}

	stale := layout.Stale(entries, time.Now(), days)
	if len(stale) == 0 {
		fmt.Println("没有超出保留窗口的文件")
		return nil
	}

	failed := 0
	for _, e := range stale {
		if dryRun {
			fmt.Printf("将删除: %s\n", e.Name)
			continue
		}
		if rmErr := os.Remove(filepath.Join(dir, e.Name)); rmErr != nil {
			fmt.Fprintf(os.Stderr, "删除 %s 失败: %v\n", e.Name, rmErr)
			failed++
			continue
		}
		fmt.Printf("已删除: %s\n", e.Name)
	}

	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh) // 回收订阅
		os.Exit(130)       // 第二次信号: 强制退出
	}()
}
