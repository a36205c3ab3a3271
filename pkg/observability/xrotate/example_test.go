package xrotate_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/logkit/pkg/observability/xrotate"
)

func ExampleNewDaily() {
	tmpDir, err := os.MkdirTemp("", "xrotate-example-*")
	if err != nil {
		fmt.Println("创建临时目录失败:", err)
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	r, err := xrotate.NewDaily(filepath.Join(tmpDir, "logs"),
		xrotate.WithRetentionDays(7), // 保留最近 7 天
		xrotate.WithMaxSize(10),      // 单文件 10,000,000 字节后切分卷
	)
	if err != nil {
		fmt.Println("创建失败:", err)
		return
	}
	defer r.Close()

	_, _ = r.Write([]byte("hello xrotate\n"))
	fmt.Println("写入成功")
	// Output: 写入成功
}

func ExampleNewSizeOnly() {
	tmpDir, err := os.MkdirTemp("", "xrotate-example-*")
	if err != nil {
		fmt.Println("创建临时目录失败:", err)
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	r, err := xrotate.NewSizeOnly(filepath.Join(tmpDir, "app.log"),
		xrotate.WithSizeOnlyMaxSize(100),  // 100MB 触发轮转
		xrotate.WithSizeOnlyMaxBackups(7), // 保留 7 个备份
		xrotate.WithSizeOnlyMaxAge(30),    // 保留 30 天
	)
	if err != nil {
		fmt.Println("创建失败:", err)
		return
	}
	defer r.Close()

	_, _ = r.Write([]byte("hello\n"))
	fmt.Println("写入成功")
	// Output: 写入成功
}

func ExampleLayout_Select() {
	tmpDir, err := os.MkdirTemp("", "xrotate-example-*")
	if err != nil {
		fmt.Println("创建临时目录失败:", err)
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	var l xrotate.Layout // 零值使用默认方案 <2006-01-02>_<序号>.log

	entries, err := l.Scan(tmpDir)
	if err != nil {
		fmt.Println("扫描失败:", err)
		return
	}
	fmt.Println("受管文件数:", len(entries))
	// Output: 受管文件数: 0
}
