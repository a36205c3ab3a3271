package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// seedLogFiles 构造一个带新旧日志文件的目录。
// 返回目录路径、旧文件名（30 天前）、新文件名（今天）。
func seedLogFiles(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()

	old := time.Now().AddDate(0, 0, -30).Format("2006-01-02") + "_0.log"
	fresh := time.Now().Format("2006-01-02") + "_0.log"
	for _, name := range []string{old, fresh} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o600); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	// 不符合命名方案的文件，任何命令都不应碰它
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep\n"), 0o600); err != nil {
		t.Fatalf("seed notes.txt: %v", err)
	}
	return dir, old, fresh
}

func runApp(t *testing.T, args ...string) error {
	t.Helper()
	app := createApp()
	return app.Run(context.Background(), append([]string{"xlogctl"}, args...))
}

func TestMissingDirIsUsageError(t *testing.T) {
	err := runApp(t, "ls")
	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *usageError, got %T: %v", err, err)
	}
}

func TestInvalidDateFormatIsUsageError(t *testing.T) {
	err := runApp(t, "--dir", t.TempDir(), "--date-format", "2006/01/02", "ls")
	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *usageError, got %T: %v", err, err)
	}
}

// captureStdout 捕获 fn 执行期间写入标准输出的内容。
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fnErr := fn()
	_ = w.Close()
	data, readErr := io.ReadAll(r)
	if readErr != nil {
		t.Fatalf("read pipe: %v", readErr)
	}
	return string(data), fnErr
}

func TestLsUsesConfiguredDateFormat(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20240315_0.log"), []byte("x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := captureStdout(t, func() error {
		return runApp(t, "--dir", dir, "--date-format", "20060102", "ls")
	})
	if err != nil {
		t.Fatalf("ls: %v", err)
	}
	// 日期列按配置的布局渲染，而非固定的 2006-01-02
	if !strings.Contains(out, " 20240315 ") {
		t.Errorf("output does not render date with configured layout:\n%s", out)
	}
	if strings.Contains(out, "2024-03-15") {
		t.Errorf("output falls back to default date layout:\n%s", out)
	}
}

func TestLs(t *testing.T) {
	dir, _, _ := seedLogFiles(t)
	if err := runApp(t, "--dir", dir, "ls"); err != nil {
		t.Fatalf("ls: %v", err)
	}
}

func TestLsMissingDir(t *testing.T) {
	err := runApp(t, "--dir", filepath.Join(t.TempDir(), "absent"), "ls")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		t.Errorf("missing directory is a runtime failure, not a usage error: %v", err)
	}
}

func TestActive(t *testing.T) {
	dir, _, _ := seedLogFiles(t)
	if err := runApp(t, "--dir", dir, "active"); err != nil {
		t.Fatalf("active: %v", err)
	}
	// 只读操作，不创建任何文件
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("active should not create files, dir has %d entries", len(entries))
	}
}

func TestActiveNegativeMaxSize(t *testing.T) {
	err := runApp(t, "--dir", t.TempDir(), "active", "--max-size", "-1")
	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *usageError, got %T: %v", err, err)
	}
}

func TestPruneDaysValidation(t *testing.T) {
	for _, days := range []string{"0", "-3"} {
		err := runApp(t, "--dir", t.TempDir(), "prune", "--days", days)
		var usageErr *usageError
		if !errors.As(err, &usageErr) {
			t.Fatalf("days=%s: expected *usageError, got %T: %v", days, err, err)
		}
	}
}

func TestPruneDryRun(t *testing.T) {
	dir, old, fresh := seedLogFiles(t)

	if err := runApp(t, "--dir", dir, "prune", "--days", "7", "--dry-run"); err != nil {
		t.Fatalf("prune --dry-run: %v", err)
	}
	for _, name := range []string{old, fresh, "notes.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("dry-run must not delete %s: %v", name, err)
		}
	}
}

func TestPrune(t *testing.T) {
	dir, old, fresh := seedLogFiles(t)

	if err := runApp(t, "--dir", dir, "prune", "--days", "7"); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, old)); !os.IsNotExist(err) {
		t.Errorf("%s should be deleted, stat err = %v", old, err)
	}
	for _, name := range []string{fresh, "notes.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s should survive prune: %v", name, err)
		}
	}
}

func TestExitErrorAndUsageError(t *testing.T) {
	exitErr := &exitError{code: 1}
	if exitErr.Error() != "" {
		t.Errorf("exitError.Error() = %q, want empty", exitErr.Error())
	}

	err := &usageError{msg: "test error"}
	if err.Error() != "test error" {
		t.Errorf("usageError.Error() = %q, want %q", err.Error(), "test error")
	}
	var target *usageError
	if !errors.As(error(err), &target) {
		t.Error("errors.As failed for *usageError")
	}
}
