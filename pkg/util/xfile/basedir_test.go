package xfile

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// =============================================================================
// BaseDir 单元测试
// =============================================================================

func TestBaseDir(t *testing.T) {
	t.Run("正常解析", func(t *testing.T) {
		got, err := BaseDir("logkit-test")
		if err != nil {
			t.Fatalf("BaseDir() 意外错误: %v", err)
		}
		if filepath.Base(got) != "logkit-test" {
			t.Errorf("BaseDir() = %q，期望以应用名结尾", got)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("BaseDir() = %q，期望绝对路径", got)
		}
	})

	t.Run("空应用名", func(t *testing.T) {
		_, err := BaseDir("")
		if !errors.Is(err, ErrEmptyPath) {
			t.Errorf("期望 ErrEmptyPath，得到: %v", err)
		}
	})

	t.Run("应用名穿越被拒绝", func(t *testing.T) {
		_, err := BaseDir("../escape")
		if !errors.Is(err, ErrPathTraversal) {
			t.Errorf("期望 ErrPathTraversal，得到: %v", err)
		}
	})

	t.Run("平台根目录缺失时报 ErrNoBaseDir", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("依赖 HOME/XDG 环境变量，仅在类 Unix 平台验证")
		}
		// os.UserCacheDir 在 HOME 与 XDG_CACHE_HOME 均未设置时失败
		t.Setenv("HOME", "")
		t.Setenv("XDG_CACHE_HOME", "")

		_, err := BaseDir("logkit-test")
		if !errors.Is(err, ErrNoBaseDir) {
			t.Errorf("期望 ErrNoBaseDir，得到: %v", err)
		}
	})
}

func TestBaseDirDistinctApps(t *testing.T) {
	a, err := BaseDir("app-a")
	if err != nil {
		t.Fatalf("BaseDir(app-a) 失败: %v", err)
	}
	b, err := BaseDir("app-b")
	if err != nil {
		t.Fatalf("BaseDir(app-b) 失败: %v", err)
	}
	if a == b {
		t.Error("不同应用名解析出相同的基础目录")
	}
	if filepath.Dir(a) != filepath.Dir(b) {
		t.Error("同一平台下根目录应一致")
	}
	if strings.ContainsRune(a, 0) {
		t.Error("路径包含空字节")
	}
}
