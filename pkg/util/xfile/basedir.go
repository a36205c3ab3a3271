package xfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BaseDir 解析当前平台下应用的可写基础目录。
//
// 各平台的根目录由操作系统约定决定：
//   - Linux: $XDG_CACHE_HOME，缺省为 $HOME/.cache
//   - macOS: $HOME/Library/Caches
//   - Windows: %LocalAppData%
//
// 返回 <平台根目录>/<app>。本函数只做路径解析，不创建目录；
// 目录创建由调用方通过 [EnsureDir] 完成。
//
// 平台无法提供可写根目录时（如 $HOME 未设置的裁剪环境）返回
// [ErrNoBaseDir]，这是调用方必须向上传播的致命错误。
func BaseDir(app string) (string, error) {
	app = strings.TrimSpace(app)
	if app == "" {
		return "", fmt.Errorf("app name is required: %w", ErrEmptyPath)
	}
	if _, err := SanitizePath(app); err != nil {
		return "", err
	}

	root, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoBaseDir, err)
	}
	return filepath.Join(root, app), nil
}
