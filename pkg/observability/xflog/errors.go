package xflog

import "errors"

// 预定义错误变量，调用方可用 errors.Is 判断。
var (
	// ErrClosed Logger 已关闭。
	ErrClosed = errors.New("xflog: logger is closed")

	// ErrUnknownLevel 级别值不在五档枚举内。
	ErrUnknownLevel = errors.New("xflog: unknown level")

	// ErrNoLevels 接受级别集合为空。
	ErrNoLevels = errors.New("xflog: accepted level set is empty")

	// ErrEmptyAppName 应用名为空，无法解析平台基础目录。
	ErrEmptyAppName = errors.New("xflog: app name is empty")

	// ErrEmptyLogDateFormat 行内时间戳布局为空。
	ErrEmptyLogDateFormat = errors.New("xflog: log date format is empty")

	// ErrUnsupportedFormat 不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xflog: unsupported config format")

	// ErrLoadConfig 配置加载或解析失败。
	ErrLoadConfig = errors.New("xflog: load config failed")
)
