package xrotate

import "errors"

// 配置校验错误
var (
	// ErrEmptyDir 日志目录为空
	ErrEmptyDir = errors.New("xrotate: directory is required")

	// ErrEmptyFilename 文件名为空
	ErrEmptyFilename = errors.New("xrotate: filename is required")

	// ErrInvalidDateFormat 文件名日期布局无效（无法往返解析，或包含路径分隔符）
	ErrInvalidDateFormat = errors.New("xrotate: invalid date format")

	// ErrInvalidExt 扩展名无效（必须以 "." 开头且不含路径分隔符）
	ErrInvalidExt = errors.New("xrotate: invalid extension")

	// ErrInvalidMaxSize 大小上限无效
	ErrInvalidMaxSize = errors.New("xrotate: invalid max size")

	// ErrInvalidRetention 保留天数无效
	ErrInvalidRetention = errors.New("xrotate: invalid retention days")

	// ErrInvalidMaxBackups MaxBackups 值无效
	ErrInvalidMaxBackups = errors.New("xrotate: invalid max backups")

	// ErrInvalidMaxAge MaxAgeDays 值无效
	ErrInvalidMaxAge = errors.New("xrotate: invalid max age")

	// ErrInvalidFileMode 文件权限包含非权限位（仅允许低 9 位 0000~0777）
	ErrInvalidFileMode = errors.New("xrotate: invalid file mode")

	// ErrClosed 轮转器已关闭
	ErrClosed = errors.New("xrotate: rotator is closed")
)
