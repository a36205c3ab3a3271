package xrotate

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/logkit/pkg/util/xfile"
)

// SizeOnly 轮转器默认配置值
const (
	// DefaultSizeOnlyMaxSizeMB 默认单个日志文件最大大小（MB）
	DefaultSizeOnlyMaxSizeMB = 100

	// DefaultSizeOnlyMaxBackups 默认保留的备份文件数量
	DefaultSizeOnlyMaxBackups = 7

	// DefaultSizeOnlyMaxAgeDays 默认保留备份的天数
	DefaultSizeOnlyMaxAgeDays = 30

	// sizeOnlyMaxSizeMB 单个日志文件大小上限（10 GB）
	sizeOnlyMaxSizeMB = 10240

	// sizeOnlyMaxBackups 备份文件数量上限
	sizeOnlyMaxBackups = 1024
)

// sizeOnlyConfig SizeOnly 轮转器配置
//
// 固定文件名、仅按大小轮转的策略，适合不需要按日期检索日志文件的场景。
// 注意大小单位是 lumberjack 的 MB，与 Daily 轮转器的 [SizeUnit] 不同。
type sizeOnlyConfig struct {
	// MaxSizeMB 单个日志文件最大大小（MB），超过时触发轮转
	// 默认值 DefaultSizeOnlyMaxSizeMB，必须 > 0
	MaxSizeMB int

	// MaxBackups 保留的备份文件数量，超过时删除最旧的备份
	// 默认值 DefaultSizeOnlyMaxBackups，0 表示不限制数量（但仍受 MaxAgeDays 约束）
	MaxBackups int

	// MaxAgeDays 保留备份的天数
	// 默认值 DefaultSizeOnlyMaxAgeDays，0 表示不按天数清理（但仍受 MaxBackups 约束）
	MaxAgeDays int

	// LocalTime 备份文件名是否使用本地时间，false 时使用 UTC
	LocalTime bool
}

// SizeOnlyOption SizeOnly 轮转器配置选项函数
type SizeOnlyOption func(*sizeOnlyConfig)

// WithSizeOnlyMaxSize 设置单个日志文件最大大小（MB）
func WithSizeOnlyMaxSize(mb int) SizeOnlyOption {
	return func(c *sizeOnlyConfig) {
		c.MaxSizeMB = mb
	}
}

// WithSizeOnlyMaxBackups 设置保留的备份文件数量
func WithSizeOnlyMaxBackups(n int) SizeOnlyOption {
	return func(c *sizeOnlyConfig) {
		c.MaxBackups = n
	}
}

// WithSizeOnlyMaxAge 设置保留备份的天数
func WithSizeOnlyMaxAge(days int) SizeOnlyOption {
	return func(c *sizeOnlyConfig) {
		c.MaxAgeDays = days
	}
}

// WithSizeOnlyLocalTime 设置备份文件名是否使用本地时间
func WithSizeOnlyLocalTime(local bool) SizeOnlyOption {
	return func(c *sizeOnlyConfig) {
		c.LocalTime = local
	}
}

// sizeOnlyRotator 基于 lumberjack 的 Rotator 实现
//
// lumberjack 提供按大小自动轮转、备份数量/天数管理和并发安全的写入。
// 备份压缩保持关闭（本仓库不做轮转文件压缩）。
type sizeOnlyRotator struct {
	logger *lumberjack.Logger
	closed atomic.Bool
}

// NewSizeOnly 创建固定文件名、仅按大小轮转的日志轮转器
//
// 参数:
//   - filename: 日志文件路径（必需），会进行格式净化并自动创建父目录
//   - opts: 可选配置项
func NewSizeOnly(filename string, opts ...SizeOnlyOption) (Rotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := sizeOnlyConfig{
		MaxSizeMB:  DefaultSizeOnlyMaxSizeMB,
		MaxBackups: DefaultSizeOnlyMaxBackups,
		MaxAgeDays: DefaultSizeOnlyMaxAgeDays,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateSizeOnlyConfig(&cfg); err != nil {
		return nil, err
	}

	safePath, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(filepath.Dir(safePath)); err != nil {
		return nil, err
	}

	return &sizeOnlyRotator{
		logger: &lumberjack.Logger{
			Filename:   safePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  cfg.LocalTime,
			Compress:   false,
		},
	}, nil
}

// validateSizeOnlyConfig 验证 SizeOnly 轮转器配置
func validateSizeOnlyConfig(cfg *sizeOnlyConfig) error {
	if cfg.MaxSizeMB <= 0 || cfg.MaxSizeMB > sizeOnlyMaxSizeMB {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, cfg.MaxSizeMB, sizeOnlyMaxSizeMB)
	}

	if cfg.MaxBackups < 0 || cfg.MaxBackups > sizeOnlyMaxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, cfg.MaxBackups, sizeOnlyMaxBackups)
	}

	if cfg.MaxAgeDays < 0 || cfg.MaxAgeDays > maxRetentionDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAge, cfg.MaxAgeDays, maxRetentionDays)
	}

	return nil
}

// Write 实现 io.Writer 接口
func (r *sizeOnlyRotator) Write(p []byte) (n int, err error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}

	n, err = r.logger.Write(p)
	if err != nil {
		// 设计决策: Write 与 Close 存在 TOCTOU 窗口——Write 通过 closed 前置
		// 检查后，Close 可能在 logger.Write 执行期间完成。后置检查确保调用者
		// 始终得到 ErrClosed 而非底层 I/O 错误。
		if r.closed.Load() {
			return n, ErrClosed
		}
		return n, err
	}
	return n, nil
}

// Close 实现 io.Closer 接口
//
// 设计决策: 使用 CAS 原语标记关闭状态，首次 Close 失败后不重置标记，
// 确保关闭后不会有新的写入到达底层 logger。
func (r *sizeOnlyRotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	return r.logger.Close()
}

// Rotate 手动触发轮转
func (r *sizeOnlyRotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}

	if err := r.logger.Rotate(); err != nil {
		if r.closed.Load() {
			return ErrClosed
		}
		return err
	}
	return nil
}
