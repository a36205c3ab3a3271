package xflog

import (
	"fmt"
	"time"

	"github.com/omeyang/logkit/pkg/observability/xrotate"
)

// 默认配置常量
const (
	// DefaultAppName 默认应用名，作为平台基础目录下的子目录名
	DefaultAppName = "logkit"

	// DefaultLogDateFormat 默认行内时间戳格式（毫秒精度）
	DefaultLogDateFormat = "2006-01-02 15:04:05.000"

	// logsSubDir 基础目录下存放日志文件的固定子目录名
	logsSubDir = "logs"
)

// config Logger 配置
type config struct {
	levels         map[Level]struct{}
	retentionDays  int
	maxSizeUnits   int
	fileDateFormat string
	ext            string
	logDateFormat  string
	appName        string
	baseDirFunc    func() (string, error)
	clock          func() time.Time
	onError        func(error)
}

// Option Logger 配置选项
type Option func(*config)

// WithLevels 设置接受的级别集合，Log 对集合外的级别静默丢弃
//
// 默认接受全部五档。传入空集在 New 时报 ErrNoLevels。
func WithLevels(levels ...Level) Option {
	return func(c *config) {
		c.levels = make(map[Level]struct{}, len(levels))
		for _, l := range levels {
			c.levels[l] = struct{}{}
		}
	}
}

// WithRetentionDays 设置保留窗口天数（含当天），默认 1 天
func WithRetentionDays(days int) Option {
	return func(c *config) {
		c.retentionDays = days
	}
}

// WithRetentionDisabled 关闭自动清理，日志文件无限累积
func WithRetentionDisabled() Option {
	return func(c *config) {
		c.retentionDays = 0
	}
}

// WithMaxSize 设置单文件大小上限（单位 xrotate.SizeUnit 字节），
// 超限后写入转向下一个分卷。默认不限大小。
func WithMaxSize(units int) Option {
	return func(c *config) {
		c.maxSizeUnits = units
	}
}

// WithFileDateFormat 设置文件名中的日期布局（Go 时间布局），
// 默认 xrotate.DefaultFileDateFormat
func WithFileDateFormat(layout string) Option {
	return func(c *config) {
		c.fileDateFormat = layout
	}
}

// WithExtension 设置日志文件扩展名，默认 xrotate.DefaultExt
func WithExtension(ext string) Option {
	return func(c *config) {
		c.ext = ext
	}
}

// WithLogDateFormat 设置行内时间戳布局（Go 时间布局），
// 默认 DefaultLogDateFormat
func WithLogDateFormat(layout string) Option {
	return func(c *config) {
		c.logDateFormat = layout
	}
}

// WithAppName 设置应用名，决定平台基础目录下的子目录，默认 DefaultAppName
func WithAppName(name string) Option {
	return func(c *config) {
		c.appName = name
	}
}

// WithBaseDir 直接指定基础目录，跳过平台目录解析
//
// 日志文件仍写入其下的 logs 子目录。
func WithBaseDir(dir string) Option {
	return func(c *config) {
		c.baseDirFunc = func() (string, error) {
			return dir, nil
		}
	}
}

// WithBaseDirFunc 自定义基础目录解析函数，首次写入时调用一次
//
// 返回错误视为致命，原样抛给触发初始化的 Log 调用。
func WithBaseDirFunc(fn func() (string, error)) Option {
	return func(c *config) {
		c.baseDirFunc = fn
	}
}

// WithClock 注入时钟，仅用于测试
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithOnError 设置次要错误回调（清理阶段单文件删除失败等），
// 详见 xrotate.WithOnError
func WithOnError(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// defaultConfig 返回默认配置
func defaultConfig() config {
	levels := make(map[Level]struct{}, len(AllLevels()))
	for _, l := range AllLevels() {
		levels[l] = struct{}{}
	}
	return config{
		levels:         levels,
		retentionDays:  xrotate.DefaultRetentionDays,
		maxSizeUnits:   0,
		fileDateFormat: xrotate.DefaultFileDateFormat,
		ext:            xrotate.DefaultExt,
		logDateFormat:  DefaultLogDateFormat,
		appName:        DefaultAppName,
		clock:          time.Now,
	}
}

// validate 校验与轮转器无关的本包配置
//
// 文件名布局、保留天数等由 xrotate.NewDaily 在惰性初始化时校验。
func (c *config) validate() error {
	if len(c.levels) == 0 {
		return ErrNoLevels
	}
	for l := range c.levels {
		if !l.valid() {
			return fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
		}
	}
	if c.appName == "" && c.baseDirFunc == nil {
		return ErrEmptyAppName
	}
	if c.logDateFormat == "" {
		return ErrEmptyLogDateFormat
	}
	return nil
}
