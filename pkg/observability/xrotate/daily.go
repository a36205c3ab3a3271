package xrotate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/omeyang/logkit/pkg/util/xfile"
)

// Daily 轮转器默认配置值
const (
	// SizeUnit 大小配置的单位字节数（1 单位 = 1,000,000 字节）
	SizeUnit = 1_000_000

	// DefaultRetentionDays 默认保留天数
	DefaultRetentionDays = 1

	// DefaultFilePerm 默认日志文件权限
	DefaultFilePerm = os.FileMode(0600)

	// maxRetentionDays 保留天数上限（约 10 年）
	maxRetentionDays = 3650

	// maxSizeUnits 单个日志文件大小上限（10 GB）
	maxSizeUnits = 10_000
)

// dailyConfig Daily 轮转器配置
//
// 按日历日轮转的策略：日期变化或当前文件超过大小上限时切换到新文件，
// 切换时顺带清理超出保留窗口的旧文件。
type dailyConfig struct {
	// Layout 文件命名方案
	Layout Layout

	// RetentionDays 保留天数
	// 清理边界为 startOfDay(今天) - (RetentionDays-1) 天
	// 默认值 DefaultRetentionDays，0 表示不清理
	RetentionDays int

	// MaxSizeUnits 单个文件大小上限（单位 SizeUnit 字节）
	// 0 表示不按大小分卷
	MaxSizeUnits int

	// FilePerm 日志文件权限
	// 仅允许权限位（0000~0777）
	FilePerm os.FileMode

	// Clock 时钟函数，默认 time.Now
	// 轮转决策全部基于此时钟，测试中可注入固定时钟
	Clock func() time.Time

	// OnError 可选的错误回调函数
	//
	// 清理阶段单个文件删除失败时调用。默认为 nil（静默忽略）。
	//
	// 安全约束：回调函数不得向同一 Rotator 写入数据，否则会导致递归死锁。
	// 推荐输出到 os.Stderr 或独立的日志通道。
	OnError func(error)
}

// DailyOption Daily 轮转器配置选项函数
type DailyOption func(*dailyConfig)

// WithFileDateFormat 设置文件名日期布局（Go 参考时间布局）
func WithFileDateFormat(layout string) DailyOption {
	return func(c *dailyConfig) {
		c.Layout.DateFormat = layout
	}
}

// WithExtension 设置日志文件扩展名（含点，如 ".log"）
func WithExtension(ext string) DailyOption {
	return func(c *dailyConfig) {
		c.Layout.Ext = ext
	}
}

// WithRetentionDays 设置保留天数
//
// 保留窗口为 [今天-(days-1), 今天]；窗口外的受管文件在每次轮转时删除。
func WithRetentionDays(days int) DailyOption {
	return func(c *dailyConfig) {
		c.RetentionDays = days
	}
}

// WithRetentionDisabled 关闭过期清理
func WithRetentionDisabled() DailyOption {
	return func(c *dailyConfig) {
		c.RetentionDays = 0
	}
}

// WithMaxSize 设置单个文件大小上限（单位 [SizeUnit] = 1,000,000 字节）
//
// 当前文件超过上限时切换到同日的下一个序号分卷；超限文件原样保留，
// 从不截断。0 表示不按大小分卷。
func WithMaxSize(units int) DailyOption {
	return func(c *dailyConfig) {
		c.MaxSizeUnits = units
	}
}

// WithFilePerm 设置日志文件权限（仅允许权限位 0000~0777）
func WithFilePerm(perm os.FileMode) DailyOption {
	return func(c *dailyConfig) {
		c.FilePerm = perm
	}
}

// WithClock 设置时钟函数
//
// 轮转决策（日期比较、清理边界、文件名渲染）全部基于此时钟。
// 主要用于测试中模拟日期翻转。
func WithClock(clock func() time.Time) DailyOption {
	return func(c *dailyConfig) {
		c.Clock = clock
	}
}

// WithOnError 设置错误回调函数
//
// 设计决策: 不使用日志库记录内部错误，避免 Rotator 作为日志输出目标时
// 产生递归写入（写失败 → 打日志 → 再写失败 → 栈溢出/死锁）。
// 回调函数不得向同一 Rotator 写入数据。
func WithOnError(fn func(error)) DailyOption {
	return func(c *dailyConfig) {
		c.OnError = fn
	}
}

// dailyRotator 按日历日轮转的 Rotator 实现
//
// 状态 {file, path, openedFor}：当前打开的文件句柄、其路径、以及该文件
// 是为哪个日历日选定的。状态整体替换、从不原地修改；被替换的旧文件
// 只关闭不删除（删除只发生在 Prune）。
//
// 并发约束：初始化、有效性判断、轮转决策、追加、刷盘整个序列在一把
// 互斥锁内端到端执行，两个并发写不可能各自计算出冲突的下一序号，
// 也不可能交错出半行日志。
type dailyRotator struct {
	dir string
	cfg dailyConfig

	maxBytes int64 // MaxSizeUnits 换算成字节，0 表示无上限

	mu        sync.Mutex
	file      *os.File
	path      string
	openedFor time.Time // 当前文件对应的日历日
	written   int64     // 当前文件长度（打开时 stat + 之后的追加字节数）
	closed    bool
}

// NewDaily 创建按日历日轮转的日志轮转器
//
// 参数:
//   - dir: 日志目录（必需）；构造时只做路径校验，目录的创建和
//     首次目录扫描推迟到第一次 Write
//   - opts: 可选配置项
//
// 首次 Write 以及之后每个日期翻转/大小超限时刻，轮转器先清理过期文件
// 再选择当前文件（先清理后选择，避免把刚过期的文件选为当前文件），
// 然后以追加模式打开。每次 Write 成功追加后立即 Sync 刷盘。
func NewDaily(dir string, opts ...DailyOption) (Rotator, error) {
	if dir == "" {
		return nil, ErrEmptyDir
	}

	cfg := dailyConfig{
		RetentionDays: DefaultRetentionDays,
		FilePerm:      DefaultFilePerm,
		Clock:         time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateDailyConfig(&cfg); err != nil {
		return nil, err
	}

	safeDir, err := xfile.SanitizePath(dir)
	if err != nil {
		return nil, err
	}

	return &dailyRotator{
		dir:      safeDir,
		cfg:      cfg,
		maxBytes: int64(cfg.MaxSizeUnits) * SizeUnit,
	}, nil
}

// validateDailyConfig 验证 Daily 轮转器配置
func validateDailyConfig(cfg *dailyConfig) error {
	if err := cfg.Layout.Validate(); err != nil {
		return err
	}

	if cfg.RetentionDays < 0 || cfg.RetentionDays > maxRetentionDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidRetention, cfg.RetentionDays, maxRetentionDays)
	}

	if cfg.MaxSizeUnits < 0 || cfg.MaxSizeUnits > maxSizeUnits {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxSize, cfg.MaxSizeUnits, maxSizeUnits)
	}

	// FilePerm 仅允许权限位（低 9 位），拒绝文件类型位、setuid/setgid 等
	if cfg.FilePerm&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits (0000~0777) allowed",
			ErrInvalidFileMode, cfg.FilePerm)
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return nil
}

// Write 实现 io.Writer 接口
//
// "检查日期 → 必要时轮转 → 追加 → 刷盘"整个序列相对于同一实例上的
// 其他 Write/Rotate/Close 调用是一个原子单元。
func (d *dailyRotator) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, ErrClosed
	}

	now := d.cfg.Clock()
	if d.staleLocked(now) {
		if err := d.rollLocked(now, false); err != nil {
			return 0, err
		}
	}

	n, err = d.file.Write(p)
	d.written += int64(n)
	if err != nil {
		return n, fmt.Errorf("xrotate: append %s: %w", d.path, err)
	}

	// 每次追加后立即刷盘，保证崩溃时已返回的日志行落盘
	if err := d.file.Sync(); err != nil {
		return n, fmt.Errorf("xrotate: sync %s: %w", d.path, err)
	}
	return n, nil
}

// staleLocked 判断当前状态对"现在"是否仍然有效。
// 无效条件：尚无打开文件；打开文件的日历日不是今天；超过大小上限。
func (d *dailyRotator) staleLocked(now time.Time) bool {
	if d.file == nil {
		return true
	}
	if !sameCalendarDay(d.openedFor, now) {
		return true
	}
	return d.maxBytes > 0 && d.written > d.maxBytes
}

// rollLocked 执行一次完整的轮转：清理 → 选择 → 打开 → 整体替换状态。
//
// forceNext 为 true（手动 Rotate）且选择结果仍是当前文件时，
// 跳到同日的下一个序号。
//
// 打开新文件成功之前不动旧状态，失败时旧文件继续可用。
func (d *dailyRotator) rollLocked(now time.Time, forceNext bool) error {
	if err := xfile.EnsureDir(d.dir); err != nil {
		return err
	}

	// 先清理后选择，避免把刚过期的文件选为当前文件
	d.cfg.Layout.Prune(d.dir, now, d.cfg.RetentionDays, d.cfg.OnError)

	path, err := d.cfg.Layout.Select(d.dir, now, d.maxBytes)
	if err != nil {
		return err
	}

	if forceNext && d.file != nil && path == d.path {
		if e, ok := d.cfg.Layout.Parse(filepath.Base(path)); ok {
			path = filepath.Join(d.dir, d.cfg.Layout.Filename(now, e.Index+1))
		}
	}

	//#nosec G304 -- 路径由 Layout 从配置渲染而来，构造时已经过 SanitizePath
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, d.cfg.FilePerm)
	if err != nil {
		return fmt.Errorf("xrotate: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("xrotate: stat %s: %w", path, err)
	}

	if d.file != nil {
		// 被替换的句柄只关闭不删除；关闭失败不影响新文件的使用
		_ = d.file.Close()
	}

	d.file = f
	d.path = path
	d.openedFor = now
	d.written = info.Size()
	return nil
}

// Rotate 手动触发轮转：关闭当前文件，切换到同日的下一个序号分卷
func (d *dailyRotator) Rotate() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	return d.rollLocked(d.cfg.Clock(), true)
}

// Close 实现 io.Closer 接口
//
// 关闭后调用 Write 或 Rotate 将返回 [ErrClosed]。
// 重复调用 Close 也返回 [ErrClosed]。
func (d *dailyRotator) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	d.closed = true

	if d.file == nil {
		return nil
	}
	f := d.file
	d.file = nil
	if err := f.Close(); err != nil {
		return fmt.Errorf("xrotate: close %s: %w", d.path, err)
	}
	return nil
}
