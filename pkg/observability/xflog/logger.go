package xflog

import (
	"path/filepath"
	"sync"

	"github.com/omeyang/logkit/pkg/observability/xrotate"
	"github.com/omeyang/logkit/pkg/util/xfile"
)

// FileLogger 写入本地文件的纯文本日志器
//
// 零值不可用，必须经 New 构造。所有方法并发安全：同一实例上的
// Log 调用串行执行，记录整行落盘，互不穿插。
type FileLogger struct {
	cfg config

	mu     sync.Mutex
	rot    xrotate.Rotator // 惰性创建，nil 表示 Uninitialized
	dir    string          // 日志目录，初始化成功后非空
	closed bool
}

// New 创建 FileLogger
//
// 构造是被动的：不触碰文件系统，不解析平台目录。目录解析、创建与
// 轮转状态恢复推迟到首次通过级别过滤的 Log 调用；初始化失败原样
// 返回给该次调用，且不留下半就绪状态，后续调用会重新尝试。
func New(opts ...Option) (*FileLogger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// 先校验再安装默认解析器：校验依赖"调用方是否提供了 baseDirFunc"
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.baseDirFunc == nil {
		app := cfg.appName
		cfg.baseDirFunc = func() (string, error) {
			return xfile.BaseDir(app)
		}
	}
	return &FileLogger{cfg: cfg}, nil
}

// Log 写入一条指定级别的记录
//
// 级别不在枚举内返回 ErrUnknownLevel；不在接受集合内静默丢弃并返回
// nil。写入失败（含惰性初始化失败）原样返回，内部不重试。
func (l *FileLogger) Log(level Level, msg string, opts ...RecordOption) error {
	if !level.valid() {
		return ErrUnknownLevel
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if _, ok := l.cfg.levels[level]; !ok {
		return nil
	}
	if err := l.ensureReadyLocked(); err != nil {
		return err
	}

	var r record
	for _, opt := range opts {
		opt(&r)
	}
	line := appendRecord(nil, l.cfg.clock(), l.cfg.logDateFormat, level, msg, r)
	_, err := l.rot.Write(line)
	return err
}

// Debug 写入 DEBUG 级别记录
func (l *FileLogger) Debug(msg string, opts ...RecordOption) error {
	return l.Log(LevelDebug, msg, opts...)
}

// Info 写入 INFO 级别记录
func (l *FileLogger) Info(msg string, opts ...RecordOption) error {
	return l.Log(LevelInfo, msg, opts...)
}

// Warning 写入 WARNING 级别记录
func (l *FileLogger) Warning(msg string, opts ...RecordOption) error {
	return l.Log(LevelWarning, msg, opts...)
}

// Error 写入 ERROR 级别记录
func (l *FileLogger) Error(msg string, opts ...RecordOption) error {
	return l.Log(LevelError, msg, opts...)
}

// Verbose 写入 VERBOSE 级别记录
func (l *FileLogger) Verbose(msg string, opts ...RecordOption) error {
	return l.Log(LevelVerbose, msg, opts...)
}

// Directory 返回日志文件所在目录
//
// 首次成功初始化之前返回 ("", false)。
func (l *FileLogger) Directory() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.dir == "" {
		return "", false
	}
	return l.dir, true
}

// Rotate 强制切换到下一个分卷，无论当前文件状态如何
//
// 未初始化时先执行惰性初始化。
func (l *FileLogger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if err := l.ensureReadyLocked(); err != nil {
		return err
	}
	return l.rot.Rotate()
}

// Close 关闭底层文件句柄
//
// 已关闭的实例再次 Close 或 Log 返回 ErrClosed。从未初始化过的
// 实例 Close 是无害的空操作。
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.closed = true
	if l.rot == nil {
		return nil
	}
	return l.rot.Close()
}

// ensureReadyLocked 惰性初始化：解析基础目录、创建 logs 子目录、
// 构造 Daily 轮转器。任一步失败则不修改状态，下次调用整体重试。
//
// 调用方必须持有 l.mu。
func (l *FileLogger) ensureReadyLocked() error {
	if l.rot != nil {
		return nil
	}

	base, err := l.cfg.baseDirFunc()
	if err != nil {
		return err
	}
	dir := filepath.Join(base, logsSubDir)
	if err := xfile.EnsureDir(dir); err != nil {
		return err
	}

	rotOpts := []xrotate.DailyOption{
		xrotate.WithFileDateFormat(l.cfg.fileDateFormat),
		xrotate.WithExtension(l.cfg.ext),
		xrotate.WithClock(l.cfg.clock),
	}
	if l.cfg.retentionDays > 0 {
		rotOpts = append(rotOpts, xrotate.WithRetentionDays(l.cfg.retentionDays))
	} else {
		rotOpts = append(rotOpts, xrotate.WithRetentionDisabled())
	}
	if l.cfg.maxSizeUnits > 0 {
		rotOpts = append(rotOpts, xrotate.WithMaxSize(l.cfg.maxSizeUnits))
	}
	if l.cfg.onError != nil {
		rotOpts = append(rotOpts, xrotate.WithOnError(l.cfg.onError))
	}

	rot, err := xrotate.NewDaily(dir, rotOpts...)
	if err != nil {
		return err
	}

	l.rot = rot
	l.dir = dir
	return nil
}
