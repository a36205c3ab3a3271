package xrotate

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultFileDateFormat 默认的文件名日期布局
	DefaultFileDateFormat = "2006-01-02"

	// DefaultExt 默认的日志文件扩展名
	DefaultExt = ".log"

	// indexSeparator 日期与序号之间的分隔符。
	// 解析时在最后一次出现处切分，日期布局本身含 "_" 时依然正确。
	indexSeparator = "_"
)

// Entry 日志目录中一个受管文件的解析结果
type Entry struct {
	// Name 文件名（不含目录前缀）
	Name string

	// Date 文件名中编码的日期（当日零点，本地时区）
	Date time.Time

	// Index 文件名中编码的分卷序号
	// 序号段解析失败时为 0（宽容解析，不视为错误）
	Index int
}

// Layout 描述受管日志文件的命名方案 <日期>_<序号><扩展名>。
//
// 零值可用：DateFormat 与 Ext 为空时分别回落到
// [DefaultFileDateFormat] 和 [DefaultExt]。
// Layout 无内部状态，所有方法都是对文件系统即时快照的纯函数，
// 每次调用重新读取目录，不缓存结果（缓存会导致轮转决策基于过期状态）。
type Layout struct {
	// DateFormat 文件名日期的 Go 参考时间布局
	DateFormat string

	// Ext 含点的扩展名，如 ".log"
	Ext string
}

// normalized 返回填充了默认值的 Layout
func (l Layout) normalized() Layout {
	if l.DateFormat == "" {
		l.DateFormat = DefaultFileDateFormat
	}
	if l.Ext == "" {
		l.Ext = DefaultExt
	}
	return l
}

// Validate 校验命名方案本身可用：日期布局必须能往返解析，
// 且渲染结果与扩展名均不得把文件名拆进子目录。
func (l Layout) Validate() error {
	n := l.normalized()

	if strings.ContainsAny(n.DateFormat, `/\`) {
		return fmt.Errorf("%w: %q contains path separator", ErrInvalidDateFormat, n.DateFormat)
	}
	probe := time.Date(2006, 1, 2, 15, 4, 5, 0, time.Local)
	rendered := probe.Format(n.DateFormat)
	if _, err := time.ParseInLocation(n.DateFormat, rendered, time.Local); err != nil {
		return fmt.Errorf("%w: %q does not round-trip: %v", ErrInvalidDateFormat, n.DateFormat, err)
	}

	if !strings.HasPrefix(n.Ext, ".") || strings.ContainsAny(n.Ext, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidExt, n.Ext)
	}
	return nil
}

// Filename 渲染指定日期和序号的文件名（不含目录前缀）
func (l Layout) Filename(t time.Time, index int) string {
	n := l.normalized()
	return t.Format(n.DateFormat) + indexSeparator + strconv.Itoa(index) + n.Ext
}

// Parse 解析文件名为 (日期, 序号)。
//
// 规则：去掉扩展名后在最后一个 "_" 处切分；日期段解析失败（或扩展名
// 不符、没有分隔符）表示该文件不是本方案管理的日志文件，返回 ok=false
// 而非错误。序号段解析失败或为负时宽容地按 0 处理。
func (l Layout) Parse(name string) (Entry, bool) {
	n := l.normalized()

	base, found := strings.CutSuffix(name, n.Ext)
	if !found || base == "" {
		return Entry{}, false
	}

	sep := strings.LastIndex(base, indexSeparator)
	if sep < 0 {
		return Entry{}, false
	}

	date, err := time.ParseInLocation(n.DateFormat, base[:sep], time.Local)
	if err != nil {
		return Entry{}, false
	}

	index, err := strconv.Atoi(base[sep+1:])
	if err != nil || index < 0 {
		// 宽容解析：序号段不是非负整数时按 0 处理
		index = 0
	}

	return Entry{Name: name, Date: date, Index: index}, true
}

// Scan 扫描日志目录，返回所有受管文件的解析结果。
//
// 子目录和无法按本方案解析的文件名被静默跳过。
// 仅当目录本身不可读时返回错误。
func (l Layout) Scan(dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("xrotate: read log directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		if e, ok := l.Parse(de.Name()); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Select 选择"现在"应写入的文件路径。
//
// 规则：
//  1. 仅在日期段等于 now 所在日历日的条目中取最大序号（其他日期的条目
//     不参与比较），一个都没有时序号为 0；
//  2. maxBytes <= 0 时无条件返回该候选文件；
//  3. 否则若候选文件已存在且长度超过 maxBytes，返回序号 +1 的文件
//     （该文件无需已存在，首次写入时创建）。
//
// 同日多个序号并存时始终以最大序号为"当前"，大小只检查这一个文件，
// 不检查更早的同日分卷。Select 从不截断或删除任何文件。
func (l Layout) Select(dir string, now time.Time, maxBytes int64) (string, error) {
	entries, err := l.Scan(dir)
	if err != nil {
		return "", err
	}

	n := l.normalized()
	today := now.Format(n.DateFormat)

	index := 0
	for _, e := range entries {
		if e.Date.Format(n.DateFormat) == today && e.Index > index {
			index = e.Index
		}
	}

	candidate := filepath.Join(dir, l.Filename(now, index))
	if maxBytes <= 0 {
		return candidate, nil
	}

	info, err := os.Stat(candidate)
	if err == nil && info.Size() > maxBytes {
		return filepath.Join(dir, l.Filename(now, index+1)), nil
	}
	return candidate, nil
}

// Prune 删除日期早于保留窗口的受管文件。
//
// days <= 0 表示保留功能关闭，直接返回。否则删除所有日期段早于
// startOfDay(now) - (days-1) 天的文件；只看日期段，窗口内的文件
// 无论序号和大小一律保留。
//
// 单个文件的删除失败（权限、已被移除等）通过 onErr 上报（nil 则静默
// 忽略）并继续处理剩余文件——漏掉一轮清理会在下次轮转时自愈。
//
// 设计决策: 不在 Prune 内部打日志，轮转器常作为日志输出目标，
// 内部日志会产生递归写入。onErr 回调的 panic 被 recover 隔离。
func (l Layout) Prune(dir string, now time.Time, days int, onErr func(error)) {
	if days <= 0 {
		return
	}

	entries, err := l.Scan(dir)
	if err != nil {
		report(onErr, err)
		return
	}

	for _, e := range l.Stale(entries, now, days) {
		if err := os.Remove(filepath.Join(dir, e.Name)); err != nil {
			report(onErr, fmt.Errorf("xrotate: prune %s: %w", e.Name, err))
		}
	}
}

// Stale 从 entries 中筛出日期早于保留窗口的条目，顺序保持不变。
// 窗口规则与 Prune 一致：保留 startOfDay(now) - (days-1) 起的文件。
// days <= 0 时返回 nil。
func (l Layout) Stale(entries []Entry, now time.Time, days int) []Entry {
	if days <= 0 {
		return nil
	}

	y, m, d := now.Date()
	minDate := time.Date(y, m, d, 0, 0, 0, 0, time.Local).AddDate(0, 0, -(days - 1))

	var stale []Entry
	for _, e := range entries {
		if e.Date.Before(minDate) {
			stale = append(stale, e)
		}
	}
	return stale
}

// sameCalendarDay 按日历日比较（年/月/日），与一天内的时刻无关
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// report 通过回调上报内部错误，回调 panic 被 recover 隔离，
// 防止错误通知反向中断业务主流程。
func report(onErr func(error), err error) {
	if err != nil && onErr != nil {
		defer func() { _ = recover() }() //nolint:errcheck // recover 返回值无需检查
		onErr(err)
	}
}
