package xflog

import (
	"runtime"
	"strings"
	"sync"
	"time"
)

// 堆栈捕获缓冲区参数
const (
	initialStackSize = 4096
	maxStackSize     = 64 * 1024
)

// stackPool 堆栈缓冲区池，避免每次 WithCurrentStack 调用都分配内存
var stackPool = sync.Pool{
	New: func() any {
		buf := make([]byte, initialStackSize)
		return &buf
	},
}

// record 单条日志记录的可选附加内容
type record struct {
	tag   string
	err   error
	stack string
}

// RecordOption 单条记录级别的可选项
type RecordOption func(*record)

// WithTag 为本条记录附加标签，渲染为级别前缀 "<tag>-"
//
// 空标签等同于不带标签。
func WithTag(tag string) RecordOption {
	return func(r *record) {
		r.tag = tag
	}
}

// WithError 为本条记录附加错误，错误文本渲染为消息行之后的独立一行
//
// nil 错误等同于不带错误。
func WithError(err error) RecordOption {
	return func(r *record) {
		r.err = err
	}
}

// WithStack 为本条记录附加调用方提供的堆栈文本，渲染在错误行之后
func WithStack(stack string) RecordOption {
	return func(r *record) {
		r.stack = stack
	}
}

// WithCurrentStack 捕获当前 goroutine 的堆栈并附加到本条记录
//
// 缓冲区截断时自动翻倍重试，上限 64KB。
func WithCurrentStack() RecordOption {
	return func(r *record) {
		r.stack = captureStack()
	}
}

// captureStack 捕获当前 goroutine 堆栈
func captureStack() string {
	bufp, ok := stackPool.Get().(*[]byte)
	if !ok {
		buf := make([]byte, initialStackSize)
		bufp = &buf
	}

	buf := *bufp
	n := runtime.Stack(buf, false)

	// 填满即可能截断，翻倍重试直到容纳或触顶
	for n == len(buf) && len(buf) < maxStackSize {
		newSize := min(len(buf)*2, maxStackSize)
		buf = make([]byte, newSize)
		n = runtime.Stack(buf, false)
	}

	// 必须在 Put 前完成 string 拷贝：未扩展场景下 buf 与 *bufp 共享
	// 底层数组，归还后会被其他 goroutine 覆盖。扩展出的大缓冲区不回池。
	s := string(buf[:n])
	stackPool.Put(bufp)
	return s
}

// appendRecord 将一条记录按行格式追加到 buf 并返回
//
// 首行固定为 "<时间戳> [<tag->]<级别>]:<消息>"，错误文本与堆栈文本
// （如有）各占后续独立行，末尾保证换行。消息内的换行原样保留，
// 解析方按首行格式识别记录边界。
func appendRecord(buf []byte, ts time.Time, tsFormat string, level Level, msg string, r record) []byte {
	buf = ts.AppendFormat(buf, tsFormat)
	buf = append(buf, ' ', '[')
	if r.tag != "" {
		buf = append(buf, r.tag...)
		buf = append(buf, '-')
	}
	buf = append(buf, level.String()...)
	buf = append(buf, ']', ':')
	buf = append(buf, msg...)
	buf = append(buf, '\n')

	if r.err != nil {
		buf = append(buf, r.err.Error()...)
		buf = append(buf, '\n')
	}
	if r.stack != "" {
		buf = append(buf, r.stack...)
		if !strings.HasSuffix(r.stack, "\n") {
			buf = append(buf, '\n')
		}
	}
	return buf
}
