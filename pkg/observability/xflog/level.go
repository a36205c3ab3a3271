package xflog

import (
	"fmt"
	"strings"
)

// Level 日志级别，封闭枚举（五档，无自定义级别）
type Level int

// 日志级别常量，按常规严重度递增排列；Verbose 独立于严重度谱系，
// 用于开销较大的诊断输出。
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelVerbose
)

// AllLevels 返回全部五档级别，顺序固定
//
// Logger 的默认接受集合即全量集合。
func AllLevels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelVerbose}
}

// valid 报告 l 是否为枚举内的合法值
func (l Level) valid() bool {
	return l >= LevelDebug && l <= LevelVerbose
}

// String 返回级别的大写标记（DEBUG/INFO/WARNING/ERROR/VERBOSE）
//
// 枚举外的值返回 "LEVEL(<n>)"，仅用于诊断，不会出现在日志行中
// （Log 对非法级别直接报错）。
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelVerbose:
		return "VERBOSE"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// MarshalText 实现 encoding.TextMarshaler 接口
//
// 支持配置序列化场景（YAML/JSON）。
func (l Level) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
//
// 支持从配置文件直接反序列化日志级别。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析字符串为日志级别
// 支持 debug/info/warn/warning/error/verbose（大小写不敏感）
// 输入会自动 TrimSpace
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "verbose":
		return LevelVerbose, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
