package xflog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 配置文件格式
type Format string

// 支持的配置格式
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Config 声明式 Logger 配置，可从 YAML/JSON 反序列化
//
// 零值字段取 New 的默认值；NumberOfDays 与 MaxSize 用指针区分
// "缺省"（nil，取默认）与"显式 0"（关闭对应功能）。
type Config struct {
	Levels         []string `koanf:"levels"`
	NumberOfDays   *int     `koanf:"number_of_days"`
	MaxSize        *int     `koanf:"max_size"`
	FileDateFormat string   `koanf:"file_date_format"`
	Extension      string   `koanf:"extension"`
	LogDateFormat  string   `koanf:"log_date_format"`
	AppName        string   `koanf:"app_name"`
	BaseDir        string   `koanf:"base_dir"`
}

// LoadConfig 从文件加载配置，根据扩展名检测格式（.yaml/.yml/.json）
func LoadConfig(path string) (Config, error) {
	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	return ParseConfig(data, format)
}

// ParseConfig 从字节数据解析配置，需显式指定格式
func ParseConfig(data []byte, format Format) (Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	return cfg, nil
}

// Options 将声明式配置映射为 New 的选项列表
//
// 未知级别名报 ErrUnknownLevel；其余字段校验由 New 及惰性初始化完成。
func (c Config) Options() ([]Option, error) {
	var opts []Option

	if len(c.Levels) > 0 {
		levels := make([]Level, 0, len(c.Levels))
		for _, name := range c.Levels {
			l, err := ParseLevel(name)
			if err != nil {
				return nil, err
			}
			levels = append(levels, l)
		}
		opts = append(opts, WithLevels(levels...))
	}
	if c.NumberOfDays != nil {
		if *c.NumberOfDays <= 0 {
			opts = append(opts, WithRetentionDisabled())
		} else {
			opts = append(opts, WithRetentionDays(*c.NumberOfDays))
		}
	}
	if c.MaxSize != nil && *c.MaxSize > 0 {
		opts = append(opts, WithMaxSize(*c.MaxSize))
	}
	if c.FileDateFormat != "" {
		opts = append(opts, WithFileDateFormat(c.FileDateFormat))
	}
	if c.Extension != "" {
		opts = append(opts, WithExtension(c.Extension))
	}
	if c.LogDateFormat != "" {
		opts = append(opts, WithLogDateFormat(c.LogDateFormat))
	}
	if c.AppName != "" {
		opts = append(opts, WithAppName(c.AppName))
	}
	if c.BaseDir != "" {
		opts = append(opts, WithBaseDir(c.BaseDir))
	}
	return opts, nil
}

// NewFromConfig 按声明式配置创建 FileLogger
func NewFromConfig(cfg Config) (*FileLogger, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return New(opts...)
}

// detectFormat 根据文件扩展名检测配置格式
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}
