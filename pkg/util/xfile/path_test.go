package xfile

import (
	"errors"
	"testing"
)

// =============================================================================
// SanitizePath 单元测试
// =============================================================================

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  error
	}{
		{
			name:     "普通绝对路径",
			filename: "/var/log/app.log",
			want:     "/var/log/app.log",
		},
		{
			name:     "普通相对路径",
			filename: "logs/app.log",
			want:     "logs/app.log",
		},
		{
			name:     "冗余斜杠被规范化",
			filename: "/var//log///app.log",
			want:     "/var/log/app.log",
		},
		{
			name:     "单点段被消除",
			filename: "./logs/./app.log",
			want:     "logs/app.log",
		},
		{
			name:     "空路径",
			filename: "",
			wantErr:  ErrEmptyPath,
		},
		{
			name:     "空字节",
			filename: "app\x00.log",
			wantErr:  ErrNullByte,
		},
		{
			name:     "相对路径穿越",
			filename: "../../../etc/passwd",
			wantErr:  ErrPathTraversal,
		},
		{
			name:     "尾部斜杠表示目录",
			filename: "/var/log/",
			wantErr:  ErrInvalidPath,
		},
		{
			name:     "尾部反斜杠表示目录",
			filename: "logs\\",
			wantErr:  ErrInvalidPath,
		},
		{
			name:     "合法的双点前缀文件名",
			filename: "..config",
			want:     "..config",
		},
		{
			name:     "文件名内嵌双点",
			filename: "app..2024.log",
			want:     "app..2024.log",
		},
		{
			name:     "绝对路径中间穿越被 Clean 解析",
			filename: "/var/log/../log/app.log",
			want:     "/var/log/app.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePath(tt.filename)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("SanitizePath(%q) 错误 = %v，期望 %v", tt.filename, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("SanitizePath(%q) 意外错误: %v", tt.filename, err)
				return
			}
			if got != tt.want {
				t.Errorf("SanitizePath(%q) = %q，期望 %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestHasDotDotSegment(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"..", true},
		{"a/../b", true},
		{"..\\windows", true},
		{"a\\..\\b", true},
		{"..config", false},
		{"a..b/c", false},
		{"", false},
		{"///", false},
	}

	for _, tt := range tests {
		if got := hasDotDotSegment(tt.path); got != tt.want {
			t.Errorf("hasDotDotSegment(%q) = %v，期望 %v", tt.path, got, tt.want)
		}
	}
}
