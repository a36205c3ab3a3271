package xflog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		want  string
	}{
		{"DEBUG", LevelDebug, "DEBUG"},
		{"INFO", LevelInfo, "INFO"},
		{"WARNING", LevelWarning, "WARNING"},
		{"ERROR", LevelError, "ERROR"},
		{"VERBOSE", LevelVerbose, "VERBOSE"},
		{"枚举外的值", Level(42), "LEVEL(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{"小写 debug", "debug", LevelDebug, false},
		{"大写 INFO", "INFO", LevelInfo, false},
		{"warning 全称", "warning", LevelWarning, false},
		{"warn 缩写", "warn", LevelWarning, false},
		{"带空白", "  error  ", LevelError, false},
		{"verbose", "Verbose", LevelVerbose, false},
		{"未知名称", "trace", LevelInfo, true},
		{"空字符串", "", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelTextRoundTrip(t *testing.T) {
	for _, l := range AllLevels() {
		data, err := l.MarshalText()
		require.NoError(t, err)

		var got Level
		require.NoError(t, got.UnmarshalText(data))
		assert.Equal(t, l, got)
	}
}

func TestLevelMarshalInvalid(t *testing.T) {
	_, err := Level(99).MarshalText()
	assert.True(t, errors.Is(err, ErrUnknownLevel))
}

func TestAllLevelsOrder(t *testing.T) {
	assert.Equal(t,
		[]Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelVerbose},
		AllLevels())
}
