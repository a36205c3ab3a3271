package xrotate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSizeOnlyRotatorInterface 验证具体实现满足 Rotator 接口
func TestSizeOnlyRotatorInterface(t *testing.T) {
	var _ Rotator = (*sizeOnlyRotator)(nil)
}

func TestNewSizeOnlyDefaults(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")

	r, err := NewSizeOnly(filename)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Write([]byte("test\n"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test\n", string(data))
}

func TestNewSizeOnlyValidation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		opts     []SizeOnlyOption
		wantErr  error
	}{
		{
			name:     "空文件名",
			filename: "",
			wantErr:  ErrEmptyFilename,
		},
		{
			name:     "MaxSizeMB 为零",
			filename: "/tmp/test.log",
			opts:     []SizeOnlyOption{WithSizeOnlyMaxSize(0)},
			wantErr:  ErrInvalidMaxSize,
		},
		{
			name:     "MaxSizeMB 超过上限",
			filename: "/tmp/test.log",
			opts:     []SizeOnlyOption{WithSizeOnlyMaxSize(10241)},
			wantErr:  ErrInvalidMaxSize,
		},
		{
			name:     "MaxBackups 为负数",
			filename: "/tmp/test.log",
			opts:     []SizeOnlyOption{WithSizeOnlyMaxBackups(-1)},
			wantErr:  ErrInvalidMaxBackups,
		},
		{
			name:     "MaxAgeDays 为负数",
			filename: "/tmp/test.log",
			opts:     []SizeOnlyOption{WithSizeOnlyMaxAge(-1)},
			wantErr:  ErrInvalidMaxAge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSizeOnly(tt.filename, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSizeOnlyPathTraversalRejected(t *testing.T) {
	_, err := NewSizeOnly("../../../etc/passwd")
	require.Error(t, err)
}

func TestSizeOnlyClosedBehavior(t *testing.T) {
	r, err := NewSizeOnly(filepath.Join(t.TempDir(), "app.log"))
	require.NoError(t, err)

	_, err = r.Write([]byte("x\n"))
	require.NoError(t, err)

	require.NoError(t, r.Close())

	_, err = r.Write([]byte("y\n"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, r.Rotate(), ErrClosed)
	assert.ErrorIs(t, r.Close(), ErrClosed)
}

func TestSizeOnlyManualRotate(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "app.log")

	r, err := NewSizeOnly(filename, WithSizeOnlyMaxBackups(2))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Write([]byte("before\n"))
	require.NoError(t, err)
	require.NoError(t, r.Rotate())
	_, err = r.Write([]byte("after\n"))
	require.NoError(t, err)

	// 轮转后当前文件只含新内容，旧内容进入备份
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "after\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2, "应存在备份文件")
}
