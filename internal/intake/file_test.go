package intake

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Veraticus/scenic/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeForName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "photo.jpg", want: "image/jpeg"},
		{name: "photo.JPEG", want: "image/jpeg"},
		{name: "scan.png", want: "image/png"},
		{name: "anim.gif", want: "image/gif"},
		{name: "old.bmp", want: "image/bmp"},
		{name: "README", want: ""},
		{name: "notes.unknownext", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeForName(tt.name))
		})
	}
}

func TestOpenPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forest.png")
	require.NoError(t, os.WriteFile(path, []byte("pixels"), 0o600))

	file, err := OpenPath(path)
	require.NoError(t, err)

	assert.Equal(t, "forest.png", file.Name())
	assert.Equal(t, path, file.Path())
	assert.Equal(t, "image/png", file.Type())
	assert.Equal(t, int64(6), file.Size())

	rc, err := file.Open()
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestOpenPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenPath(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, common.ErrUnreadable)
	assert.Equal(t, "Could not read missing.png", common.UserMessage(err))

	_, err = OpenPath(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")
}

func TestMemoryFile(t *testing.T) {
	file := NewMemoryFile("sea.gif", "image/gif", []byte("GIF89a"))

	assert.Equal(t, "sea.gif", file.Name())
	assert.Equal(t, "image/gif", file.Type())
	assert.Equal(t, int64(6), file.Size())

	for range 2 {
		rc, err := file.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "GIF89a", string(data))
	}
}

func TestNormalizeDroppedPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "/tmp/cat.png", want: "/tmp/cat.png"},
		{name: "surrounding whitespace", input: "  /tmp/cat.png \n", want: "/tmp/cat.png"},
		{name: "single quoted", input: "'/tmp/my cat.png'", want: "/tmp/my cat.png"},
		{name: "double quoted", input: `"/tmp/my cat.png"`, want: "/tmp/my cat.png"},
		{name: "file uri", input: "file:///tmp/my%20cat.png", want: "/tmp/my cat.png"},
		{name: "first of several lines", input: "/tmp/a.png\n/tmp/b.png", want: "/tmp/a.png"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDroppedPath(tt.input))
		})
	}
}

func TestNormalizeDroppedPath_ShellEscapes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on windows")
	}

	assert.Equal(t, "/tmp/my cat.png", NormalizeDroppedPath(`/tmp/my\ cat.png`))
	assert.Equal(t, "/tmp/a.png", NormalizeDroppedPath(`/tmp/a.png /tmp/b.png`))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.0 KiB", FormatSize(1024))
	assert.Equal(t, "2.5 KiB", FormatSize(2560))
	assert.Equal(t, "16.0 MiB", FormatSize(16*1024*1024))
}

func TestImageExtensions(t *testing.T) {
	exts := ImageExtensions()
	assert.Contains(t, exts, ".png")
	assert.Contains(t, exts, ".bmp")
	assert.IsIncreasing(t, exts)
	for _, ext := range exts {
		assert.Contains(t, AllowedTypes, TypeForName("x"+ext))
	}
}
