package intake

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Veraticus/scenic/internal/common"
	"github.com/Veraticus/scenic/internal/model"
)

// extensionTypes mirrors the types browsers declare for common image
// extensions. Go's builtin table lacks some of them (.bmp).
var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".dib":  "image/bmp",
}

// ImageExtensions lists the file extensions that map to an image type, in
// sorted order.
func ImageExtensions() []string {
	exts := make([]string, 0, len(extensionTypes))
	for ext := range extensionTypes {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// TypeForName returns the MIME type declared for a file name, or "" when the
// extension is unknown.
func TypeForName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if t, ok := extensionTypes[ext]; ok {
		return t
	}

	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	if err != nil {
		return ""
	}
	return mediaType
}

// PathFile is a file on disk.
type PathFile struct {
	path     string
	declared string
	size     int64
}

var _ model.File = (*PathFile)(nil)

// OpenPath stats path and returns it as a File. The declared type comes from
// the extension.
func OpenPath(path string) (*PathFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, readError(filepath.Base(path), fmt.Errorf("failed to stat %s: %w", path, err))
	}
	if !info.Mode().IsRegular() {
		return nil, readError(filepath.Base(path), fmt.Errorf("%s is not a regular file", path))
	}

	return &PathFile{
		path:     path,
		declared: TypeForName(path),
		size:     info.Size(),
	}, nil
}

// Name returns the base name of the file.
func (f *PathFile) Name() string { return filepath.Base(f.path) }

// Path returns the path the file was opened from.
func (f *PathFile) Path() string { return f.path }

// Type returns the declared MIME type.
func (f *PathFile) Type() string { return f.declared }

// Size returns the size recorded when the file was opened.
func (f *PathFile) Size() int64 { return f.size }

// Open opens the file for reading.
func (f *PathFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// MemoryFile is a file held in memory.
type MemoryFile struct {
	name     string
	declared string
	data     []byte
}

var _ model.File = (*MemoryFile)(nil)

// NewMemoryFile wraps data as a File with the given name and declared type.
func NewMemoryFile(name, declaredType string, data []byte) *MemoryFile {
	return &MemoryFile{name: name, declared: declaredType, data: data}
}

// Name returns the file name.
func (f *MemoryFile) Name() string { return f.name }

// Type returns the declared MIME type.
func (f *MemoryFile) Type() string { return f.declared }

// Size returns the length of the data.
func (f *MemoryFile) Size() int64 { return int64(len(f.data)) }

// Open returns a reader over the data.
func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// FormatSize renders a byte count with a binary unit.
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// readError marks err as a failure to read the named file.
func readError(name string, err error) error {
	return common.NewUserError(
		fmt.Sprintf("Could not read %s", name),
		fmt.Errorf("%w: %w", common.ErrUnreadable, err),
	)
}
