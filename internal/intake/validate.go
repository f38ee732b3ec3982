// Package intake validates and loads image files chosen by the user.
package intake

import (
	"slices"

	"github.com/Veraticus/scenic/internal/common"
	"github.com/Veraticus/scenic/internal/model"
)

// DefaultMaxSize is the largest file the server accepts (16 MiB).
const DefaultMaxSize int64 = 16 * 1024 * 1024

// User-facing messages for rejected files.
const (
	InvalidTypeMessage = "Please upload a valid image file (JPG, PNG, GIF, or BMP)"
	TooLargeMessage    = "File size should not exceed 16MB"
)

// AllowedTypes are the declared MIME types accepted for classification.
var AllowedTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/bmp",
}

// Validator checks a file before it becomes the selected file.
type Validator struct {
	MaxSize int64
}

// NewValidator returns a validator with the given size limit. A non-positive
// limit means DefaultMaxSize.
func NewValidator(maxSize int64) Validator {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return Validator{MaxSize: maxSize}
}

// Validate checks the declared type first, then the size.
func (v Validator) Validate(file model.File) error {
	if !slices.Contains(AllowedTypes, file.Type()) {
		return common.NewUserError(InvalidTypeMessage, common.ErrInvalidType)
	}

	limit := v.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	if file.Size() > limit {
		return common.NewUserError(TooLargeMessage, common.ErrTooLarge)
	}

	return nil
}
