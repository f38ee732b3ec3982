package model

import "io"

// File is an image the user picked or dropped. Type is the MIME type the
// source declared for it, which is what intake validation checks; the
// content itself is never sniffed.
type File interface {
	Name() string
	Type() string
	Size() int64
	Open() (io.ReadCloser, error)
}
