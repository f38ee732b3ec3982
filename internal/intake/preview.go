package intake

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	"github.com/Veraticus/scenic/internal/model"
	_ "golang.org/x/image/bmp" // register BMP decoder
)

// Preview is the displayable form of a selected file.
type Preview struct {
	// Image is nil when the bytes are not a decodable image.
	Image   image.Image
	Name    string
	DataURL string
	Format  string
	Size    int64
	Width   int
	Height  int
}

// IsZero reports whether the preview is empty.
func (p Preview) IsZero() bool {
	return p.DataURL == "" && p.Image == nil && p.Name == ""
}

// Decode reads the file and builds its preview. The data URL always uses the
// declared type; undecodable bytes still produce a data URL with a nil Image.
func Decode(ctx context.Context, file model.File) (Preview, error) {
	if err := ctx.Err(); err != nil {
		return Preview{}, err
	}

	rc, err := file.Open()
	if err != nil {
		return Preview{}, readError(file.Name(), err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(&contextReader{ctx: ctx, r: rc})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Preview{}, ctxErr
		}
		return Preview{}, readError(file.Name(), err)
	}

	preview := Preview{
		Name:    file.Name(),
		Size:    int64(len(data)),
		DataURL: DataURL(file.Type(), data),
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		bounds := img.Bounds()
		preview.Image = img
		preview.Format = format
		preview.Width = bounds.Dx()
		preview.Height = bounds.Dy()
	}

	return preview, nil
}

// DataURL encodes data as a base64 data URL.
func DataURL(mediaType string, data []byte) string {
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
