// Package components holds the reusable pieces of the TUI views.
package components

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

const halfBlock = "▀"

// Thumbnail draws img in at most cols×rows terminal cells. Each cell shows
// two vertically stacked pixels: the foreground paints the upper half block,
// the background the lower one. A nil image renders as "".
func Thumbnail(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 || img.Bounds().Empty() {
		return ""
	}

	scaled := resize.Thumbnail(uint(cols), uint(rows*2), img, resize.Bilinear)
	bounds := scaled.Bounds()

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteByte('\n')
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(cellColor(scaled.At(x, y)))
			if y+1 < bounds.Max.Y {
				style = style.Background(cellColor(scaled.At(x, y+1)))
			}
			b.WriteString(style.Render(halfBlock))
		}
	}
	return b.String()
}

func cellColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
