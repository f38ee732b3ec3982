package cli

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/model"
	"github.com/Veraticus/scenic/internal/widget"
	"github.com/stretchr/testify/assert"
)

func previewOf(name string, w, h int) intake.Preview {
	return intake.Preview{
		Name:    name,
		Size:    2048,
		DataURL: "data:image/png;base64,",
		Format:  "png",
		Image:   image.NewGray(image.Rect(0, 0, w, h)),
		Width:   w,
		Height:  h,
	}
}

func TestSurface_PreviewLine(t *testing.T) {
	var out bytes.Buffer
	s := NewSurface(&out, WithSpinner(false))

	s.SetPreview(previewOf("sea.png", 150, 100))
	s.ShowPanel(model.PanelPreview)

	text := out.String()
	assert.Contains(t, text, "sea.png")
	assert.Contains(t, text, "PNG 150×100")
	assert.Contains(t, text, "2.0 KiB")
}

func TestSurface_PreviewWithoutImage(t *testing.T) {
	var out bytes.Buffer
	s := NewSurface(&out, WithSpinner(false))

	s.SetPreview(intake.Preview{Name: "broken.png", DataURL: "data:image/png;base64,AA=="})
	s.ShowPanel(model.PanelPreview)

	assert.Contains(t, out.String(), "broken.png selected (no preview available)")
}

func TestSurface_RepeatedPanelPrintsOnce(t *testing.T) {
	var out bytes.Buffer
	s := NewSurface(&out, WithSpinner(false))

	s.SetPreview(previewOf("a.png", 1, 1))
	s.ShowPanel(model.PanelPreview)
	s.ShowPanel(model.PanelPreview)

	assert.Equal(t, 1, strings.Count(out.String(), "a.png"))
}

func TestSurface_RenderResults(t *testing.T) {
	var out bytes.Buffer
	s := NewSurface(&out, WithSpinner(false))

	s.RenderResults(widget.NewResultView(model.PredictionResult{
		Success:        true,
		PredictedClass: "cat",
		Confidence:     87.345,
		AllPredictions: []model.ClassConfidence{
			{Class: "cat", Confidence: 87.345},
			{Class: "dog", Confidence: 12.655},
		},
	}))

	text := out.String()
	assert.Contains(t, text, "CAT")
	assert.Contains(t, text, "Confidence: 87.35%")
	assert.Contains(t, text, "12.66%")
	assert.Less(t, strings.Index(text, "cat "), strings.Index(text, "dog "))
}

func TestSurface_RenderError(t *testing.T) {
	var out bytes.Buffer
	s := NewSurface(&out, WithSpinner(false))

	s.RenderError("Error: model unavailable")
	assert.Contains(t, out.String(), "✗ Error: model unavailable")
}

func TestSurface_StatusLines(t *testing.T) {
	var out bytes.Buffer
	s := NewSurface(&out, WithSpinner(false))

	s.SetPreview(previewOf("forest.jpg", 2, 2))
	s.ShowPanel(model.PanelLoading)
	assert.Nil(t, s.spinner)

	s.RenderResults(widget.NewResultView(model.PredictionResult{
		Success:        true,
		PredictedClass: "forest",
		Confidence:     91.2,
	}))
	s.ShowPanel(model.PanelResults)

	text := out.String()
	assert.Contains(t, text, "ℹ️ Classifying forest.jpg...")
	assert.Contains(t, text, "✓ Classified forest.jpg")
	assert.Less(t, strings.Index(text, "Classifying"), strings.Index(text, "Classified"))
	assert.Less(t, strings.Index(text, "Classified"), strings.Index(text, "FOREST"))
}

func TestSurface_SpinnerLifecycle(t *testing.T) {
	out := &syncBuffer{}
	s := NewSurface(out)

	s.SetPreview(previewOf("forest.jpg", 2, 2))
	s.ShowPanel(model.PanelLoading)
	assert.NotNil(t, s.spinner)

	s.ShowPanel(model.PanelLoading)
	s.RenderError("Error connecting to server: refused")
	assert.Nil(t, s.spinner)

	s.ShowPanel(model.PanelUpload)
	s.Close()
	assert.Contains(t, out.String(), "Error connecting to server: refused")
}

func TestRenderBar(t *testing.T) {
	assert.Empty(t, RenderBar(0.5, 0))
	assert.Equal(t, 10, strings.Count(RenderBar(1.5, 10), "█"))
	assert.Equal(t, 0, strings.Count(RenderBar(-1, 10), "█"))
	assert.Equal(t, 5, strings.Count(RenderBar(0.5, 10), "█"))
	assert.Equal(t, 5, strings.Count(RenderBar(0.5, 10), "░"))
}
