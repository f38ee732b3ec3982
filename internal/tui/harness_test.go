package tui

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Veraticus/scenic/internal/model"
	tuitest "github.com/Veraticus/scenic/internal/tui/testing"
	"github.com/Veraticus/scenic/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// recordingSender stands in for *tea.Program.
type recordingSender struct {
	msgs []tea.Msg
	mu   sync.Mutex
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) drain() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.msgs
	r.msgs = nil
	return msgs
}

type predictorFunc func(ctx context.Context, file model.File) (model.PredictionResult, error)

func (f predictorFunc) Predict(ctx context.Context, file model.File) (model.PredictionResult, error) {
	return f(ctx, file)
}

// harness drives a Model the way the bubbletea event loop would: commands
// run synchronously and surface messages are fed back through Update.
type harness struct {
	t          *testing.T
	sender     *recordingSender
	controller *widget.Controller
	model      Model
}

func newHarness(t *testing.T, predictor widget.Predictor, opts ...Option) *harness {
	t.Helper()

	cfg := defaultConfig()
	cfg.EnableAnimations = false
	for _, opt := range opts {
		opt(&cfg)
	}

	sender := &recordingSender{}
	surface := NewSurface()
	surface.Attach(sender)
	controller := widget.New(surface, predictor, widget.WithMaxSize(cfg.MaxSize))

	h := &harness{
		t:          t,
		sender:     sender,
		controller: controller,
		model:      newModel(context.Background(), controller, cfg),
	}
	h.send(tuitest.WindowSize(100, 40))
	return h
}

// send delivers msg and returns the command Update produced.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	updated, cmd := h.model.Update(msg)
	m, ok := updated.(Model)
	require.True(h.t, ok)
	h.model = m
	return cmd
}

// run executes a controller command and replays what it produced.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	require.NotNil(h.t, cmd)

	msg := cmd()
	for _, sent := range h.sender.drain() {
		h.send(sent)
	}
	if msg != nil {
		h.send(msg)
	}
}

func (h *harness) view() string {
	return tuitest.StripANSI(h.model.View())
}

// drop pastes path into the drop zone and runs the resulting command.
func (h *harness) drop(path string) {
	h.t.Helper()
	h.run(h.send(tuitest.Paste(path)))
}

func writePNG(t *testing.T, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 40), G: 120, B: uint8(y * 40), A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func catResult() model.PredictionResult {
	return model.PredictionResult{
		Success:        true,
		PredictedClass: "cat",
		Confidence:     87.345,
		AllPredictions: []model.ClassConfidence{
			{Class: "cat", Confidence: 87.345},
			{Class: "dog", Confidence: 12.655},
		},
	}
}

func succeed(result model.PredictionResult) predictorFunc {
	return func(context.Context, model.File) (model.PredictionResult, error) {
		return result, nil
	}
}
