package widget

import (
	"context"
	"sync"

	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/model"
)

// recordingSurface tracks what a real surface would display.
type recordingSurface struct {
	results  *ResultView
	preview  intake.Preview
	alerts   []string
	panels   []model.Panel
	bar      float64
	cleared  int
	mu       sync.Mutex
	panel    model.Panel
	hasPanel bool
}

var _ Surface = (*recordingSurface)(nil)

func (s *recordingSurface) ShowPanel(panel model.Panel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = panel
	s.hasPanel = true
	s.panels = append(s.panels, panel)
}

func (s *recordingSurface) SetPreview(preview intake.Preview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = preview
}

func (s *recordingSurface) RenderResults(view ResultView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = &view
	s.bar = view.Confidence
}

func (s *recordingSurface) SetConfidenceBar(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bar = percent
}

func (s *recordingSurface) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
}

func (s *recordingSurface) RenderError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, message)
}

func (s *recordingSurface) visible() model.Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// stubPredictor returns a canned answer and counts calls.
type stubPredictor struct {
	err     error
	block   chan struct{}
	started chan struct{}
	result  model.PredictionResult
	calls   int
	mu      sync.Mutex
}

func (p *stubPredictor) Predict(ctx context.Context, _ model.File) (model.PredictionResult, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.started != nil {
		p.started <- struct{}{}
	}
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return model.PredictionResult{}, ctx.Err()
		}
	}
	return p.result, p.err
}

func (p *stubPredictor) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
