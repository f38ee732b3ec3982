package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/model"
	"github.com/Veraticus/scenic/internal/widget"
	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
)

const (
	barWidth     = 30
	spinnerTick  = 100 * time.Millisecond
	spinnerStyle = 14
)

// Surface renders widget output as lines of text. The Loading panel is a
// spinner; every other panel is printed once when it becomes visible.
type Surface struct {
	writer  io.Writer
	spinner *progressbar.ProgressBar
	stop    chan struct{}
	done    chan struct{}
	preview intake.Preview
	panel   model.Panel
	mu      sync.Mutex
	animate bool
}

var _ widget.Surface = (*Surface)(nil)

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithSpinner enables or disables the Loading spinner.
func WithSpinner(enabled bool) SurfaceOption {
	return func(s *Surface) {
		s.animate = enabled
	}
}

// NewSurface creates a surface writing to writer (stdout when nil).
func NewSurface(writer io.Writer, opts ...SurfaceOption) *Surface {
	if writer == nil {
		writer = os.Stdout
	}
	s := &Surface{
		writer:  writer,
		animate: true,
		panel:   model.PanelUpload,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShowPanel implements widget.Surface.
func (s *Surface) ShowPanel(panel model.Panel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if panel != model.PanelLoading {
		s.stopSpinnerLocked()
	}
	if panel == s.panel {
		return
	}
	s.panel = panel

	switch panel {
	case model.PanelPreview:
		s.printLocked(s.describePreviewLocked())
	case model.PanelLoading:
		s.startSpinnerLocked()
	case model.PanelUpload, model.PanelResults:
	}
}

// SetPreview implements widget.Surface.
func (s *Surface) SetPreview(preview intake.Preview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = preview
}

// RenderResults implements widget.Surface.
func (s *Surface) RenderResults(view widget.ResultView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopSpinnerLocked()

	lines := []string{
		LabelStyle.Render(view.Label),
		view.ConfidenceText,
		RenderBar(view.BarFraction(), barWidth),
	}

	if len(view.Predictions) > 0 {
		lines = append(lines, "", SubtleStyle.Render("All predictions"))
		width := 0
		for _, p := range view.Predictions {
			width = max(width, lipgloss.Width(p.Class))
		}
		for _, p := range view.Predictions {
			lines = append(lines, fmt.Sprintf("  %-*s %8s", width, p.Class, p.Confidence))
		}
	}

	if s.preview.Name != "" {
		s.printLocked(FormatSuccess("Classified " + s.preview.Name))
	}
	s.printLocked(RenderBox("Prediction", strings.Join(lines, "\n")))
}

// SetConfidenceBar implements widget.Surface. Bars are printed with the
// results and never redrawn, so there is nothing to update.
func (s *Surface) SetConfidenceBar(float64) {}

// ClearSelection implements widget.Surface. A printed path cannot be
// cleared.
func (s *Surface) ClearSelection() {}

// RenderError implements widget.Surface.
func (s *Surface) RenderError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopSpinnerLocked()
	s.printLocked(FormatError(message))
}

// Close stops the spinner if it is still running.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopSpinnerLocked()
}

func (s *Surface) describePreviewLocked() string {
	name := s.preview.Name
	if name == "" {
		name = "image"
	}
	if s.preview.Image == nil {
		return FormatWarning(fmt.Sprintf("%s selected (no preview available)", name))
	}
	return InfoStyle.Render(fmt.Sprintf("%s %s · %s %d×%d · %s",
		ImageIcon, name, strings.ToUpper(s.preview.Format), s.preview.Width, s.preview.Height,
		intake.FormatSize(s.preview.Size)))
}

func (s *Surface) startSpinnerLocked() {
	if s.spinner != nil {
		return
	}

	description := "Classifying"
	if s.preview.Name != "" {
		description = "Classifying " + s.preview.Name
	}
	if !s.animate {
		s.printLocked(FormatInfo(description + "..."))
		return
	}

	s.spinner = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(spinnerStyle),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(spinnerTick/2),
	)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func(bar *progressbar.ProgressBar, stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(s.spinner, s.stop, s.done)
}

func (s *Surface) stopSpinnerLocked() {
	if s.spinner == nil {
		return
	}

	close(s.stop)
	<-s.done
	if err := s.spinner.Finish(); err != nil {
		slog.Debug("Failed to clear spinner", "error", err)
	}

	s.spinner = nil
	s.stop = nil
	s.done = nil
}

func (s *Surface) printLocked(text string) {
	if _, err := fmt.Fprintln(s.writer, text); err != nil {
		slog.Debug("Failed to write output", "error", err)
	}
}
