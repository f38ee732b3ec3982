package tui

import (
	"log/slog"
	"sync"

	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/model"
	"github.com/Veraticus/scenic/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Surface forwards widget output to the bubbletea event loop. Its methods
// block until the program accepts the message, so they must not be called
// from Update.
type Surface struct {
	sender Sender
	mu     sync.RWMutex
}

var _ widget.Surface = (*Surface)(nil)

// NewSurface creates a surface that drops messages until Attach is called.
func NewSurface() *Surface {
	return &Surface{}
}

// Attach connects the surface to a program.
func (s *Surface) Attach(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

func (s *Surface) send(msg tea.Msg) {
	s.mu.RLock()
	sender := s.sender
	s.mu.RUnlock()

	if sender == nil {
		slog.Debug("Dropping surface message, no program attached", "msg", msg)
		return
	}
	sender.Send(msg)
}

// ShowPanel implements widget.Surface.
func (s *Surface) ShowPanel(panel model.Panel) {
	s.send(showPanelMsg{panel: panel})
}

// SetPreview implements widget.Surface.
func (s *Surface) SetPreview(preview intake.Preview) {
	s.send(previewMsg{preview: preview})
}

// RenderResults implements widget.Surface.
func (s *Surface) RenderResults(view widget.ResultView) {
	s.send(resultsMsg{view: view})
}

// SetConfidenceBar implements widget.Surface.
func (s *Surface) SetConfidenceBar(percent float64) {
	s.send(confidenceBarMsg{percent: percent})
}

// ClearSelection implements widget.Surface.
func (s *Surface) ClearSelection() {
	s.send(clearSelectionMsg{})
}

// RenderError implements widget.Surface.
func (s *Surface) RenderError(message string) {
	s.send(alertMsg{message: message})
}
