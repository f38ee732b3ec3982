package components

import (
	"github.com/Veraticus/scenic/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfidenceBarModel is the result panel's confidence bar. It either shows
// a fixed fraction or springs towards a target.
type ConfidenceBarModel struct {
	theme    themes.Theme
	bar      progress.Model
	fraction float64
	width    int
	animate  bool
	static   bool
}

// NewConfidenceBar creates an empty bar.
func NewConfidenceBar(theme themes.Theme, width int, animate bool) ConfidenceBarModel {
	m := ConfidenceBarModel{
		theme:   theme,
		width:   width,
		animate: animate,
	}
	return m.Set(0)
}

// Set shows fraction immediately, dropping any animation in progress.
func (m ConfidenceBarModel) Set(fraction float64) ConfidenceBarModel {
	m.bar = m.newBar()
	m.fraction = fraction
	m.static = true
	return m
}

// AnimateTo moves the bar to fraction, animated when enabled.
func (m ConfidenceBarModel) AnimateTo(fraction float64) (ConfidenceBarModel, tea.Cmd) {
	m.fraction = fraction
	if !m.animate {
		m.static = true
		return m, nil
	}
	m.static = false
	return m, m.bar.SetPercent(fraction)
}

// Fraction returns the bar's target.
func (m ConfidenceBarModel) Fraction() float64 {
	return m.fraction
}

// Resize sets the bar width.
func (m *ConfidenceBarModel) Resize(width int) {
	m.width = width
	m.bar.Width = width
}

// Update handles animation frames.
func (m ConfidenceBarModel) Update(msg tea.Msg) (ConfidenceBarModel, tea.Cmd) {
	frame, ok := msg.(progress.FrameMsg)
	if !ok || m.static {
		return m, nil
	}

	updated, cmd := m.bar.Update(frame)
	if bar, ok := updated.(progress.Model); ok {
		m.bar = bar
	}
	return m, cmd
}

// View renders the bar.
func (m ConfidenceBarModel) View() string {
	if m.static {
		return m.bar.ViewAs(m.fraction)
	}
	return m.bar.View()
}

func (m ConfidenceBarModel) newBar() progress.Model {
	return progress.New(
		progress.WithGradient(string(m.theme.Primary), string(m.theme.Secondary)),
		progress.WithoutPercentage(),
		progress.WithWidth(m.width),
	)
}
