package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/model"
	"github.com/Veraticus/scenic/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

const appTitle = "🖼  Image Classifier"

// renderHeader renders the title and the endpoint in use.
func (m Model) renderHeader() string {
	title := m.theme.Title.Render(appTitle)
	if m.config.Endpoint == "" {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.theme.Subtitle.Render("Server: "+m.config.Endpoint),
		"",
	)
}

// renderPanel renders whichever panel is current.
func (m Model) renderPanel() string {
	switch m.panel {
	case model.PanelUpload:
		if m.browsing {
			return m.renderBrowser()
		}
		return m.renderUpload()
	case model.PanelPreview:
		return m.renderPreview()
	case model.PanelLoading:
		return m.renderLoading()
	case model.PanelResults:
		return m.renderResults()
	}
	return ""
}

func (m Model) renderUpload() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.Bold.Render("Drag & drop an image here"),
		m.theme.Hint.Render(fmt.Sprintf("JPG, PNG, GIF or BMP · up to %s", intake.FormatSize(m.config.MaxSize))),
		"",
		m.dropZone.View(),
	)
	return m.theme.DropZone.Render(content)
}

func (m Model) renderBrowser() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Bold.Render("Choose an image"),
		m.theme.Hint.Render(m.picker.CurrentDirectory),
		"",
		m.picker.View(),
	)
}

func (m Model) renderPreview() string {
	picture := m.thumbnail
	if picture == "" {
		picture = m.theme.Hint.Render("(no preview available)")
	}

	details := []string{m.theme.Bold.Render(m.preview.Name)}
	var facts []string
	if m.preview.Image != nil {
		facts = append(facts,
			strings.ToUpper(m.preview.Format),
			fmt.Sprintf("%d×%d", m.preview.Width, m.preview.Height))
	}
	facts = append(facts, intake.FormatSize(m.preview.Size))
	details = append(details, m.theme.Subtitle.Render(strings.Join(facts, " · ")))

	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		picture,
		"",
		lipgloss.JoinVertical(lipgloss.Left, details...),
	))
}

func (m Model) renderLoading() string {
	line := m.spinner.View() + " " + m.theme.Normal.Render("Analyzing image...")
	if m.preview.Name != "" {
		line += " " + m.theme.Hint.Render(m.preview.Name)
	}
	return m.theme.RoundedBox.Render(line)
}

func (m Model) renderResults() string {
	if m.result == nil {
		return ""
	}

	sections := []string{
		m.theme.Label.Render(m.result.Label),
		m.theme.Normal.Render(m.result.ConfidenceText),
		m.bar.View(),
	}
	if len(m.result.Predictions) > 0 {
		sections = append(sections,
			"",
			m.theme.Subtitle.Render("All predictions"),
			components.PredictionList(m.result.Predictions, m.theme, m.width-8),
		)
	}
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderAlert renders the blocking alert in place of the current panel.
func (m Model) renderAlert() string {
	return m.theme.AlertBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.StatusError.Render(m.alert),
		"",
		m.theme.Hint.Render("press any key to continue"),
	))
}
