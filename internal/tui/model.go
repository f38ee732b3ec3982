// Package tui is the interactive terminal front end of the upload widget.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/scenic/internal/common"
	"github.com/Veraticus/scenic/internal/config"
	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/model"
	"github.com/Veraticus/scenic/internal/tui/components"
	"github.com/Veraticus/scenic/internal/tui/themes"
	"github.com/Veraticus/scenic/internal/widget"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the part of widget.Controller the TUI drives.
type Controller interface {
	HandleFile(ctx context.Context, file model.File) error
	Classify(ctx context.Context) error
	Reset()
}

var _ Controller = (*widget.Controller)(nil)

// Model holds the main TUI state. View state only changes on surface
// messages; key handlers call the controller from commands.
type Model struct {
	ctx        context.Context
	controller Controller
	lastError  error
	result     *widget.ResultView
	theme      themes.Theme
	config     Config
	preview    intake.Preview
	keymap     KeyMap
	thumbnail  string
	alert      string
	picker     filepicker.Model
	dropZone   textinput.Model
	spinner    spinner.Model
	bar        components.ConfidenceBarModel
	help       help.Model
	panel      model.Panel
	width      int
	height     int
	barSeq     int
	browsing   bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, controller Controller, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "drop an image or type its path"
	input.Prompt = "› "
	input.CharLimit = 4096
	input.Focus()

	picker := filepicker.New()
	picker.CurrentDirectory = cfg.StartDir
	picker.AllowedTypes = intake.ImageExtensions()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:        ctx,
		controller: controller,
		config:     cfg,
		theme:      cfg.Theme,
		keymap:     DefaultKeyMap().forPanel(model.PanelUpload, false),
		dropZone:   input,
		picker:     picker,
		spinner:    spin,
		bar:        components.NewConfidenceBar(cfg.Theme, 40, cfg.EnableAnimations),
		help:       help.New(),
		panel:      model.PanelUpload,
		width:      cfg.Width,
		height:     cfg.Height,
	}
	m.handleResize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.config.InitialPath != "" {
		cmds = append(cmds, m.selectPath(m.config.InitialPath))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case showPanelMsg:
		return m.handleShowPanel(msg.panel)

	case previewMsg:
		m.preview = msg.preview
		m.thumbnail = m.renderThumbnail()
		return m, nil

	case resultsMsg:
		view := msg.view
		m.result = &view
		m.barSeq++
		m.bar = m.bar.Set(0)
		seq, fraction := m.barSeq, view.BarFraction()
		return m, tea.Tick(widget.BarDelay, func(time.Time) tea.Msg {
			return barDelayMsg{seq: seq, fraction: fraction}
		})

	case barDelayMsg:
		if msg.seq != m.barSeq {
			return m, nil
		}
		var cmd tea.Cmd
		m.bar, cmd = m.bar.AnimateTo(msg.fraction)
		return m, cmd

	case confidenceBarMsg:
		m.barSeq++
		m.bar = m.bar.Set(widget.ClampFraction(msg.percent))
		return m, nil

	case clearSelectionMsg:
		m.dropZone.Reset()
		m.browsing = false
		m.keymap = m.keymap.forPanel(m.panel, m.browsing)
		return m, nil

	case alertMsg:
		m.alert = msg.message
		return m, nil

	case operationDoneMsg:
		m.lastError = msg.err
		if msg.err != nil {
			slog.Debug("Widget operation failed", "op", msg.op, "error", msg.err)
		}
		if msg.alert != "" {
			m.alert = msg.alert
		}
		return m, nil

	case spinner.TickMsg:
		if m.panel != model.PanelLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.bar, cmd = m.bar.Update(msg)
		return m, cmd
	}

	// Everything else belongs to the input components.
	var cmd tea.Cmd
	if m.browsing {
		m.picker, cmd = m.picker.Update(msg)
	} else {
		m.dropZone, cmd = m.dropZone.Update(msg)
	}
	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := m.renderPanel()
	if m.alert != "" {
		body = m.renderAlert()
	}

	sections := []string{m.renderHeader(), body}
	if m.config.ShowHelp {
		sections = append(sections, "", m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// handleKey routes key presses. An open alert swallows the next key; pasted
// text only counts as a drop on the Upload panel.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.alert != "" {
		m.alert = ""
		return m, nil
	}

	if msg.Paste {
		return m.handleDrop(string(msg.Runes))
	}

	switch m.panel {
	case model.PanelUpload:
		return m.handleUploadKey(msg)

	case model.PanelPreview:
		switch {
		case key.Matches(msg, m.keymap.Classify):
			return m, m.classify()
		case key.Matches(msg, m.keymap.Reset):
			return m, m.reset()
		}

	case model.PanelLoading:
		// A request in flight runs to completion; only ctrl+c leaves.
		return m, nil

	case model.PanelResults:
		if key.Matches(msg, m.keymap.Reset) || msg.Type == tea.KeyEnter {
			return m, m.reset()
		}
	}

	switch {
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.browsing {
		if key.Matches(msg, m.keymap.Back) {
			m.browsing = false
			m.keymap = m.keymap.forPanel(m.panel, m.browsing)
			return m, m.dropZone.Focus()
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			return m, tea.Batch(cmd, m.selectPath(path))
		}
		// Disabled entries still go through validation so the user sees why
		// they were rejected.
		if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
			return m, tea.Batch(cmd, m.selectPath(path))
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m, m.selectPath(intake.NormalizeDroppedPath(m.dropZone.Value()))
	case key.Matches(msg, m.keymap.Browse):
		m.browsing = true
		m.dropZone.Blur()
		m.keymap = m.keymap.forPanel(m.panel, m.browsing)
		return m, m.picker.Init()
	case msg.Type == tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.dropZone, cmd = m.dropZone.Update(msg)
	return m, cmd
}

// handleDrop treats pasted text as a dropped file.
func (m Model) handleDrop(text string) (tea.Model, tea.Cmd) {
	if m.panel != model.PanelUpload {
		return m, nil
	}

	path := intake.NormalizeDroppedPath(text)
	if path == "" {
		return m, nil
	}
	if m.browsing {
		m.browsing = false
		m.keymap = m.keymap.forPanel(m.panel, m.browsing)
	}
	m.dropZone.SetValue(path)
	return m, m.selectPath(path)
}

func (m Model) handleShowPanel(panel model.Panel) (tea.Model, tea.Cmd) {
	m.panel = panel
	if panel != model.PanelUpload {
		m.browsing = false
		m.dropZone.Blur()
	}
	m.keymap = m.keymap.forPanel(panel, m.browsing)

	switch panel {
	case model.PanelUpload:
		return m, m.dropZone.Focus()
	case model.PanelLoading:
		return m, m.spinner.Tick
	case model.PanelPreview, model.PanelResults:
	}
	return m, nil
}

// selectPath opens the file at path and hands it to the controller.
func (m Model) selectPath(path string) tea.Cmd {
	if path == "" {
		return nil
	}

	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		file, err := intake.OpenPath(config.ExpandPath(path))
		if err != nil {
			return operationDoneMsg{op: opSelect, err: err, alert: common.UserMessage(err)}
		}
		return operationDoneMsg{op: opSelect, err: controller.HandleFile(ctx, file)}
	}
}

func (m Model) classify() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return operationDoneMsg{op: opClassify, err: controller.Classify(ctx)}
	}
}

func (m Model) reset() tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		controller.Reset()
		return nil
	}
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	m.dropZone.Width = max(min(m.width-16, 60), 10)
	m.bar.Resize(max(min(m.width-8, 40), 10))
	m.help.Width = m.width
	m.thumbnail = m.renderThumbnail()
}

func (m Model) renderThumbnail() string {
	cols := max(min(m.width-8, 48), 1)
	rows := max(min(m.height-14, 16), 1)
	return components.Thumbnail(m.preview.Image, cols, rows)
}
