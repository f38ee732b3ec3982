package tui

import (
	"github.com/Veraticus/scenic/internal/model"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Upload panel
	Submit key.Binding
	Browse key.Binding
	Back   key.Binding

	// Preview and results
	Classify key.Binding
	Reset    key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select file"),
		),
		Browse: key.NewBinding(
			key.WithKeys("tab", "ctrl+o"),
			key.WithHelp("Tab", "browse files"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),

		Classify: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("Enter/c", "classify"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "backspace"),
			key.WithHelp("r", "choose another"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// forPanel enables the bindings that apply to panel.
func (k KeyMap) forPanel(panel model.Panel, browsing bool) KeyMap {
	upload := panel == model.PanelUpload
	k.Submit.SetEnabled(upload && !browsing)
	k.Browse.SetEnabled(upload && !browsing)
	k.Back.SetEnabled(upload && browsing)

	k.Classify.SetEnabled(panel == model.PanelPreview)
	k.Reset.SetEnabled(panel == model.PanelPreview || panel == model.PanelResults)

	k.Help.SetEnabled(!upload)
	k.Quit.SetEnabled(panel == model.PanelPreview || panel == model.PanelResults)
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Browse, k.Back, k.Classify, k.Reset, k.Help, k.ForceQuit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Browse, k.Back},
		{k.Classify, k.Reset},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
