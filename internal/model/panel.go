// Package model defines the core domain models used throughout the application.
package model

// Panel is one of the mutually exclusive regions of the upload widget.
// Exactly one panel is visible at a time.
type Panel int

// Panel constants, in the order a classification normally visits them.
const (
	PanelUpload Panel = iota
	PanelPreview
	PanelLoading
	PanelResults
)

// String returns the panel name used in logs and rendering.
func (p Panel) String() string {
	switch p {
	case PanelUpload:
		return "upload"
	case PanelPreview:
		return "preview"
	case PanelLoading:
		return "loading"
	case PanelResults:
		return "results"
	default:
		return "unknown"
	}
}

// Panels lists every panel.
func Panels() []Panel {
	return []Panel{PanelUpload, PanelPreview, PanelLoading, PanelResults}
}
