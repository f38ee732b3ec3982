package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanel_String(t *testing.T) {
	tests := []struct {
		want  string
		panel Panel
	}{
		{panel: PanelUpload, want: "upload"},
		{panel: PanelPreview, want: "preview"},
		{panel: PanelLoading, want: "loading"},
		{panel: PanelResults, want: "results"},
		{panel: Panel(42), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.panel.String())
		})
	}
}

func TestPanels(t *testing.T) {
	panels := Panels()
	assert.Len(t, panels, 4)
	assert.Equal(t, PanelUpload, panels[0])
	assert.Equal(t, PanelResults, panels[3])
}
