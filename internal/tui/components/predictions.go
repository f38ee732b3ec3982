package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/scenic/internal/tui/themes"
	"github.com/Veraticus/scenic/internal/widget"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	minBarWidth = 10
	maxBarWidth = 30
)

// PredictionList renders every class with a static bar and its confidence,
// in the order given.
func PredictionList(lines []widget.PredictionLine, theme themes.Theme, width int) string {
	if len(lines) == 0 {
		return ""
	}

	classWidth := 0
	valueWidth := 0
	for _, line := range lines {
		classWidth = max(classWidth, lipgloss.Width(line.Class))
		valueWidth = max(valueWidth, lipgloss.Width(line.Confidence))
	}

	barWidth := min(max(width-classWidth-valueWidth-4, minBarWidth), maxBarWidth)
	bar := progress.New(
		progress.WithSolidFill(string(theme.Secondary)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)

	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		class := theme.Normal.Render(fmt.Sprintf("%-*s", classWidth, line.Class))
		value := theme.Bold.Render(fmt.Sprintf("%*s", valueWidth, line.Confidence))
		rows = append(rows, class+"  "+bar.ViewAs(widget.ClampFraction(line.Value))+"  "+value)
	}
	return strings.Join(rows, "\n")
}
