package tui

import (
	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/model"
	"github.com/Veraticus/scenic/internal/widget"
)

// Surface messages, forwarded from the controller.
type showPanelMsg struct {
	panel model.Panel
}

type previewMsg struct {
	preview intake.Preview
}

type resultsMsg struct {
	view widget.ResultView
}

type confidenceBarMsg struct {
	percent float64
}

type clearSelectionMsg struct{}

type alertMsg struct {
	message string
}

// barDelayMsg starts the confidence bar animation. Stale sequence numbers
// are ignored.
type barDelayMsg struct {
	seq      int
	fraction float64
}

// Controller call completion.
type operation int

const (
	opSelect operation = iota
	opClassify
)

func (o operation) String() string {
	if o == opClassify {
		return "classify"
	}
	return "select"
}

type operationDoneMsg struct {
	err   error
	alert string
	op    operation
}
