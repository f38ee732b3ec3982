// Package widget implements the upload widget controller: file intake,
// preview, classification and result rendering, independent of any UI
// toolkit. Rendering goes through the Surface port.
package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/scenic/internal/common"
	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/model"
)

// User-facing alert texts.
const (
	NoFileSelectedMessage = "Please select an image first"
	UnknownErrorMessage   = "Unknown error occurred"
)

// Surface is the rendering side of the widget.
type Surface interface {
	// ShowPanel makes panel the only visible panel.
	ShowPanel(panel model.Panel)
	// SetPreview sets the preview source. The zero Preview clears it.
	SetPreview(preview intake.Preview)
	// RenderResults fills the results panel and animates the confidence bar
	// to view.Confidence after BarDelay.
	RenderResults(view ResultView)
	// SetConfidenceBar sets the bar width immediately.
	SetConfidenceBar(percent float64)
	// ClearSelection clears whatever input holds the chosen file.
	ClearSelection()
	// RenderError shows a blocking alert.
	RenderError(message string)
}

// Predictor classifies an uploaded file.
type Predictor interface {
	Predict(ctx context.Context, file model.File) (model.PredictionResult, error)
}

// State is a snapshot of the controller.
type State struct {
	Selected model.File
	Result   *ResultView
	Preview  intake.Preview
	Panel    model.Panel
	Loading  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxSize overrides the upload size limit.
func WithMaxSize(maxSize int64) Option {
	return func(c *Controller) {
		c.validator = intake.NewValidator(maxSize)
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller owns the selected file and the panel state. It is safe for
// concurrent use; decoding and prediction run without holding the lock.
type Controller struct {
	surface   Surface
	predictor Predictor
	logger    *slog.Logger
	selected  model.File
	result    *ResultView
	preview   intake.Preview
	validator intake.Validator
	// generation changes on every selection change and reset, so work that
	// settles late can tell whether it is still current.
	generation uint64
	panel      model.Panel
	mu         sync.Mutex
	loading    bool
}

// New creates a controller in the Upload panel.
func New(surface Surface, predictor Predictor, opts ...Option) *Controller {
	c := &Controller{
		surface:   surface,
		predictor: predictor,
		validator: intake.NewValidator(intake.DefaultMaxSize),
		logger:    slog.Default(),
		panel:     model.PanelUpload,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		Selected: c.selected,
		Preview:  c.preview,
		Panel:    c.panel,
		Loading:  c.loading,
	}
	if c.result != nil {
		result := *c.result
		state.Result = &result
	}
	return state
}

// HandleFile validates file, makes it the selected file and shows its
// preview once decoding has finished. Rejected files leave the state
// unchanged and raise an alert.
func (c *Controller) HandleFile(ctx context.Context, file model.File) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		c.logger.Debug("Ignoring file while classification is in flight", "file", file.Name())
		return common.ErrBusy
	}

	if err := c.validator.Validate(file); err != nil {
		c.mu.Unlock()
		c.logger.Debug("Rejected file", "file", file.Name(), "type", file.Type(), "size", file.Size(), "error", err)
		c.surface.RenderError(common.UserMessage(err))
		return err
	}

	c.selected = file
	c.result = nil
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	preview, err := intake.Decode(ctx, file)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Discarding stale preview", "file", file.Name())
		return nil
	}

	if err != nil {
		c.selected = nil
		c.generation++
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		c.surface.RenderError(common.UserMessage(err))
		return err
	}

	c.preview = preview
	c.surface.SetPreview(preview)
	c.showPanel(model.PanelPreview)
	return nil
}

// Classify uploads the selected file and renders the outcome. Failures raise
// an alert and reset the widget; the error is returned as well.
func (c *Controller) Classify(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return common.ErrBusy
	}
	if c.selected == nil {
		c.mu.Unlock()
		c.surface.RenderError(NoFileSelectedMessage)
		return common.NewUserError(NoFileSelectedMessage, common.ErrNoFileSelected)
	}

	file := c.selected
	gen := c.generation
	c.loading = true
	c.showPanel(model.PanelLoading)
	c.mu.Unlock()

	result, err := c.predictor.Predict(ctx, file)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Only the request itself clears the in-flight flag, so a reset never
	// lets a second request start while this one is running.
	c.loading = false
	if gen != c.generation {
		c.logger.Debug("Discarding prediction for a reset selection", "file", file.Name())
		return nil
	}

	if err != nil {
		message := "Error connecting to server: " + transportCause(err)
		c.surface.RenderError(message)
		c.reset()
		return common.NewUserError(message, err)
	}

	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = UnknownErrorMessage
		}
		message := "Error: " + reason
		c.surface.RenderError(message)
		c.reset()
		return common.NewUserError(message, &common.ServerError{Message: result.Error})
	}

	view := NewResultView(result)
	c.result = &view
	c.surface.RenderResults(view)
	c.showPanel(model.PanelResults)

	c.logger.Debug("Classification complete",
		"file", file.Name(),
		"class", result.PredictedClass,
		"confidence", result.Confidence)
	return nil
}

// Reset returns the widget to the Upload panel with nothing selected.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Controller) reset() {
	c.selected = nil
	c.preview = intake.Preview{}
	c.result = nil
	c.generation++

	c.surface.ClearSelection()
	c.surface.SetPreview(intake.Preview{})
	c.surface.SetConfidenceBar(0)
	c.showPanel(model.PanelUpload)
}

func (c *Controller) showPanel(panel model.Panel) {
	if c.panel != panel {
		c.logger.Debug("Switching panel", "from", c.panel, "to", panel)
	}
	c.panel = panel
	c.surface.ShowPanel(panel)
}

// transportCause returns the message of the underlying transport failure.
func transportCause(err error) string {
	var transportErr *common.TransportError
	if errors.As(err, &transportErr) && transportErr.Err != nil {
		return transportErr.Err.Error()
	}
	return fmt.Sprint(err)
}
