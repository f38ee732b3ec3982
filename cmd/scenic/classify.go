package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/scenic/internal/cli"
	"github.com/Veraticus/scenic/internal/common"
	"github.com/Veraticus/scenic/internal/config"
	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/model"
	"github.com/Veraticus/scenic/internal/widget"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

// Output formats for classify.
const (
	outputText = "text"
	outputJSON = "json"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <image>",
		Short: "Classify a single image",
		Long: `Upload one image to the classification server and print the prediction.

Human-readable output goes to stdout. With --output json the server's answer
is printed to stdout as JSON and progress goes to stderr.

Examples:
  scenic classify beach.jpg
  scenic classify beach.jpg --output json
  scenic classify beach.jpg --server http://gpu-box:5000`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	// Flags
	cmd.Flags().StringP("output", "o", outputText, "output format (text, json)")
	cmd.Flags().Bool("no-spinner", false, "do not animate while waiting for the server")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	noSpinner, _ := cmd.Flags().GetBool("no-spinner")
	if output != outputText && output != outputJSON {
		return fmt.Errorf("%w: output format %q", common.ErrInvalidConfig, output)
	}

	client, err := newPredictor(appConfig)
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context())

	return classifyPath(ctx, client, classifyOptions{
		path:    config.ExpandPath(args[0]),
		output:  output,
		maxSize: appConfig.MaxSize,
		spinner: !noSpinner,
		stdout:  cmd.OutOrStdout(),
		stderr:  cmd.ErrOrStderr(),
	})
}

type classifyOptions struct {
	stdout  io.Writer
	stderr  io.Writer
	path    string
	output  string
	maxSize int64
	spinner bool
}

// capturingPredictor keeps the last server answer for --output json.
type capturingPredictor struct {
	next   widget.Predictor
	result model.PredictionResult
}

func (c *capturingPredictor) Predict(ctx context.Context, file model.File) (model.PredictionResult, error) {
	result, err := c.next.Predict(ctx, file)
	c.result = result
	return result, err
}

// classifyPath runs one pass through the widget: select, preview, classify.
func classifyPath(ctx context.Context, predictor widget.Predictor, opts classifyOptions) error {
	display := opts.stdout
	if opts.output == outputJSON {
		display = opts.stderr
	}

	surface := cli.NewSurface(display, cli.WithSpinner(opts.spinner))
	defer surface.Close()

	file, err := intake.OpenPath(opts.path)
	if err != nil {
		surface.RenderError(common.UserMessage(err))
		return fmt.Errorf("%w: %w", errReported, err)
	}

	capture := &capturingPredictor{next: predictor}
	controller := widget.New(surface, capture, widget.WithMaxSize(opts.maxSize))

	if err := controller.HandleFile(ctx, file); err != nil {
		return reported(err)
	}
	if err := controller.Classify(ctx); err != nil {
		return reported(err)
	}

	if opts.output == outputJSON {
		data, err := sonic.ConfigStd.MarshalIndent(capture.result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode prediction: %w", err)
		}
		if _, err := fmt.Fprintln(opts.stdout, string(data)); err != nil {
			return fmt.Errorf("failed to write prediction: %w", err)
		}
	}
	return nil
}

// reported marks controller errors as shown. Cancellation is not alerted by
// the controller, so it is passed through.
func reported(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		var userErr *common.UserError
		if !errors.As(err, &userErr) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", errReported, err)
}
