package main

import (
	"github.com/Veraticus/scenic/internal/config"
	"github.com/Veraticus/scenic/internal/tui"
	"github.com/Veraticus/scenic/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui [image]",
		Short: "Open the interactive classifier",
		Long: `Open the upload widget in the terminal.

Drop an image onto the window (or paste its path), press Tab to browse for
one, then press Enter to classify it.

Examples:
  scenic ui                   # Start with an empty drop zone
  scenic ui ~/Pictures/a.jpg  # Start with a.jpg selected`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{interactiveAnnotation: "true"},
		RunE:        runUI,
	}

	// Flags
	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().String("dir", "", "directory the file browser opens in")
	cmd.Flags().Bool("animations", true, "animate the confidence bar")

	_ = viper.BindPFlag(config.KeyTheme, cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag(config.KeyAnimations, cmd.Flags().Lookup("animations"))

	return cmd
}

func runUI(cmd *cobra.Command, args []string) error {
	client, err := newPredictor(appConfig)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("dir")
	opts := []tui.Option{
		tui.WithTheme(themes.GetTheme(appConfig.Theme)),
		tui.WithAnimations(appConfig.Animations),
		tui.WithHelp(appConfig.ShowHelp),
		tui.WithEndpoint(client.Endpoint()),
		tui.WithMaxSize(appConfig.MaxSize),
		tui.WithStartDir(config.ExpandPath(dir)),
	}
	if len(args) == 1 {
		opts = append(opts, tui.WithInitialPath(config.ExpandPath(args[0])))
	}

	return tui.Run(cmd.Context(), client, opts...)
}
