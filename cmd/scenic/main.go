// Package main contains the scenic CLI commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Veraticus/scenic/internal/common"
	"github.com/Veraticus/scenic/internal/config"
	"github.com/Veraticus/scenic/internal/predict"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// interactiveAnnotation marks commands that own the terminal. Their logs are
// dropped unless a log file is configured.
const interactiveAnnotation = "interactive"

// errReported marks failures the user has already been shown.
var errReported = errors.New("already reported")

var (
	cfgFile   string
	version   = "dev"
	appConfig config.Config
	logFile   *os.File
	rootCmd   = &cobra.Command{
		Use:   "scenic",
		Short: "🖼️  Image classification client",
		Long: `scenic uploads images to a classification server and shows what it sees.

Use "scenic ui" for the interactive widget or "scenic classify" for a
single image from scripts.`,
		PersistentPreRunE:  initConfig,
		PersistentPostRunE: closeLog,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/scenic/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("server", config.DefaultServerURL, "classification server URL")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyLogFile, rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag(config.KeyServerURL, rootCmd.PersistentFlags().Lookup("server"))

	// Add commands
	rootCmd.AddCommand(uiCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	config.SetDefaults(viper.GetViper())

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		// Search for config in standard locations
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("SCENIC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	appConfig = cfg

	// Set up logging
	if err := setupLogging(cfg, cmd.Annotations[interactiveAnnotation] == "true"); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(cfg config.Config, interactive bool) error {
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	switch {
	case cfg.LogFile != "":
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o750); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		w = f
	case interactive:
		common.DiscardLogger()
		return nil
	}

	return common.SetupLogger(w, level, cfg.LogFormat)
}

func closeLog(_ *cobra.Command, _ []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func newPredictor(cfg config.Config) (*predict.Client, error) {
	client, err := predict.NewClient(predict.Config{
		BaseURL: cfg.ServerURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction client: %w", err)
	}
	return client, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scenic %s\n", version)
		},
	}
}
