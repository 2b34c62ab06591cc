package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mainbong/restly/internal/composer"
	"github.com/mainbong/restly/internal/config"
	"github.com/mainbong/restly/internal/httpclient"
	"github.com/mainbong/restly/internal/logger"
	"github.com/mainbong/restly/internal/terminal"
)

const version = "v0.1.0"

var (
	cfg        *config.Config
	devMode    bool
	tuiEnabled bool
)

// errRequestFailed is returned after the failure was already reported through the alert sink.
var errRequestFailed = errors.New("request failed")

var rootCmd = &cobra.Command{
	Use:           "restly",
	Short:         "Compose and send HTTP requests",
	Long:          "restly is a terminal REST client for composing requests and inspecting responses.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("restly " + version)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("%s = %s (%s)\n", args[0], args[1], cfg.Path())
		return nil
	},
}

func init() {
	// set here to avoid an initialization cycle through setup
	rootCmd.PersistentPreRunE = setup

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(sendCmd)

	configCmd.AddCommand(configSetCmd)

	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "write log files to the current directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRequestFailed) {
			color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		}
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

// setup loads the configuration and starts the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logDir := cfg.LogDir
	if devMode {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		logDir = cwd
	}

	tuiEnabled = cmd == rootCmd && terminal.HasTTY()
	if !terminal.HasTTY() {
		color.NoColor = true
	}

	// the screen owns the terminal, so the TUI logs to file only
	var console io.Writer
	if devMode && !tuiEnabled {
		console = os.Stderr
	}
	if err := logger.Init(logDir, logger.ParseLevel(cfg.LogLevel), console); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if devMode {
		logger.Info("dev mode: logging to %s", logDir)
	}

	runPreflightChecks()
	logger.Debug("config loaded from %s", cfg.Path())
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !tuiEnabled {
		return cmd.Help()
	}
	return runTUI()
}

func newHTTPClient() httpclient.HTTPClient {
	userAgent := cfg.UserAgent
	if strings.TrimSpace(userAgent) == "" {
		userAgent = config.DefaultUserAgent
	}
	return httpclient.NewRestyClient(cfg.Timeout(), userAgent)
}

func runTUI() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan tuiEvent, 16)
	c := composer.NewComposerWithClient(newHTTPClient(), tuiAlerts{events: events})
	model := newTUIModel(c, events, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		err := config.Watch(ctx, cfg.Path(), func() {
			reloaded, err := config.Load()
			program.Send(configReloadedMsg{cfg: reloaded, err: err})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()

	logger.Info("restly %s started", version)
	_, err := program.Run()
	return err
}

func runPreflightChecks() {
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		tuiEnabled = false
		color.NoColor = true
		logger.Warn("limited terminal: TERM=%q (screen and colors disabled)", term)
	}

	if os.Getenv("LC_ALL") == "" && os.Getenv("LANG") == "" {
		logger.Warn("locale is not set; a UTF-8 locale is recommended (e.g. LANG=C.UTF-8)")
	}

	checkWritableDir(cfg.LogDir, "log_dir")
}

func checkWritableDir(path, label string) {
	if strings.TrimSpace(path) == "" {
		logger.Warn("%s is empty", label)
		return
	}
	testFile := filepath.Join(path, fmt.Sprintf(".writecheck-%d", time.Now().UnixNano()))
	if err := os.WriteFile(testFile, []byte("ok"), 0644); err != nil {
		logger.Warn("%s is not writable: %s (%v)", label, path, err)
		return
	}
	_ = os.Remove(testFile)
}
