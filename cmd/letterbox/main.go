package main

import (
	"fmt"
	"os"
	"time"

	"letterbox/internal/config"
	"letterbox/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	solverURL    string
	timeout      time.Duration
	onIncomplete string

	// Loaded by the root pre-run
	cfg *config.Config

	// Logger
	logger = zap.NewNop()
)

// annotationSkipConfig marks commands that run without loading the config.
const annotationSkipConfig = "letterbox/skip-config"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "letterbox",
	Short: "Letter Boxed puzzle front end",
	Long: `letterbox collects the twelve letters of a Letter Boxed puzzle,
sends them to a solving service and shows the word chains it finds.

Run without arguments to start the interactive board.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that write the config file must work even when the
		// current one does not load.
		if cmd.Annotations[annotationSkipConfig] == "true" {
			return nil
		}

		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		// The board owns the terminal, so it only ever logs to a file.
		interactive := cmd == cmd.Root()
		if err := initLogging(cfg, interactive); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logging.Root()
		logger.Debug("configuration loaded",
			zap.String("endpoint", cfg.Endpoint()),
			zap.Duration("timeout", cfg.GetTimeout()),
			zap.String("on_incomplete", cfg.Input.OnIncomplete))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
	},
	RunE: runBoard,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&solverURL, "solver-url", "", "Base URL of the solving service")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Solve request timeout")
	rootCmd.PersistentFlags().StringVar(&onIncomplete, "on-incomplete", "", "Incomplete grid policy: ignore or prompt")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides on top of
// the environment overrides Load already applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("solver-url") {
		c.Solver.BaseURL = solverURL
	}
	if flags.Changed("timeout") {
		c.Solver.Timeout = timeout.String()
	}
	if flags.Changed("on-incomplete") {
		c.Input.OnIncomplete = onIncomplete
	}
	if verbose {
		c.Logging.Level = "debug"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func initLogging(c *config.Config, interactive bool) error {
	opts := logging.Options{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		File:       c.Logging.File,
		Categories: c.Logging.Categories,
	}
	if interactive {
		if opts.File == "stderr" || opts.File == "stdout" {
			opts.File = ""
		}
	} else if opts.File == "" {
		opts.File = "stderr"
		if !verbose && c.Logging.Level == "info" {
			opts.Level = "warn"
		}
	}
	return logging.Initialize(opts)
}
