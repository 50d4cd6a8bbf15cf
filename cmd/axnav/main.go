package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/axnav/internal/config"
	"github.com/bethropolis/axnav/internal/logger"
)

var (
	flags     config.Flags
	cfg       *config.Config
	logCloser io.Closer
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "axnav",
	Short:         "Navigate accessibility trees by characters, words, lines, paragraphs and pages",
	Long:          "axnav loads an HTML page or a YAML tree fixture as an accessibility tree and moves text positions across it.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	flags.Define(rootCmd.PersistentFlags())

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(bookmarkCmd)
}

// setup loads the configuration and starts logging. A broken config file is
// reported and the defaults are used.
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(flags.ConfigFilePath, &flags, cmd.Flags())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	logCloser, err = logger.InitWithConfig(cfg.Logger)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	logger.Debugf("axnav %s: config loaded, unit=%s word_mode=%s", cmd.Name(), cfg.TUI.Unit, cfg.Navigation.WordMode)
	return nil
}
