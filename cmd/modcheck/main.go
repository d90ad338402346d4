package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/modcheck/config"
)

const version = "0.1.0"

// errInvalid is returned by commands that found an invalid document. It
// only sets the exit status, the report has already been printed.
var errInvalid = errors.New("invalid input")

var (
	configPath string
	verbosity  int
	cfg        = config.Default()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "modcheck",
		Short:         "Syntax checker for ModuleLang module documents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: .modcheck.toml or .modcheck.yaml in the working directory)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newSelftestCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func setup() error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		dir, werr := os.Getwd()
		if werr != nil {
			return fmt.Errorf("working directory: %w", werr)
		}
		cfg, _, err = config.Discover(dir)
	}
	if err != nil {
		return err
	}

	level := cfg.Log.Verbosity
	if verbosity > level {
		level = verbosity
	}
	commonlog.Configure(level, cfg.LogPath())
	return nil
}
