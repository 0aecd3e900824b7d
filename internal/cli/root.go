// Package cli implements the decicalc command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tvukit/decimal"
	"github.com/tvukit/decimal/internal/config"
)

// Version is reported by the version command.
var Version = "0.1.0-dev"

// app holds the state shared by all commands.
type app struct {
	v          *viper.Viper
	configFile string
	config     *config.Config
	log        *logrus.Logger
}

// NewRootCommand builds the decicalc command tree.
func NewRootCommand() *cobra.Command {
	a := &app{
		v:   config.New(),
		log: logrus.New(),
	}

	rootCmd := &cobra.Command{
		Use:   "decicalc",
		Short: "decicalc - exact decimal calculator",
		Long: `decicalc evaluates arithmetic in reverse Polish notation over exact
decimal numbers. Values such as 0.1 are stored exactly, so 0.1 0.2 +
is exactly 0.3. Division is exact whenever the quotient terminates and
is rounded to 34 significant digits otherwise.`,
		Version: Version,

		// SilenceUsage is an option to silence usage when an error occurs.
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: a.init,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "configuration file path (default ./decicalc.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("format", config.FormatSci, "output notation: sci (12e-1) or plain (1.2)")
	flags.Int("precision", -1, "digits after the decimal point in plain output, -1 for exact")
	flags.String("prompt", "> ", "repl prompt")

	rootCmd.AddCommand(newEvalCommand(a), newReplCommand(a), newVersionCommand())
	return rootCmd
}

// Execute runs the root command and exits on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init binds flags, loads the configuration and sets up logging.
func (a *app) init(cmd *cobra.Command, args []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.config = cfg

	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if cfg.Debug {
		a.log.SetLevel(logrus.DebugLevel)
	}
	a.log.WithFields(logrus.Fields{
		"format":    cfg.Format,
		"precision": cfg.Precision,
		"config":    a.v.ConfigFileUsed(),
	}).Debug("configuration loaded")
	return nil
}

// format renders d in the configured notation.
func (a *app) format(d decimal.Number) string {
	if a.config.Format != config.FormatPlain {
		return d.String()
	}
	if a.config.Precision >= 0 {
		return fmt.Sprintf("%.*f", a.config.Precision, d)
	}
	return fmt.Sprintf("%f", d)
}
