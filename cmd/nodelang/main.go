package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexcodex/nodelang/cmd/internal/langcfg"
	"github.com/lexcodex/nodelang/cmd/internal/logging"
	"github.com/lexcodex/nodelang/internal/render"
)

var version = "dev"

var (
	flagConfig   string
	flagNoColor  bool
	flagLogLevel string

	globalCfg *langcfg.Config
	logger    *zap.Logger
)

// errCheckFailed reports a parse failure that has already been rendered.
var errCheckFailed = errors.New("check failed")

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nodelang",
		Short:         "Check, inspect and serve causal graph notation files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := langcfg.Load(configPath())
			if err != nil {
				return err
			}
			if flagLogLevel != "" {
				cfg.LogLevel = flagLogLevel
			}
			if flagNoColor || os.Getenv("NO_COLOR") != "" {
				cfg.Color = false
			}
			l, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			globalCfg = cfg
			logger = l
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default ./"+langcfg.FileName+")")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable coloured output")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	root.AddCommand(newCheckCmd(), newShowCmd(), newBrowseCmd(), newLSPCmd(), newConfigCmd())
	return root
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return langcfg.DefaultPath(wd)
}

func newRenderer() *render.Renderer {
	return render.New(render.Options{Color: globalCfg.Color})
}
