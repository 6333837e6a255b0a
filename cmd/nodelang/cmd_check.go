package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexcodex/nodelang/cmd/internal/watch"
	"github.com/lexcodex/nodelang/framework/nodelang"
	"github.com/lexcodex/nodelang/internal/render"
)

func newCheckCmd() *cobra.Command {
	var watchFile bool
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Parse a file and report the first failure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRenderer()
			path := args[0]
			if !watchFile {
				return checkFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), r, path)
			}

			w, err := watch.New(path, globalCfg.Debounce(), logger)
			if err != nil {
				return err
			}
			_ = checkFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), r, path)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return w.Run(ctx, func() {
				if err := checkFile(cmd.OutOrStdout(), cmd.ErrOrStderr(), r, path); err != nil {
					logger.Debug("check failed", zap.String("path", path), zap.Error(err))
				}
			})
		},
	}
	cmd.Flags().BoolVar(&watchFile, "watch", false, "Re-check whenever the file changes")
	return cmd
}

// checkFile parses path into a fresh graph and prints the summary or the
// rendered failure.
func checkFile(stdout, stderr io.Writer, r *render.Renderer, path string) error {
	g, err := loadGraph(stderr, r, path)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, r.Summary(path, g))
	return nil
}

// loadGraph reads and parses path. Parse failures are rendered to stderr and
// reported as errCheckFailed.
func loadGraph(stderr io.Writer, r *render.Renderer, path string) (*nodelang.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	g, err := nodelang.Parse(string(data), nodelang.WithContextLines(globalCfg.ContextLines))
	if err != nil {
		logger.Debug("parse failed", zap.String("path", path), zap.Error(err))
		fmt.Fprint(stderr, r.Error(err))
		return nil, errCheckFailed
	}
	logger.Debug("parsed", zap.String("path", path), zap.Int("nodes", g.Nodes().Len()))
	return g, nil
}
