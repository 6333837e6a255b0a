package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/lexcodex/nodelang/server"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			srv := server.NewLSPServer(server.Config{
				ServerName:   globalCfg.LSP.ServerName,
				Version:      version,
				LanguageID:   globalCfg.LSP.LanguageID,
				ContextLines: globalCfg.ContextLines,
			}, logger)
			err := srv.Serve(ctx, server.NewStdio(os.Stdin, os.Stdout))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
