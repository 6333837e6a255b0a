package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/nodelang/internal/browse"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print the nodes, elaborations and connections of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRenderer()
			g, err := loadGraph(cmd.ErrOrStderr(), r, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), r.Outline(g))
			return nil
		},
	}
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse FILE",
		Short: "Open a file's outline in a scrollable terminal view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd.ErrOrStderr(), newRenderer(), args[0])
			if err != nil {
				return err
			}
			return browse.Run(cmd.Context(), g, browse.Options{Title: args[0], Color: globalCfg.Color})
		},
	}
}
