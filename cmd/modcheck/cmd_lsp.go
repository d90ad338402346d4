package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/modcheck/lsp"
	"github.com/dhamidi/modcheck/workspace"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version,
				workspace.WithExtension(cfg.Check.Extension),
				workspace.WithParserOptions(cfg.ParserOptions()...),
			)
			return server.RunStdio()
		},
	}
}
