package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modcheck/format"
	"github.com/dhamidi/modcheck/modlang"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a document and dump its syntax tree (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := readInput(filename, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			opts := append([]modlang.Option{modlang.WithFile(filename)}, cfg.ParserOptions()...)
			res := modlang.Check(string(data), opts...)
			if !res.Valid {
				fmt.Fprintln(cmd.ErrOrStderr(), res.Diagnostic)
				return errInvalid
			}
			return encodeTree(cmd.OutOrStdout(), res.Tree, outputFormat, includePositions)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include spans in tree output")

	return cmd
}

func encodeTree(w io.Writer, tree *modlang.Node, outputFormat string, positions bool) error {
	var enc format.Encoder
	switch outputFormat {
	case "json":
		enc = format.NewASTJSONEncoder(w)
	case "tree":
		enc = format.NewTreeEncoder(w, positions)
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
