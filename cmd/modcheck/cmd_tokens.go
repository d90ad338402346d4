package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modcheck/format"
	"github.com/dhamidi/modcheck/grammar"
	"github.com/dhamidi/modcheck/modlang"
)

func newTokensCmd() *cobra.Command {
	var useGrammar bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a document (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := readInput(filename, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if useGrammar {
				return printGrammarTokens(cmd.OutOrStdout(), data, filename)
			}
			return printTokens(cmd.OutOrStdout(), data, filename)
		},
	}

	cmd.Flags().BoolVar(&useGrammar, "ebnf", false, "tokenize with the EBNF grammar instead of the scanner")

	return cmd
}

// printTokens writes the tokens read before a lexical error, then returns
// the error.
func printTokens(w io.Writer, data []byte, filename string) error {
	tokens, err := modlang.NewScanner(modlang.SplitLines(string(data)), filename).Tokenize()
	if encErr := format.NewTokenEncoder(w).Encode(tokens); encErr != nil {
		return fmt.Errorf("encode: %w", encErr)
	}
	return err
}

func printGrammarTokens(w io.Writer, data []byte, filename string) error {
	g, err := grammar.Load()
	if err != nil {
		return err
	}
	tokens, err := grammar.NewLexer(g, data, filename).Tokenize()
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return err
		}
	}
	return nil
}
