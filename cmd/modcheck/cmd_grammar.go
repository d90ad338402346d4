package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modcheck/grammar"
)

func newGrammarCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of the module language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !verify {
				_, err := out.Write(grammar.Source())
				return err
			}

			g, err := grammar.Load()
			if err == nil {
				err = grammar.Verify(g)
			}
			if err != nil {
				printErrors(out, err)
				return errInvalid
			}
			fmt.Fprintf(out, "%s: %d productions, start %s: ok\n", grammar.Filename, len(g), grammar.Start)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "verify the grammar instead of printing it")

	return cmd
}

// printErrors prints one line per error when err wraps an error list.
func printErrors(w io.Writer, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
