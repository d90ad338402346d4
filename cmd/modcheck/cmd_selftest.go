package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modcheck/modlang"
)

type referenceCase struct {
	name  string
	input string
	valid bool
}

var referenceCases = []referenceCase{
	{"validLectures", `         lectures {
lecture L1 {
  title = "Lecture 1";
}}`, true},
	{"invalidAssessments", "assessments {}", false},
	{"validAssessments", `assessments {
assessment A1 {
  type = in-class-test;
  title = "Logic Gates";
  weighting = 10%;
  after = [c1];
}}`, true},
	{"validClasses", `  classes {
class c1 {
  title = "Prep for A1";
  groups = 14;
}}`, true},
	{"validFullExample", `assessments {
assessment A2 {
  type = in-class-test;
  title = "Hack Assembler";
  weighting = 10%;
  after = [A1, c2];
}
}

classes {
  class c1 {
    title = "Prep for A1";
    groups = 14;
  }

  class c2 {
    title = "Prep for A2";
    after = [A1, c1];
    groups = 14;
  }
}

lectures {
  lecture L1 {
    title = "Lecture 1";
  }
}`, true},
}

func newSelftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "selftest",
		Aliases: []string{"test"},
		Short:   "Run the built-in reference documents through the checker",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runSelftest(cmd.OutOrStdout(), cfg.ParserOptions()...) {
				return errInvalid
			}
			return nil
		},
	}
}

func validity(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

// runSelftest prints one line per reference case and reports whether all
// of them passed.
func runSelftest(w io.Writer, opts ...modlang.Option) bool {
	ok := true
	for _, tc := range referenceCases {
		res := modlang.Check(tc.input, opts...)
		if res.Valid == tc.valid {
			fmt.Fprintf(w, "Test %s passed.\tThe input is %s, as expected.\n", tc.name, validity(tc.valid))
			continue
		}
		ok = false
		fmt.Fprintf(w, "Test %s failed.\tThe input is %s but was expected to be %s\n", tc.name, validity(res.Valid), validity(tc.valid))
		if res.Diagnostic != nil {
			fmt.Fprintf(w, "\t%s\n", res.Diagnostic)
		}
	}
	return ok
}
