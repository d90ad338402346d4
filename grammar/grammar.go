// Package grammar holds the EBNF description of the module language.
//
// The grammar uses golang.org/x/exp/ebnf notation: capitalized productions
// are syntactic, lowercase productions are lexical. It describes the
// checker's default policy, so an assessments section needs at least one
// entry.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

const (
	Filename = "modlang.ebnf"
	Start    = "Module"
)

//go:embed modlang.ebnf
var source []byte

// Source returns the grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(Filename, bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production is defined and reachable from Start.
func Verify(g ebnf.Grammar) error {
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Keywords returns the sorted word terminals of the syntactic productions.
func Keywords(g ebnf.Grammar) []string {
	return terminals(g, func(s string) bool {
		r, _ := utf8.DecodeRuneInString(s)
		return unicode.IsLetter(r)
	})
}

// Symbols returns the sorted punctuation terminals of the syntactic
// productions.
func Symbols(g ebnf.Grammar) []string {
	return terminals(g, func(s string) bool {
		r, _ := utf8.DecodeRuneInString(s)
		return !unicode.IsLetter(r)
	})
}

func terminals(g ebnf.Grammar, keep func(string) bool) []string {
	seen := make(map[string]bool)
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		walk(prod.Expr, func(tok *ebnf.Token) {
			if keep(tok.String) {
				seen[tok.String] = true
			}
		})
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func walk(expr ebnf.Expression, visit func(*ebnf.Token)) {
	switch e := expr.(type) {
	case *ebnf.Token:
		visit(e)
	case ebnf.Sequence:
		for _, item := range e {
			walk(item, visit)
		}
	case ebnf.Alternative:
		for _, alt := range e {
			walk(alt, visit)
		}
	case *ebnf.Group:
		walk(e.Body, visit)
	case *ebnf.Option:
		walk(e.Body, visit)
	case *ebnf.Repetition:
		walk(e.Body, visit)
	}
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}
