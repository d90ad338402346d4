package modlang

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// LexError reports text the scanner cannot turn into a token. EndOfLine is
// set when the line ended before the token did; Char is the offending
// character otherwise.
type LexError struct {
	Pos       Position
	Char      rune
	EndOfLine bool
	Message   string
}

func (e *LexError) Error() string {
	if e.EndOfLine {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s: %q", e.Pos, e.Message, e.Char)
}

// SyntaxError reports the first token that does not fit the grammar.
// Got is nil when the parser ran out of input.
type SyntaxError struct {
	Pos             Position
	Expected        TokenKind
	ExpectedLiteral string
	Got             *Token
	// Message replaces the generated expected/got text when set.
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Text())
}

// Text returns the error message without the position prefix.
func (e *SyntaxError) Text() string {
	if e.Message != "" {
		return e.Message
	}
	var b strings.Builder
	if e.Expected == TokenEOF {
		b.WriteString("Expected end of file")
	} else {
		b.WriteString("Expected token of type ")
		b.WriteString(e.Expected.String())
		if e.ExpectedLiteral != "" {
			b.WriteString(" with the text ")
			b.WriteString(e.ExpectedLiteral)
		}
	}
	if e.Got == nil {
		b.WriteString(", but reached end of file")
		return b.String()
	}
	fmt.Fprintf(&b, ", but got %s with the text %s", e.Got.Kind, e.Got.Literal)
	return b.String()
}

// Diagnostic is the user-facing description of an invalid document.
type Diagnostic struct {
	Message  string
	Expected string
	Found    string
	Pos      Position
	// Length is the width in bytes of the offending text, zero at end of input.
	Length int
}

func (d *Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", d.Pos, d.Message)
	}
	return d.Message
}

const endOfInput = "end of input"

// DiagnosticFromError converts a parse failure into a Diagnostic. Errors
// that are neither *LexError nor *SyntaxError keep only their message.
func DiagnosticFromError(err error) *Diagnostic {
	if err == nil {
		return nil
	}

	var lexErr *LexError
	if errors.As(err, &lexErr) {
		if lexErr.EndOfLine {
			return &Diagnostic{
				Message:  lexErr.Message,
				Expected: "token",
				Found:    "end of line",
				Pos:      lexErr.Pos,
			}
		}
		return &Diagnostic{
			Message:  fmt.Sprintf("%s: %q", lexErr.Message, lexErr.Char),
			Expected: "token",
			Found:    fmt.Sprintf("%q", lexErr.Char),
			Pos:      lexErr.Pos,
			Length:   utf8.RuneLen(lexErr.Char),
		}
	}

	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		d := &Diagnostic{
			Message:  synErr.Text(),
			Expected: describe(synErr.Expected, synErr.ExpectedLiteral),
			Found:    endOfInput,
			Pos:      synErr.Pos,
		}
		if synErr.Got != nil {
			d.Found = describe(synErr.Got.Kind, synErr.Got.Literal)
			d.Length = tokenWidth(*synErr.Got)
		}
		return d
	}

	return &Diagnostic{Message: err.Error()}
}

func describe(kind TokenKind, literal string) string {
	if kind == TokenEOF {
		return endOfInput
	}
	if literal == "" {
		return kind.String()
	}
	return fmt.Sprintf("%s %q", kind, literal)
}

func tokenWidth(tok Token) int {
	if tok.Kind == TokenString {
		return len(tok.Literal) + 2
	}
	return len(tok.Literal)
}
