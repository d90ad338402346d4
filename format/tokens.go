package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/modcheck/modlang"
)

// TokenEncoder writes one token per line as `line:col KIND "literal"`.
type TokenEncoder struct {
	w io.Writer
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []modlang.Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(e.w, "%d:%d %s %q\n", tok.Pos.Line, tok.Pos.Column, tok.Kind, tok.Literal); err != nil {
			return err
		}
	}
	return nil
}
