// Package format renders syntax trees, token streams and check reports.
package format

import (
	"github.com/dhamidi/modcheck/modlang"
)

// Encoder writes a syntax tree. ASTJSONEncoder and TreeEncoder implement it.
type Encoder interface {
	Encode(node *modlang.Node) error
}
