package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/modcheck/modlang"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node *modlang.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node *modlang.Node) ([]byte, error) {
	return json.MarshalIndent(node, "", "  ")
}

// TreeEncoder writes a node as an indented outline.
type TreeEncoder struct {
	w         io.Writer
	positions bool
}

func NewTreeEncoder(w io.Writer, positions bool) *TreeEncoder {
	return &TreeEncoder{w: w, positions: positions}
}

func (e *TreeEncoder) Encode(node *modlang.Node) error {
	text := node.String()
	if e.positions {
		text = node.StringWithPositions()
	}
	_, err := io.WriteString(e.w, text)
	return err
}
