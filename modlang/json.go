package modlang

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    *jsonToken  `json:"token,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonToken struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
}

type jsonDiagnostic struct {
	Message  string        `json:"message"`
	Expected string        `json:"expected,omitempty"`
	Found    string        `json:"found,omitempty"`
	File     string        `json:"file,omitempty"`
	Position *jsonPosition `json:"position,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   jsonPosition{Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.Token = &jsonToken{Kind: n.Token.Kind.String(), Literal: n.Token.Literal}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}

func (d *Diagnostic) MarshalJSON() ([]byte, error) {
	jd := jsonDiagnostic{
		Message:  d.Message,
		Expected: d.Expected,
		Found:    d.Found,
		File:     d.Pos.File,
	}
	if d.Pos.IsValid() {
		jd.Position = &jsonPosition{Line: d.Pos.Line, Column: d.Pos.Column}
	}
	return json.Marshal(jd)
}
