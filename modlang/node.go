package modlang

import "strings"

type Span struct {
	Start Position
	End   Position
}

type NodeKind int

const (
	KindTerminal NodeKind = iota

	KindModule

	// Sections
	KindAssessments
	KindClasses
	KindLectures

	// Entries
	KindAssessment
	KindClass
	KindLecture

	// Attributes
	KindTitle
	KindType
	KindWeighting
	KindPercent
	KindAfter
	KindGroups
)

var nodeKindNames = map[NodeKind]string{
	KindTerminal:    "Terminal",
	KindModule:      "Module",
	KindAssessments: "Assessments",
	KindClasses:     "Classes",
	KindLectures:    "Lectures",
	KindAssessment:  "Assessment",
	KindClass:       "Class",
	KindLecture:     "Lecture",
	KindTitle:       "Title",
	KindType:        "Type",
	KindWeighting:   "Weighting",
	KindPercent:     "Percent",
	KindAfter:       "After",
	KindGroups:      "Groups",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is a concrete syntax tree node. Terminals carry a Token, every other
// node carries the children recognized by its grammar rule.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
}

func newNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

func newTerminal(tok Token) *Node {
	end := tok.Pos
	end.Column += tokenWidth(tok)
	return &Node{
		Kind:  KindTerminal,
		Span:  Span{Start: tok.Pos, End: end},
		Token: &tok,
	}
}

// AddChild appends child and widens the span to cover it.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	if len(n.Children) == 0 {
		n.Span.Start = child.Span.Start
	}
	n.Children = append(n.Children, child)
	n.Span.End = child.Span.End
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Name returns the identifier of an entry node, or "" for other nodes.
func (n *Node) Name() string {
	switch n.Kind {
	case KindAssessment, KindClass, KindLecture:
	default:
		return ""
	}
	for _, child := range n.Children {
		if child.Token != nil && child.Token.Kind == TokenIdentifier {
			return child.Token.Literal
		}
	}
	return ""
}

// Terminals returns the tokens under n in source order.
func (n *Node) Terminals() []Token {
	var out []Token
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Token != nil {
			out = append(out, *n.Token)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		b.WriteString(" " + n.Token.Kind.String() + " " + n.Token.Literal)
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
