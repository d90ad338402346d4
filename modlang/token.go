package modlang

import "fmt"

// Position is a 1-based line and byte column in a named document.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position refers to a location in a document.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// TokenKind classifies a token.
type TokenKind int

const (
	// TokenEOF is never produced by the scanner. Diagnostics use it to
	// describe end of input as the expected or found item.
	TokenEOF TokenKind = iota
	TokenKeyword
	TokenSymbol
	TokenIdentifier
	TokenString
	TokenInteger
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenKeyword:    "KEYWORD",
	TokenSymbol:     "SYMBOL",
	TokenIdentifier: "IDENTIFIER",
	TokenString:     "STRING",
	TokenInteger:    "INTEGER",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexeme. For strings Literal holds the text between the
// quotes.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Literal)
}

// Is reports whether the token has the given kind and, when literal is
// non-empty, the given text.
func (t Token) Is(kind TokenKind, literal string) bool {
	if t.Kind != kind {
		return false
	}
	return literal == "" || t.Literal == literal
}

const (
	KeywordAssessments = "assessments"
	KeywordAssessment  = "assessment"
	KeywordClasses     = "classes"
	KeywordClass       = "class"
	KeywordLectures    = "lectures"
	KeywordLecture     = "lecture"
	KeywordType        = "type"
	KeywordTitle       = "title"
	KeywordWeighting   = "weighting"
	KeywordAfter       = "after"
	KeywordGroups      = "groups"
)

var keywords = map[string]struct{}{
	KeywordAssessments: {},
	KeywordAssessment:  {},
	KeywordClasses:     {},
	KeywordClass:       {},
	KeywordLectures:    {},
	KeywordLecture:     {},
	KeywordType:        {},
	KeywordTitle:       {},
	KeywordWeighting:   {},
	KeywordAfter:       {},
	KeywordGroups:      {},
}

// LookupKeyword classifies an identifier-shaped lexeme.
func LookupKeyword(ident string) TokenKind {
	if _, ok := keywords[ident]; ok {
		return TokenKeyword
	}
	return TokenIdentifier
}

// Keywords returns the reserved words in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	return out
}

const symbols = "{}=;[],%"
