package grammar

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Token kinds produced by Lexer besides the lexical production names.
const (
	KindKeyword = "keyword"
	KindSymbol  = "symbol"
	KindError   = "ERROR"
)

// TokenProductions are the lexical productions Lexer matches as tokens.
var TokenProductions = []string{"identifier", "integer", "string"}

type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input by matching the grammar directly: the lexical
// productions in TokenProductions and every terminal of the syntactic
// productions. The longest match wins and terminals win ties.
type Lexer struct {
	grammar  ebnf.Grammar
	literals []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int // match length, noMatch when the production fails
	visiting map[memoKey]bool
}

const noMatch = -1

func NewLexer(g ebnf.Grammar, input []byte, filename string) *Lexer {
	literals := append(Keywords(g), Symbols(g)...)
	sort.Slice(literals, func(i, j int) bool {
		return len(literals[i]) > len(literals[j])
	})
	return &Lexer{
		grammar:  g,
		literals: literals,
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		visiting: make(map[memoKey]bool),
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	ch := l.input[l.pos]
	l.pos++
	switch {
	case ch == '\n':
		l.line++
		l.column = 1
	case ch == '\r':
		if l.pos < len(l.input) && l.input[l.pos] == '\n' {
			l.pos++
		}
		l.line++
		l.column = 1
	default:
		l.column++
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			l.advance()
		default:
			return
		}
	}
}

// NextToken returns the next token, or io.EOF at the end of input. Text no
// production matches comes back as a single character KindError token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return Token{Kind: "EOF", Position: l.Position()}, io.EOF
	}

	start := l.Position()
	l.memo = make(map[memoKey]int)

	bestKind, bestLen := "", 0
	for _, name := range TokenProductions {
		prod := l.grammar[name]
		if prod == nil || prod.Expr == nil {
			continue
		}
		if n := l.matchName(name, l.pos); n > bestLen {
			bestKind, bestLen = name, n
		}
	}
	for _, lit := range l.literals {
		if len(lit) < bestLen {
			break
		}
		if l.matchToken(lit, l.pos) == len(lit) {
			bestKind, bestLen = literalKind(lit), len(lit)
			break
		}
	}

	if bestLen == 0 {
		_, size := utf8.DecodeRune(l.input[l.pos:])
		literal := string(l.input[l.pos : l.pos+size])
		for i := 0; i < size; i++ {
			l.advance()
		}
		return Token{Kind: KindError, Literal: literal, Position: start}, nil
	}

	literal := string(l.input[l.pos : l.pos+bestLen])
	for i := 0; i < bestLen; i++ {
		l.advance()
	}
	return Token{Kind: bestKind, Literal: literal, Position: start}, nil
}

// Tokenize reads all tokens up to the end of input.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

func literalKind(lit string) string {
	r, _ := utf8.DecodeRuneInString(lit)
	if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return KindKeyword
	}
	return KindSymbol
}

// match returns the length matched by expr at offset, or noMatch.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return l.matchToken(e.String, offset)

	case *ebnf.Range:
		return l.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n == noMatch {
				return noMatch
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			if n := l.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := l.match(e.Body, offset); n != noMatch {
			return n
		}
		return 0

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return noMatch
}

func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		return n
	}
	// left recursion
	if l.visiting[key] {
		return noMatch
	}

	prod := l.grammar[name]
	if prod == nil || prod.Expr == nil {
		l.memo[key] = noMatch
		return noMatch
	}

	l.visiting[key] = true
	n := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = n
	return n
}

func (l *Lexer) matchToken(s string, offset int) int {
	if offset+len(s) > len(l.input) {
		return noMatch
	}
	if string(l.input[offset:offset+len(s)]) == s {
		return len(s)
	}
	return noMatch
}

func (l *Lexer) matchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return noMatch
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRune(l.input[offset:])
	if r >= lo && r <= hi {
		return size
	}
	return noMatch
}
