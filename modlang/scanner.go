package modlang

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner turns document lines into tokens on demand. Tokens never span
// lines, whitespace (including line breaks) only separates them.
type Scanner struct {
	lines []string
	file  string
	line  int // index into lines
	col   int // byte offset into lines[line]
	last  *Token
	err   error
}

// NewScanner returns a scanner over lines, stamping file on positions.
func NewScanner(lines []string, file string) *Scanner {
	return &Scanner{
		lines: lines,
		file:  file,
	}
}

// SplitLines splits text on "\r\n", "\n" and "\r".
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Position returns the location of the cursor. At end of input it points
// just past the last character of the last line.
func (s *Scanner) Position() Position {
	if s.line >= len(s.lines) {
		if len(s.lines) == 0 {
			return Position{File: s.file, Line: 1, Column: 1}
		}
		last := len(s.lines) - 1
		return Position{File: s.file, Line: last + 1, Column: len(s.lines[last]) + 1}
	}
	return Position{File: s.file, Line: s.line + 1, Column: s.col + 1}
}

// Last returns the most recently produced token.
func (s *Scanner) Last() (Token, bool) {
	if s.last == nil {
		return Token{}, false
	}
	return *s.last, true
}

// Next returns the next token. It returns io.EOF once the input is
// exhausted and a *LexError for text that forms no token; both are
// returned again on every later call.
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}
	tok, err := s.scan()
	if err != nil {
		s.err = err
		return Token{}, err
	}
	s.last = &tok
	return tok, nil
}

// Tokenize reads all remaining tokens.
func (s *Scanner) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

func (s *Scanner) scan() (Token, error) {
	for s.line < len(s.lines) {
		text := s.lines[s.line]
		for s.col < len(text) {
			r, size := utf8.DecodeRuneInString(text[s.col:])
			if !unicode.IsSpace(r) {
				break
			}
			s.col += size
		}
		if s.col < len(text) {
			return s.scanToken(text)
		}
		s.line++
		s.col = 0
	}
	return Token{}, io.EOF
}

func (s *Scanner) scanToken(text string) (Token, error) {
	start := s.Position()
	r, size := utf8.DecodeRuneInString(text[s.col:])

	switch {
	case isDigit(r):
		return s.scanInteger(text, start), nil
	case isLetter(r) || r == '_':
		return s.scanIdentifier(text, start), nil
	case r == '"':
		return s.scanString(text, start)
	case strings.ContainsRune(symbols, r):
		s.col += size
		return Token{Kind: TokenSymbol, Literal: string(r), Pos: start}, nil
	}

	return Token{}, &LexError{Pos: start, Char: r, Message: "unexpected character"}
}

func (s *Scanner) scanInteger(text string, start Position) Token {
	begin := s.col
	for s.col < len(text) && isDigit(rune(text[s.col])) {
		s.col++
	}
	return Token{Kind: TokenInteger, Literal: text[begin:s.col], Pos: start}
}

func (s *Scanner) scanIdentifier(text string, start Position) Token {
	begin := s.col
	for s.col < len(text) {
		r, size := utf8.DecodeRuneInString(text[s.col:])
		if !isIdentifierPart(r) {
			break
		}
		s.col += size
	}
	literal := text[begin:s.col]
	return Token{Kind: LookupKeyword(literal), Literal: literal, Pos: start}
}

func (s *Scanner) scanString(text string, start Position) (Token, error) {
	begin := s.col + 1
	end := strings.IndexByte(text[begin:], '"')
	if end < 0 {
		s.col = len(text)
		return Token{}, &LexError{Pos: start, EndOfLine: true, Message: "unterminated string literal"}
	}
	s.col = begin + end + 1
	return Token{Kind: TokenString, Literal: text[begin : begin+end], Pos: start}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '-' || r == '_'
}
