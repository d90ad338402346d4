package modlang

import "io"

type Option func(*Parser)

// WithFile sets the file name recorded in token positions.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithEmptySections accepts an assessments section that contains no
// entries. By default a present assessments section needs at least one.
func WithEmptySections() Option {
	return func(p *Parser) {
		p.allowEmptySections = true
	}
}

// WithTrailingInput accepts tokens left over after the module.
func WithTrailingInput() Option {
	return func(p *Parser) {
		p.allowTrailingInput = true
	}
}

// WithRequireSection rejects documents that declare no section at all.
func WithRequireSection() Option {
	return func(p *Parser) {
		p.requireSection = true
	}
}

type parseFunc func(*Parser) (*Node, error)

type attrRule struct {
	keyword string
	parse   parseFunc
}

var assessmentAttrs = []attrRule{
	{KeywordTitle, (*Parser).parseTitle},
	{KeywordType, (*Parser).parseType},
	{KeywordWeighting, (*Parser).parseWeighting},
	{KeywordAfter, (*Parser).parseAfter},
}

var classAttrs = []attrRule{
	{KeywordTitle, (*Parser).parseTitle},
	{KeywordAfter, (*Parser).parseAfter},
	{KeywordGroups, (*Parser).parseGroups},
}

type terminal struct {
	kind    TokenKind
	literal string
}

func keyword(s string) terminal { return terminal{kind: TokenKeyword, literal: s} }
func symbol(s string) terminal  { return terminal{kind: TokenSymbol, literal: s} }

var (
	identifier = terminal{kind: TokenIdentifier}
	str        = terminal{kind: TokenString}
	integer    = terminal{kind: TokenInteger}
)

// Parser recognizes a module document with one token of lookahead. It
// stops at the first violation and does not recover. A Parser is not safe
// for concurrent use and parses its input once.
type Parser struct {
	file               string
	allowEmptySections bool
	allowTrailingInput bool
	requireSection     bool

	scanner *Scanner
	current *Token // nil at end of input or after a lexical error
	lexErr  error

	done bool
	tree *Node
	err  error
}

// NewParser returns a parser over lines with the first token already read.
func NewParser(lines []string, opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	p.scanner = NewScanner(lines, p.file)
	p.advance()
	return p
}

// Parse runs the module rule. The tree is nil whenever err is non-nil.
// Later calls return the first result.
func (p *Parser) Parse() (*Node, error) {
	if !p.done {
		p.tree, p.err = p.parseModule()
		p.done = true
	}
	return p.tree, p.err
}

func (p *Parser) advance() {
	tok, err := p.scanner.Next()
	switch {
	case err == io.EOF:
		p.current = nil
	case err != nil:
		p.current = nil
		p.lexErr = err
	default:
		p.current = &tok
	}
}

func (p *Parser) check(kind TokenKind, literal string) bool {
	return p.current != nil && p.current.Is(kind, literal)
}

// accept consumes the current token if it matches.
func (p *Parser) accept(kind TokenKind, literal string) (Token, bool) {
	if !p.check(kind, literal) {
		return Token{}, false
	}
	tok := *p.current
	p.advance()
	return tok, true
}

// expect consumes the current token or fails with the pending lexical
// error or a *SyntaxError.
func (p *Parser) expect(kind TokenKind, literal string) (Token, error) {
	if tok, ok := p.accept(kind, literal); ok {
		return tok, nil
	}
	if p.lexErr != nil {
		return Token{}, p.lexErr
	}
	return Token{}, p.syntaxError(kind, literal)
}

func (p *Parser) syntaxError(kind TokenKind, literal string) *SyntaxError {
	e := &SyntaxError{
		Pos:             p.position(),
		Expected:        kind,
		ExpectedLiteral: literal,
	}
	if p.current != nil {
		got := *p.current
		e.Got = &got
	}
	return e
}

func (p *Parser) position() Position {
	if p.current != nil {
		return p.current.Pos
	}
	return p.scanner.Position()
}

// expectAll expects each terminal in turn and adds it to n.
func (p *Parser) expectAll(n *Node, terms ...terminal) error {
	for _, t := range terms {
		tok, err := p.expect(t.kind, t.literal)
		if err != nil {
			return err
		}
		n.AddChild(newTerminal(tok))
	}
	return nil
}

// module := assessmentsBlock? classesBlock? lecturesBlock?
func (p *Parser) parseModule() (*Node, error) {
	module := newNode(KindModule)

	sections := []attrRule{
		{KeywordAssessments, (*Parser).parseAssessments},
		{KeywordClasses, (*Parser).parseClasses},
		{KeywordLectures, (*Parser).parseLectures},
	}
	for _, section := range sections {
		if !p.check(TokenKeyword, section.keyword) {
			continue
		}
		child, err := section.parse(p)
		if err != nil {
			return nil, err
		}
		module.AddChild(child)
	}

	if p.lexErr != nil {
		return nil, p.lexErr
	}
	if !p.allowTrailingInput && p.current != nil {
		return nil, p.syntaxError(TokenEOF, "")
	}
	if p.requireSection && len(module.Children) == 0 {
		return nil, &SyntaxError{
			Pos:      p.position(),
			Expected: TokenKeyword,
			Message:  "Expected at least one of the sections assessments, classes or lectures",
		}
	}
	return module, nil
}

// assessmentsBlock := 'assessments' '{' assessment* '}'
func (p *Parser) parseAssessments() (*Node, error) {
	return p.parseSection(KindAssessments, KeywordAssessments, KeywordAssessment, p.allowEmptySections, (*Parser).parseAssessment)
}

// classesBlock := 'classes' '{' classEntry* '}'
func (p *Parser) parseClasses() (*Node, error) {
	return p.parseSection(KindClasses, KeywordClasses, KeywordClass, true, (*Parser).parseClass)
}

// lecturesBlock := 'lectures' '{' lecture+ '}'
func (p *Parser) parseLectures() (*Node, error) {
	return p.parseSection(KindLectures, KeywordLectures, KeywordLecture, false, (*Parser).parseLecture)
}

func (p *Parser) parseSection(kind NodeKind, sectionKeyword, entryKeyword string, allowEmpty bool, entry parseFunc) (*Node, error) {
	n := newNode(kind)
	if err := p.expectAll(n, keyword(sectionKeyword), symbol("{")); err != nil {
		return nil, err
	}

	if !allowEmpty {
		child, err := entry(p)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	for p.check(TokenKeyword, entryKeyword) {
		child, err := entry(p)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}

	if err := p.expectAll(n, symbol("}")); err != nil {
		return nil, err
	}
	return n, nil
}

// assessment := 'assessment' IDENTIFIER '{' assessmentAttr* '}'
func (p *Parser) parseAssessment() (*Node, error) {
	return p.parseEntry(KindAssessment, KeywordAssessment, assessmentAttrs)
}

// classEntry := 'class' IDENTIFIER '{' classAttr* '}'
func (p *Parser) parseClass() (*Node, error) {
	return p.parseEntry(KindClass, KeywordClass, classAttrs)
}

func (p *Parser) parseEntry(kind NodeKind, entryKeyword string, attrs []attrRule) (*Node, error) {
	n := newNode(kind)
	if err := p.expectAll(n, keyword(entryKeyword), identifier, symbol("{")); err != nil {
		return nil, err
	}

	for {
		rule := p.lookupAttr(attrs)
		if rule == nil {
			break
		}
		child, err := rule(p)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}

	if err := p.expectAll(n, symbol("}")); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) lookupAttr(attrs []attrRule) parseFunc {
	for _, attr := range attrs {
		if p.check(TokenKeyword, attr.keyword) {
			return attr.parse
		}
	}
	return nil
}

// lecture := 'lecture' IDENTIFIER '{' titleAttr '}'
func (p *Parser) parseLecture() (*Node, error) {
	n := newNode(KindLecture)
	if err := p.expectAll(n, keyword(KeywordLecture), identifier, symbol("{")); err != nil {
		return nil, err
	}
	title, err := p.parseTitle()
	if err != nil {
		return nil, err
	}
	n.AddChild(title)
	if err := p.expectAll(n, symbol("}")); err != nil {
		return nil, err
	}
	return n, nil
}

// titleAttr := 'title' '=' STRING ';'
func (p *Parser) parseTitle() (*Node, error) {
	n := newNode(KindTitle)
	if err := p.expectAll(n, keyword(KeywordTitle), symbol("="), str, symbol(";")); err != nil {
		return nil, err
	}
	return n, nil
}

// typeAttr := 'type' '=' IDENTIFIER ';'
func (p *Parser) parseType() (*Node, error) {
	n := newNode(KindType)
	if err := p.expectAll(n, keyword(KeywordType), symbol("="), identifier, symbol(";")); err != nil {
		return nil, err
	}
	return n, nil
}

// weightingAttr := 'weighting' '=' percent ';'
func (p *Parser) parseWeighting() (*Node, error) {
	n := newNode(KindWeighting)
	if err := p.expectAll(n, keyword(KeywordWeighting), symbol("=")); err != nil {
		return nil, err
	}
	percent, err := p.parsePercent()
	if err != nil {
		return nil, err
	}
	n.AddChild(percent)
	if err := p.expectAll(n, symbol(";")); err != nil {
		return nil, err
	}
	return n, nil
}

// percent := INTEGER '%'
func (p *Parser) parsePercent() (*Node, error) {
	n := newNode(KindPercent)
	if err := p.expectAll(n, integer, symbol("%")); err != nil {
		return nil, err
	}
	return n, nil
}

// afterAttr := 'after' '=' '[' IDENTIFIER (',' IDENTIFIER)* ']' ';'
func (p *Parser) parseAfter() (*Node, error) {
	n := newNode(KindAfter)
	if err := p.expectAll(n, keyword(KeywordAfter), symbol("="), symbol("["), identifier); err != nil {
		return nil, err
	}
	for {
		comma, ok := p.accept(TokenSymbol, ",")
		if !ok {
			break
		}
		n.AddChild(newTerminal(comma))
		if err := p.expectAll(n, identifier); err != nil {
			return nil, err
		}
	}
	if err := p.expectAll(n, symbol("]"), symbol(";")); err != nil {
		return nil, err
	}
	return n, nil
}

// groupsAttr := 'groups' '=' INTEGER ';'
func (p *Parser) parseGroups() (*Node, error) {
	n := newNode(KindGroups)
	if err := p.expectAll(n, keyword(KeywordGroups), symbol("="), integer, symbol(";")); err != nil {
		return nil, err
	}
	return n, nil
}
