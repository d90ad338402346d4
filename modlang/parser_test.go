package modlang

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGoldenTokenCount(t *testing.T) {
	tokens, err := NewScanner(SplitLines(validFullExample), "").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	// assessments 28, classes 35, lectures 11
	if len(tokens) != 74 {
		t.Fatalf("got %d tokens, want 74", len(tokens))
	}

	res := Check(validFullExample)
	if !res.Valid {
		t.Fatalf("Valid = false: %v", res.Diagnostic)
	}
	terminals := res.Tree.Terminals()
	if len(terminals) != len(tokens) {
		t.Fatalf("tree has %d terminals, scanner produced %d tokens", len(terminals), len(tokens))
	}
	for i := range tokens {
		if terminals[i] != tokens[i] {
			t.Errorf("terminal %d = %v, want %v", i, terminals[i], tokens[i])
		}
	}
}

func TestParseTreeShape(t *testing.T) {
	res := Check(validFullExample)
	if !res.Valid {
		t.Fatalf("Valid = false: %v", res.Diagnostic)
	}
	tree := res.Tree

	if tree.Kind != KindModule {
		t.Fatalf("root Kind = %v, want %v", tree.Kind, KindModule)
	}
	var sections []string
	for _, child := range tree.Children {
		sections = append(sections, child.Kind.String())
	}
	if got := strings.Join(sections, ","); got != "Assessments,Classes,Lectures" {
		t.Errorf("sections = %s, want Assessments,Classes,Lectures", got)
	}

	classes := tree.FirstChildOfKind(KindClasses).ChildrenOfKind(KindClass)
	if len(classes) != 2 {
		t.Fatalf("got %d classes, want 2", len(classes))
	}
	if classes[0].Name() != "c1" || classes[1].Name() != "c2" {
		t.Errorf("class names = %q, %q; want c1, c2", classes[0].Name(), classes[1].Name())
	}

	after := classes[1].FirstChildOfKind(KindAfter)
	if after == nil {
		t.Fatal("c2 has no after attribute")
	}
	var deps []string
	for _, tok := range after.Terminals() {
		if tok.Kind == TokenIdentifier {
			deps = append(deps, tok.Literal)
		}
	}
	if got := strings.Join(deps, ","); got != "A1,c1" {
		t.Errorf("after = %s, want A1,c1", got)
	}

	assessment := tree.FirstChildOfKind(KindAssessments).FirstChildOfKind(KindAssessment)
	percent := assessment.FirstChildOfKind(KindWeighting).FirstChildOfKind(KindPercent)
	if percent == nil || percent.Children[0].TokenLiteral() != "10" {
		t.Errorf("weighting percent = %v, want 10", percent)
	}

	if tree.Span.Start.Line != 1 || tree.Span.End.Line != 27 {
		t.Errorf("module span lines = %d-%d, want 1-27", tree.Span.Start.Line, tree.Span.End.Line)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	tree, err := NewParser(nil).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.Kind != KindModule || len(tree.Children) != 0 {
		t.Errorf("tree = %v, want empty Module", tree)
	}
}

func TestParseAttributesRepeatInAnyOrder(t *testing.T) {
	input := `assessments {
  assessment A {
    after = [x];
    weighting = 50%;
    title = "one";
    title = "two";
    type = exam;
  }
  assessment B { }
}`
	res := Check(input)
	if !res.Valid {
		t.Fatalf("Valid = false: %v", res.Diagnostic)
	}
	entries := res.Tree.FirstChildOfKind(KindAssessments).ChildrenOfKind(KindAssessment)
	if len(entries) != 2 {
		t.Fatalf("got %d assessments, want 2", len(entries))
	}
	if n := len(entries[0].ChildrenOfKind(KindTitle)); n != 2 {
		t.Errorf("got %d titles, want 2", n)
	}
}

func TestParseReturnsFirstResult(t *testing.T) {
	p := NewParser([]string{"lectures {"})
	_, first := p.Parse()
	_, second := p.Parse()
	if first == nil || first != second {
		t.Errorf("Parse errors = %v, %v; want the same non-nil error", first, second)
	}
}

func TestAcceptLeavesCursorOnMismatch(t *testing.T) {
	p := NewParser([]string{"classes {"})
	if _, ok := p.accept(TokenKeyword, KeywordLectures); ok {
		t.Fatal("accept matched lectures")
	}
	if _, ok := p.accept(TokenIdentifier, ""); ok {
		t.Fatal("accept matched an identifier")
	}
	tok, ok := p.accept(TokenKeyword, KeywordClasses)
	if !ok || tok.Literal != "classes" {
		t.Fatalf("accept(classes) = %v, %v", tok, ok)
	}
	if _, err := p.expect(TokenSymbol, "{"); err != nil {
		t.Fatalf("expect({): %v", err)
	}
	if _, err := p.expect(TokenSymbol, "}"); err == nil {
		t.Fatal("expect(}) at end of input succeeded")
	}
}

func TestNodeJSON(t *testing.T) {
	res := Check(validLectures)
	data, err := json.Marshal(res.Tree)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind string `json:"kind"`
		} `json:"children"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Kind != "Module" {
		t.Errorf("kind = %q, want Module", decoded.Kind)
	}
	if len(decoded.Children) != 1 || decoded.Children[0].Kind != "Lectures" {
		t.Errorf("children = %+v, want one Lectures", decoded.Children)
	}
	if !strings.Contains(string(data), `"literal":"Lecture 1"`) {
		t.Errorf("JSON does not contain the title literal: %s", data)
	}
}

func TestNodeString(t *testing.T) {
	res := Check(`lectures { lecture L1 { title = "x"; } }`)
	want := `Module
  Lectures
    Terminal KEYWORD lectures
    Terminal SYMBOL {
    Lecture
      Terminal KEYWORD lecture
      Terminal IDENTIFIER L1
      Terminal SYMBOL {
      Title
        Terminal KEYWORD title
        Terminal SYMBOL =
        Terminal STRING x
        Terminal SYMBOL ;
      Terminal SYMBOL }
    Terminal SYMBOL }
`
	if got := res.Tree.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
