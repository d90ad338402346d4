package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/modcheck/modlang"
)

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantStart protocol.Position
		wantEnd   protocol.Position
	}{
		{"valid", `lectures { lecture L1 { title = "x"; } }`, 0, protocol.Position{}, protocol.Position{}},
		{"symbol", "lectures }", 1, protocol.Position{Line: 0, Character: 9}, protocol.Position{Line: 0, Character: 10}},
		{"missing semicolon", "classes {\n  class c1 { title = \"ab\" } }", 1, protocol.Position{Line: 1, Character: 26}, protocol.Position{Line: 1, Character: 27}},
		{"non-ascii title", "lectures { lecture L1 { title = \"Grüße 😀\" } }", 1, protocol.Position{Line: 0, Character: 43}, protocol.Position{Line: 0, Character: 44}},
		{"non-ascii identifier", "lectures { ü }", 1, protocol.Position{Line: 0, Character: 11}, protocol.Position{Line: 0, Character: 12}},
		{"end of file", "classes {", 1, protocol.Position{Line: 0, Character: 9}, protocol.Position{Line: 0, Character: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Diagnostics(modlang.Check(tt.input), []byte(tt.input))
			if diags == nil {
				t.Fatal("Diagnostics returned nil")
			}
			if len(diags) != tt.wantCount {
				t.Fatalf("got %d diagnostics, want %d", len(diags), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			d := diags[0]
			if d.Range.Start != tt.wantStart || d.Range.End != tt.wantEnd {
				t.Errorf("range = %v-%v, want %v-%v", d.Range.Start, d.Range.End, tt.wantStart, tt.wantEnd)
			}
			if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
				t.Errorf("severity = %v, want error", d.Severity)
			}
			if d.Source == nil || *d.Source != lsName {
				t.Errorf("source = %v, want %s", d.Source, lsName)
			}
		})
	}
}

type recorder struct {
	published []protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				return
			}
			if p, ok := params.(protocol.PublishDiagnosticsParams); ok {
				r.published = append(r.published, p)
			}
		},
	}
}

func (r *recorder) last(t *testing.T) protocol.PublishDiagnosticsParams {
	t.Helper()
	if len(r.published) == 0 {
		t.Fatal("nothing published")
	}
	return r.published[len(r.published)-1]
}

func initServer(t *testing.T, root string) (*Server, *recorder) {
	t.Helper()
	ls := NewServer("test")
	rec := &recorder{}
	if _, err := ls.initialize(rec.context(), &protocol.InitializeParams{RootPath: &root}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if ls.Workspace().RootDir() != root {
		t.Fatalf("root = %q, want %q", ls.Workspace().RootDir(), root)
	}
	return ls, rec
}

func TestDiagnosticsWithoutContent(t *testing.T) {
	diags := Diagnostics(modlang.Check("lectures }"), nil)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	want := protocol.Range{Start: protocol.Position{Character: 9}, End: protocol.Position{Character: 10}}
	if diags[0].Range != want {
		t.Errorf("range = %v, want %v", diags[0].Range, want)
	}
}

func TestDocumentBeforeInitialize(t *testing.T) {
	ls := NewServer("test")
	rec := &recorder{}
	err := ls.textDocumentDidOpen(rec.context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///tmp/early.mod", Text: "lectures {"},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	if p := rec.last(t); len(p.Diagnostics) != 1 {
		t.Errorf("published %+v", p)
	}
	if ls.Workspace().GetFile("/tmp/early.mod") == nil {
		t.Error("document not recorded before initialize")
	}
}

func TestInitializedPublishesInvalidDocuments(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "ok.mod"), []byte(`lectures { lecture L1 { title = "x"; } }`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "bad.mod"), []byte("lectures {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ls, rec := initServer(t, root)
	if err := ls.initialized(rec.context(), &protocol.InitializedParams{}); err != nil {
		t.Fatalf("initialized: %v", err)
	}
	if len(rec.published) != 1 {
		t.Fatalf("published %d documents, want 1", len(rec.published))
	}
	p := rec.published[0]
	if path, _ := uriToPath(p.URI); path != filepath.Join(root, "bad.mod") {
		t.Errorf("URI = %s", p.URI)
	}
	if len(p.Diagnostics) != 1 {
		t.Errorf("got %d diagnostics, want 1", len(p.Diagnostics))
	}
}

func TestDocumentLifecycle(t *testing.T) {
	root := t.TempDir()
	ls, rec := initServer(t, root)
	uri := "file://" + filepath.ToSlash(filepath.Join(root, "doc.mod"))

	err := ls.textDocumentDidOpen(rec.context(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "modlang", Text: "assessments {"},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	if p := rec.last(t); p.URI != uri || len(p.Diagnostics) != 1 {
		t.Errorf("after open: %+v", p)
	}

	err = ls.textDocumentDidChange(rec.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: `lectures { lecture L1 { title = "x"; } }`},
		},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	if p := rec.last(t); len(p.Diagnostics) != 0 {
		t.Errorf("valid document still has diagnostics: %+v", p.Diagnostics)
	}
	path, _ := uriToPath(uri)
	if f := ls.Workspace().GetFile(path); f == nil || !f.Valid() {
		t.Errorf("workspace file = %+v", f)
	}

	text := "classes { class c1 { groups = x; } }"
	err = ls.textDocumentDidSave(rec.context(), &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	})
	if err != nil {
		t.Fatalf("didSave: %v", err)
	}
	p := rec.last(t)
	if len(p.Diagnostics) != 1 {
		t.Fatalf("after save: %+v", p)
	}
	if want := "Expected token of type INTEGER, but got IDENTIFIER with the text x"; p.Diagnostics[0].Message != want {
		t.Errorf("message = %q, want %q", p.Diagnostics[0].Message, want)
	}

	err = ls.textDocumentDidClose(rec.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatalf("didClose: %v", err)
	}
	if p := rec.last(t); p.URI != uri || p.Diagnostics == nil || len(p.Diagnostics) != 0 {
		t.Errorf("after close: %+v", p)
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///tmp/a%20b/x.mod", "/tmp/a b/x.mod"},
		{"file:///tmp/./y.mod", "/tmp/y.mod"},
		{"untitled:1", "untitled:1"},
	}
	for _, tt := range tests {
		got, err := uriToPath(tt.uri)
		if err != nil {
			t.Errorf("uriToPath(%q): %v", tt.uri, err)
			continue
		}
		if got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
