package lsp

import (
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/modcheck/modlang"
)

// Diagnostics converts a check result into LSP diagnostics. content is the
// checked text; it turns byte columns into UTF-16 offsets. A valid result
// yields an empty, non-nil slice so that publishing it clears the client.
func Diagnostics(result modlang.Result, content []byte) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	d := result.Diagnostic
	if result.Valid || d == nil {
		return out
	}

	var start, end protocol.Position
	if d.Pos.IsValid() {
		var line string
		if lines := modlang.SplitLines(string(content)); d.Pos.Line <= len(lines) {
			line = lines[d.Pos.Line-1]
		}
		col := d.Pos.Column - 1
		start = protocol.Position{
			Line:      protocol.UInteger(d.Pos.Line - 1),
			Character: protocol.UInteger(utf16Len(line, 0, col)),
		}
		end = start
		end.Character += protocol.UInteger(utf16Len(line, col, col+d.Length))
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return append(out, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	})
}

// utf16Len counts the UTF-16 code units of line[from:to]. Offsets past the
// end of line count one unit per byte.
func utf16Len(line string, from, to int) int {
	n := 0
	if to > len(line) {
		n = to - max(from, len(line))
		to = len(line)
	}
	if from >= to {
		return n
	}
	for _, r := range line[from:to] {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
