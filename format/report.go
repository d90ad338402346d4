package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/modcheck/modlang"
)

// Report is the outcome of checking one file.
type Report struct {
	File   string
	Result modlang.Result
}

type jsonReport struct {
	File       string              `json:"file"`
	Valid      bool                `json:"valid"`
	Diagnostic *modlang.Diagnostic `json:"diagnostic,omitempty"`
}

type ReportEncoder interface {
	Encode(reports []Report) error
}

// NewReportEncoder returns the encoder for format, "text" or "json".
func NewReportEncoder(w io.Writer, format string) (ReportEncoder, error) {
	switch format {
	case "text":
		return &TextReportEncoder{w: w}, nil
	case "json":
		return &JSONReportEncoder{w: w}, nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

type JSONReportEncoder struct {
	w io.Writer
}

func (e *JSONReportEncoder) Encode(reports []Report) error {
	out := make([]jsonReport, len(reports))
	for i, r := range reports {
		out[i] = jsonReport{
			File:       r.File,
			Valid:      r.Result.Valid,
			Diagnostic: r.Result.Diagnostic,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(data, '\n'))
	return err
}

// TextReportEncoder prints one verdict line per file, followed by the
// diagnostic of invalid files. Style, when set, decorates the verdict.
type TextReportEncoder struct {
	w     io.Writer
	Style func(valid bool, verdict string) string
}

func NewTextReportEncoder(w io.Writer, style func(valid bool, verdict string) string) *TextReportEncoder {
	return &TextReportEncoder{w: w, Style: style}
}

func (e *TextReportEncoder) Encode(reports []Report) error {
	for _, r := range reports {
		verdict := Verdict(r.Result.Valid)
		if e.Style != nil {
			verdict = e.Style(r.Result.Valid, verdict)
		}
		if len(reports) > 1 && r.File != "" {
			verdict = r.File + ": " + verdict
		}
		if _, err := fmt.Fprintln(e.w, verdict); err != nil {
			return err
		}
		if d := r.Result.Diagnostic; d != nil {
			if _, err := fmt.Fprintf(e.w, "  %s\n", d); err != nil {
				return err
			}
		}
	}
	return nil
}

func Verdict(valid bool) string {
	if valid {
		return "The input file is valid."
	}
	return "The input file is invalid."
}
