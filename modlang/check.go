package modlang

// Result is the outcome of checking one document.
type Result struct {
	Valid      bool
	Diagnostic *Diagnostic
	Tree       *Node
	Err        error
}

// Check splits text into lines and checks it.
func Check(text string, opts ...Option) Result {
	return CheckLines(SplitLines(text), opts...)
}

// CheckLines reports whether lines form a valid module document.
func CheckLines(lines []string, opts ...Option) Result {
	tree, err := NewParser(lines, opts...).Parse()
	if err != nil {
		return Result{
			Diagnostic: DiagnosticFromError(err),
			Err:        err,
		}
	}
	return Result{Valid: true, Tree: tree}
}
