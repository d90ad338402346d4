// Package modlang checks documents written in the module description
// language used for .mod files.
//
// # Language
//
// A document has up to three sections, in this order:
//
//	assessments {
//	  assessment A1 {
//	    type = in-class-test;
//	    title = "Logic Gates";
//	    weighting = 10%;
//	    after = [c1];
//	  }
//	}
//
//	classes {
//	  class c1 {
//	    title = "Prep for A1";
//	    groups = 14;
//	  }
//	}
//
//	lectures {
//	  lecture L1 {
//	    title = "Lecture 1";
//	  }
//	}
//
// Every section is optional and an empty document is valid. Identifiers
// named in after lists are not resolved.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Lines     │────▶│   Scanner   │────▶│   Parser    │
//	│  (strings)  │     │  (tokens)   │     │   (Node)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// The Scanner produces tokens on demand and never backtracks. The Parser is
// a recursive descent recognizer with one token of lookahead. The first
// token that does not fit the grammar ends the parse with a *SyntaxError;
// text that forms no token ends it with a *LexError. There is no error
// recovery.
//
// # Checking
//
//	res := modlang.Check(text, modlang.WithFile("module.mod"))
//	if !res.Valid {
//	    fmt.Println(res.Diagnostic)
//	}
//
// # Policy
//
// By default a present assessments section needs at least one entry, tokens after the module are rejected and a document without
// sections is accepted. WithEmptySections, WithTrailingInput and
// WithRequireSection change these rules.
//
// # Thread Safety
//
// Parsers and Scanners are not safe for concurrent use. Independent
// documents can be checked concurrently.
package modlang
