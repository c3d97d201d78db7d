// Package clocknow provides a linter that reports direct time.Now() calls.
//
// Due dates, reminders and calendar-day filters depend on the current time,
// so code reads it through an injected clock (a func() time.Time option)
// that tests can pin. Passing time.Now as a value, for example as the
// default clock, is allowed. Calling it is not.
//
// Example violations:
//
//	created := time.Now()              // Bad: untestable
//	s := &Store{now: time.Now}         // Good: default clock
//	created := s.now()                 // Good
//
// The linter respects //nolint and //nolint:clocknow comments on the same
// line or the line before.
package clocknow

import (
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"
)

const name = "clocknow"

// Analyzer reports time.Now() calls.
var Analyzer = &analysis.Analyzer{
	Name: name,
	Doc:  "checks for time.Now() calls where an injected clock should be used",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	for _, file := range pass.Files {
		if strings.HasSuffix(pass.Fset.Position(file.Pos()).Filename, "_test.go") {
			continue
		}
		suppressed := nolintLines(pass.Fset, file)

		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || !isTimeNow(call) {
				return true
			}
			line := pass.Fset.Position(call.Pos()).Line
			if suppressed[line] || suppressed[line-1] {
				return true
			}
			pass.Reportf(call.Pos(), "time.Now() called directly; read the time from an injected clock")
			return true
		})
	}

	return nil, nil
}

// isTimeNow checks if the call expression is time.Now()
func isTimeNow(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Now" {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	return ok && ident.Name == "time"
}

// nolintLines returns the lines carrying a nolint comment that applies here.
func nolintLines(fset *token.FileSet, file *ast.File) map[int]bool {
	lines := make(map[int]bool)
	for _, cg := range file.Comments {
		for _, c := range cg.List {
			text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
			if !strings.HasPrefix(text, "nolint") {
				continue
			}
			directive, _, _ := strings.Cut(text, " ")
			_, linters, scoped := strings.Cut(directive, ":")
			if !scoped || containsLinter(linters, name) {
				lines[fset.Position(c.Pos()).Line] = true
			}
		}
	}
	return lines
}

func containsLinter(list, name string) bool {
	for l := range strings.SplitSeq(list, ",") {
		if strings.TrimSpace(l) == name {
			return true
		}
	}
	return false
}
