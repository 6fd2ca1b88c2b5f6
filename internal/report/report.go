// Package report renders test run results into the text form returned
// to tool callers.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pl/testbridge/internal/runner"
	"github.com/pl/testbridge/internal/testparser"
)

// displayNames maps framework identifiers to their conventional casing,
// which plain title casing would get wrong ("Rspec").
var displayNames = map[string]string{
	"rspec":   "RSpec",
	"cargo":   "Cargo",
	"cypress": "Cypress",
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the display form of a framework identifier.
func DisplayName(framework string) string {
	if name, ok := displayNames[strings.ToLower(framework)]; ok {
		return name
	}
	return titleCaser.String(framework)
}

// Report renders an execution result as the text block a tool caller
// receives:
//
//	RSpec Test Results for: spec/models/user_spec.rb
//	Exit Code: 1
//
//	Output:
//	...
//
//	Errors:
//	...
//
// The sections are always present, even when a stream was empty, so
// callers can rely on the shape.
func Report(label, target string, res runner.ExecResult) string {
	return fmt.Sprintf("%s Test Results for: %s\nExit Code: %d\n\nOutput:\n%s\n\nErrors:\n%s",
		label, target, res.ExitCode, res.Stdout, res.Stderr)
}

// WithCounts appends a parsed summary block to a report. Nil or
// unparsed counts leave the report unchanged, so the caller can append
// unconditionally after a parse attempt.
func WithCounts(text string, counts *testparser.TestCounts) string {
	if counts == nil || !counts.Parsed {
		return text
	}

	var sb strings.Builder
	sb.WriteString(text)
	fmt.Fprintf(&sb, "\n\nSummary: %d passed, %d failed, %d skipped (%d total)",
		counts.Passed, counts.Failed, counts.Skipped, counts.Total)

	if len(counts.FailedTests) > 0 {
		sb.WriteString("\n\nFailed tests:")
		for _, ft := range counts.FailedTests {
			if ft.Reason != "" {
				fmt.Fprintf(&sb, "\n  - %s: %s", ft.Name, ft.Reason)
			} else {
				fmt.Fprintf(&sb, "\n  - %s", ft.Name)
			}
		}
	}

	return sb.String()
}
