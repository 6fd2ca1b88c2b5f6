package testparser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CypressStats mirrors the stats block of the Cypress JSON reporter.
type CypressStats struct {
	Suites   int    `json:"suites"`
	Tests    int    `json:"tests"`
	Passes   int    `json:"passes"`
	Pending  int    `json:"pending"`
	Failures int    `json:"failures"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration int    `json:"duration"`
}

// CypressCodeFrame locates the failing expression in the spec source.
type CypressCodeFrame struct {
	Line         int    `json:"line"`
	Column       int    `json:"column"`
	OriginalFile string `json:"originalFile"`
	RelativeFile string `json:"relativeFile"`
	AbsoluteFile string `json:"absoluteFile"`
	Frame        string `json:"frame"`
	Language     string `json:"language"`
}

// CypressError describes a single test failure.
type CypressError struct {
	Message   string            `json:"message"`
	Name      string            `json:"name"`
	CodeFrame *CypressCodeFrame `json:"codeFrame,omitempty"`
}

// CypressTest is one executed test in the run.
type CypressTest struct {
	Title        string        `json:"title"`
	FullTitle    string        `json:"fullTitle"`
	File         *string       `json:"file"`
	Duration     *int          `json:"duration"`
	CurrentRetry int           `json:"currentRetry"`
	Err          *CypressError `json:"err,omitempty"`
}

// CypressResults is the filtered shape of a Cypress JSON report. Decoding
// into it drops the reporter fields the bridge has no use for (hooks,
// uuids, screenshots) while keeping the stats and per-test errors.
type CypressResults struct {
	Stats    CypressStats  `json:"stats"`
	Tests    []CypressTest `json:"tests"`
	Pending  []CypressTest `json:"pending"`
	Failures []CypressTest `json:"failures"`
	Passes   []CypressTest `json:"passes"`
}

// ExtractCypressJSON returns the JSON portion of mixed Cypress output.
// Browser launch warnings and electron noise precede the report, so
// everything before the first opening brace is dropped.
func ExtractCypressJSON(output string) (string, error) {
	if idx := strings.Index(output, "{"); idx != -1 {
		return output[idx:], nil
	}
	return "", errors.New("no JSON found in cypress output")
}

// ParseCypressResults decodes a Cypress JSON report. A document without
// a stats block is not a report and is rejected.
func ParseCypressResults(jsonStr string) (*CypressResults, error) {
	var probe struct {
		Stats *CypressStats `json:"stats"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse cypress JSON: %w", err)
	}
	if probe.Stats == nil {
		return nil, errors.New("cypress JSON has no stats block")
	}

	var results CypressResults
	if err := json.Unmarshal([]byte(jsonStr), &results); err != nil {
		return nil, fmt.Errorf("failed to parse cypress JSON: %w", err)
	}
	return &results, nil
}

// CypressParser parses Cypress JSON reporter output.
type CypressParser struct{}

// Name returns the parser name.
func (p *CypressParser) Name() string {
	return "cypress"
}

// Parse extracts test counts from Cypress output.
func (p *CypressParser) Parse(output string) TestCounts {
	counts := TestCounts{}

	jsonStr, err := ExtractCypressJSON(output)
	if err != nil {
		return counts
	}
	results, err := ParseCypressResults(jsonStr)
	if err != nil {
		return counts
	}

	stats := results.Stats
	if stats.Passes < 0 || stats.Failures < 0 || stats.Pending < 0 {
		return counts
	}

	counts.Passed = stats.Passes
	counts.Failed = stats.Failures
	counts.Skipped = stats.Pending
	counts.Total = counts.Passed + counts.Failed + counts.Skipped
	counts.Parsed = true

	if counts.Failed > 0 {
		counts.FailedTests = cypressFailedTests(results, counts.Failed)
	}

	return counts
}

func cypressFailedTests(results *CypressResults, limit int) []FailedTest {
	var failedTests []FailedTest
	add := func(test CypressTest) {
		if len(failedTests) == limit {
			return
		}
		name := test.FullTitle
		if name == "" {
			name = test.Title
		}
		if name == "" {
			return
		}
		reason := ""
		if test.Err != nil {
			reason = test.Err.Message
			// Keep the reason to one summary line.
			const maxLen = 80
			if len(reason) > maxLen {
				reason = reason[:maxLen-3] + "..."
			}
		}
		failedTests = append(failedTests, FailedTest{Name: name, Reason: reason})
	}

	for _, test := range results.Failures {
		add(test)
	}
	// Some reporter versions leave failures in tests[] with err set
	// instead of populating failures[].
	if len(failedTests) == 0 {
		for _, test := range results.Tests {
			if test.Err != nil && test.Err.Message != "" {
				add(test)
			}
		}
	}

	return failedTests
}
