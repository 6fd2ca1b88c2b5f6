package testparser

import (
	"regexp"
	"strconv"
	"strings"
)

// Static regexes for RSpec output parsing.
// Compiled once at package init for performance.
var (
	rspecSummaryRegex      = regexp.MustCompile(`(?m)^(\d+) examples?, (\d+) failures?(?:, (\d+) pending)?`)
	rspecFailureEntryRegex = regexp.MustCompile(`^\s+\d+\) (.+)$`)
)

// RSpecParser parses RSpec output in the progress and documentation formats.
type RSpecParser struct{}

// Name returns the parser name.
func (p *RSpecParser) Name() string {
	return "rspec"
}

// Parse extracts test counts from RSpec output.
// RSpec prints a summary line like:
//
//	10 examples, 0 failures
//	12 examples, 2 failures, 1 pending
func (p *RSpecParser) Parse(output string) TestCounts {
	counts := TestCounts{}

	match := rspecSummaryRegex.FindStringSubmatch(output)
	if match == nil {
		return counts
	}

	examples, _ := strconv.Atoi(match[1])
	failures, _ := strconv.Atoi(match[2])
	pending := 0
	if match[3] != "" {
		pending, _ = strconv.Atoi(match[3])
	}

	counts.Failed = failures
	counts.Skipped = pending
	counts.Passed = examples - failures - pending
	if counts.Passed < 0 {
		// Malformed summary; trust the failure counts.
		counts.Passed = 0
	}
	counts.Total = counts.Passed + counts.Failed + counts.Skipped
	counts.Parsed = true

	if counts.Failed > 0 {
		counts.FailedTests = p.extractFailedTests(output, counts.Failed)
	}

	return counts
}

// extractFailedTests pulls names and reasons out of the numbered entries
// in the Failures: section:
//
//	Failures:
//
//	  1) User validation rejects blank email
//	     Failure/Error: expect(user).to be_valid
//
// Numbered entries also appear in the Pending: section, so only the
// Failures: section is scanned.
func (p *RSpecParser) extractFailedTests(output string, limit int) []FailedTest {
	var failedTests []FailedTest
	lines := strings.Split(output, "\n")

	inFailures := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "Failures:" {
			inFailures = true
			continue
		}
		if strings.HasPrefix(trimmed, "Finished in") ||
			strings.HasPrefix(trimmed, "Failed examples:") ||
			strings.HasPrefix(trimmed, "Pending:") {
			inFailures = false
		}
		if !inFailures {
			continue
		}

		match := rspecFailureEntryRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		if name == "" {
			continue
		}
		if len(failedTests) == limit {
			break
		}
		failedTests = append(failedTests, FailedTest{
			Name:   name,
			Reason: findRSpecReason(lines, i),
		})
	}

	return failedTests
}

// findRSpecReason returns the Failure/Error expression for the numbered
// entry starting at entryIdx.
func findRSpecReason(lines []string, entryIdx int) string {
	for i := entryIdx + 1; i < len(lines); i++ {
		if rspecFailureEntryRegex.MatchString(lines[i]) {
			break // next entry
		}
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "Failure/Error:") {
			reason := strings.TrimSpace(strings.TrimPrefix(trimmed, "Failure/Error:"))
			// Keep the reason to one summary line.
			const maxLen = 80
			if len(reason) > maxLen {
				reason = reason[:maxLen-3] + "..."
			}
			return reason
		}
	}
	return ""
}
