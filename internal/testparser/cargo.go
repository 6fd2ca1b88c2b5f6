package testparser

import (
	"regexp"
	"strconv"
	"strings"
)

// Static regexes for Cargo test output parsing.
// Compiled once at package init for performance.
var (
	cargoResultRegex     = regexp.MustCompile(`test result: \w+\.\s*(\d+) passed;\s*(\d+) failed;\s*(\d+) ignored`)
	cargoFailedLineRegex = regexp.MustCompile(`(?m)^test (\S+) \.\.\. FAILED$`)
)

// CargoParser parses Rust/Cargo test output.
type CargoParser struct{}

// Name returns the parser name.
func (p *CargoParser) Name() string {
	return "cargo"
}

// Parse extracts test counts from Cargo test output.
// Cargo test outputs a summary line like:
//
//	test result: ok. 47 passed; 0 failed; 3 ignored; 0 measured; 0 filtered out; finished in 0.12s
//	test result: FAILED. 45 passed; 2 failed; 3 ignored; 0 measured; 0 filtered out; finished in 0.12s
func (p *CargoParser) Parse(output string) TestCounts {
	counts := TestCounts{}

	matches := cargoResultRegex.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return counts
	}

	// Aggregate all test result lines (there may be multiple test binaries)
	for _, match := range matches {
		passed, _ := strconv.Atoi(match[1])
		failed, _ := strconv.Atoi(match[2])
		ignored, _ := strconv.Atoi(match[3])

		counts.Passed += passed
		counts.Failed += failed
		counts.Skipped += ignored
	}

	counts.Total = counts.Passed + counts.Failed + counts.Skipped
	counts.Parsed = true

	if counts.Failed > 0 {
		counts.FailedTests = p.extractFailedTests(output, counts.Failed)
	}

	return counts
}

// extractFailedTests matches "test NAME ... FAILED" lines and pairs them
// with the panic message from the matching "---- NAME stdout ----" block.
func (p *CargoParser) extractFailedTests(output string, limit int) []FailedTest {
	var failedTests []FailedTest
	for _, match := range cargoFailedLineRegex.FindAllStringSubmatch(output, -1) {
		if len(failedTests) == limit {
			break
		}
		failedTests = append(failedTests, FailedTest{
			Name:   match[1],
			Reason: findCargoReason(output, match[1]),
		})
	}
	return failedTests
}

// findCargoReason returns the first line of the stdout block cargo
// prints for a failed test.
func findCargoReason(output, name string) string {
	header := "---- " + name + " stdout ----"
	idx := strings.Index(output, header)
	if idx == -1 {
		return ""
	}

	for _, line := range strings.Split(output[idx+len(header):], "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "----") {
			break // next test's block
		}
		// Truncate if too long. 80 chars is a common terminal width that keeps
		// failure reasons readable in summary output without excessive wrapping.
		const maxLen = 80
		if len(trimmed) > maxLen {
			trimmed = trimmed[:maxLen-3] + "..."
		}
		return trimmed
	}
	return ""
}
