package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/output"
	"github.com/pl/testbridge/internal/report"
	"github.com/pl/testbridge/internal/testparser"
)

// cmdReport parses saved test runner output and prints a summary.
func cmdReport(args []string) int {
	if wantsHelp(args) {
		printReportUsage()
		return 0
	}

	if len(args) == 0 {
		out.ErrorPrefix("report: framework required")
		out.Errorln("usage: testbridge report <framework> [file]")
		return errors.ExitConfigError
	}
	if len(args) > 2 {
		out.ErrorPrefix("report: too many arguments")
		out.Errorln("usage: testbridge report <framework> [file]")
		return errors.ExitConfigError
	}

	frameworkName := args[0]
	parser := parsers.GetParser(frameworkName)
	if parser == nil {
		out.ErrorPrefix("report: unknown framework %q", frameworkName)
		out.Hint("known frameworks: rspec, cargo, cypress")
		return errors.ExitConfigError
	}

	var data []byte
	var err error
	if len(args) == 2 {
		data, err = os.ReadFile(args[1])
		if err != nil {
			out.ErrorPrefix("failed to read %s: %v", args[1], err)
			return errors.ExitRuntimeError
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			out.ErrorPrefix("failed to read stdin: %v", err)
			return errors.ExitRuntimeError
		}
	}

	counts := parser.Parse(string(data))
	if !counts.Parsed {
		out.ErrorPrefix("no test results found in input")
		out.Hint("pipe the raw %s output into this command, or pass a capture file", report.DisplayName(frameworkName))
		return errors.ExitRuntimeError
	}

	printRunSummary(frameworkName, counts)

	if counts.Failed > 0 {
		return errors.ExitRuntimeError
	}
	return errors.ExitSuccess
}

// printRunSummary renders parsed counts in the shared summary style.
func printRunSummary(frameworkName string, counts testparser.TestCounts) {
	out.SummaryHeader("Test Summary")
	out.SummaryItem("Framework", report.DisplayName(frameworkName))
	out.SummaryPassed("Passed", fmt.Sprintf("%d", counts.Passed))
	if counts.Failed > 0 {
		out.SummaryFailed("Failed", fmt.Sprintf("%d", counts.Failed))
	} else {
		out.SummaryItem("Failed", "0")
	}
	out.SummaryItem("Skipped", fmt.Sprintf("%d", counts.Skipped))
	out.SummaryItem("Total", fmt.Sprintf("%d", counts.Total))

	if len(counts.FailedTests) > 0 {
		out.Println("")
		out.Println("Failed tests:")
		for _, ft := range counts.FailedTests {
			if ft.Reason != "" {
				out.Println("  - %s: %s", ft.Name, ft.Reason)
			} else {
				out.Println("  - %s", ft.Name)
			}
		}
	}
}

// printReportUsage prints the help text for the report command.
func printReportUsage() {
	w := output.New()

	w.HelpTitle("testbridge report - summarize saved test output")

	w.HelpSection("Usage:")
	w.HelpUsage("testbridge report <framework> [file]")

	w.HelpSection("Description:")
	w.Println("  Parses raw test runner output (from a file, or stdin when no file")
	w.Println("  is given) and prints pass/fail/skip counts with failed test names.")
	w.Println("  Exits 1 when failures are present or nothing could be parsed.")

	w.HelpSection("Arguments:")
	w.HelpFlag("<framework>", "rspec, cargo, or cypress", helpFlagWidthGlobal)
	w.HelpFlag("[file]", "Captured output; stdin when omitted", helpFlagWidthGlobal)

	w.HelpSection("Examples:")
	w.HelpExample("testbridge report rspec rspec.log", "Summarize a saved RSpec log")
	w.HelpExample("cargo test 2>&1 | testbridge report cargo", "Summarize a live cargo run")
	w.HelpExample("testbridge report cypress results.txt", "Summarize Cypress JSON output")
	w.Println("")
}
