// Package runner routes test-run requests through validation and
// compilation, and executes the resulting commands.
package runner

// Request is the closed set of request kinds the dispatcher accepts.
// The unexported marker method keeps the set closed: adding a new test
// framework means adding a variant here and a case in Dispatch, checked
// at compile time rather than through a runtime dispatch table.
type Request interface {
	request()
}

// RunSpecFile asks for an RSpec run of a single spec file, optionally
// narrowed to example lines via path[:line...] syntax.
type RunSpecFile struct {
	RawLocation string
}

// RunCargoTests asks for a cargo test run with an optional name pattern
// (empty means absent) and passthrough arguments in caller order.
type RunCargoTests struct {
	Pattern   string
	ExtraArgs []string
}

func (RunSpecFile) request()   {}
func (RunCargoTests) request() {}
