package testparser

import "strings"

// Registry maps framework identifiers to their parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates a new parser registry with all built-in parsers.
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[string]Parser),
	}

	rspecParser := &RSpecParser{}
	cargoParser := &CargoParser{}
	cypressParser := &CypressParser{}

	// Map framework identifiers to parsers
	r.parsers["rspec"] = rspecParser
	r.parsers["rb"] = rspecParser
	r.parsers["ruby"] = rspecParser
	r.parsers["cargo"] = cargoParser
	r.parsers["rs"] = cargoParser
	r.parsers["rust"] = cargoParser
	r.parsers["cypress"] = cypressParser
	r.parsers["e2e"] = cypressParser

	return r
}

// GetParser returns a parser for the given framework identifier.
// Returns nil if no parser is found.
func (r *Registry) GetParser(framework string) Parser {
	return r.parsers[strings.ToLower(framework)]
}

// GetParserForTool returns a parser based on a bridge tool name.
// Tool names like "run_rspec" map to the rspec parser.
func (r *Registry) GetParserForTool(toolName string) Parser {
	framework, ok := strings.CutPrefix(toolName, "run_")
	if !ok {
		return nil
	}
	return r.GetParser(framework)
}

// RegisterParser adds a custom parser for a framework.
func (r *Registry) RegisterParser(framework string, parser Parser) {
	r.parsers[strings.ToLower(framework)] = parser
}
