// Package tooldef describes the bridge's callable tools: their names,
// descriptions, and argument schemas, plus the decoding of validated
// tool arguments into runnable requests. A transport embeds this
// catalog to advertise the bridge without knowing the pipeline.
package tooldef

import (
	"encoding/json"
	"fmt"

	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/runner"
	"github.com/pl/testbridge/internal/schema"
)

// Tool is one callable tool a transport exposes.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"inputSchema"`
}

// toolNames fixes the presentation order of the catalog.
var toolNames = []string{"run_rspec", "run_cargo"}

var toolDescriptions = map[string]string{
	"run_rspec": "Run RSpec tests for a spec file. The file accepts optional :LINE suffixes to run specific examples.",
	"run_cargo": "Run cargo tests, optionally narrowed to a test name pattern, with extra arguments passed through to cargo.",
}

// Instructions returns the metadata string a transport presents to
// connecting clients.
func Instructions() string {
	return "Test runner bridge. Tools: run_rspec (run RSpec tests for a spec file), run_cargo (run cargo tests with an optional name filter)."
}

// Catalog returns the bridge's tool descriptors in presentation order.
func Catalog() ([]Tool, error) {
	tools := make([]Tool, 0, len(toolNames))
	for _, name := range toolNames {
		raw, err := schema.RawToolSchema(name)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("missing schema for tool %s", name))
		}
		tools = append(tools, Tool{
			Name:        name,
			Description: toolDescriptions[name],
			Schema:      json.RawMessage(raw),
		})
	}
	return tools, nil
}

// rspecArgs and cargoArgs mirror the embedded argument schemas. The
// schemas reject unknown fields before decoding, so plain Unmarshal is
// enough here.
type rspecArgs struct {
	File string `json:"file"`
}

type cargoArgs struct {
	Pattern string   `json:"pattern"`
	Args    []string `json:"args"`
}

// DecodeRequest validates raw tool-call arguments against the tool's
// schema and turns them into a dispatcher request. Unknown tools
// surface as KindNotFound; argument violations as KindRuntime with the
// schema's explanation.
func DecodeRequest(name string, args []byte) (runner.Request, error) {
	if _, ok := toolDescriptions[name]; !ok {
		return nil, errors.NotFound("tool", name)
	}
	if err := schema.ValidateToolArgs(name, args); err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("invalid arguments for %s", name))
	}

	switch name {
	case "run_rspec":
		var a rspecArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, errors.Wrap(err, "failed to decode run_rspec arguments")
		}
		return runner.RunSpecFile{RawLocation: a.File}, nil

	case "run_cargo":
		var a cargoArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, errors.Wrap(err, "failed to decode run_cargo arguments")
		}
		return runner.RunCargoTests{Pattern: a.Pattern, ExtraArgs: a.Args}, nil

	default:
		// Unreachable: toolDescriptions and this switch list the same tools.
		return nil, errors.New(fmt.Sprintf("BUG: tool %s has no decoder", name))
	}
}
