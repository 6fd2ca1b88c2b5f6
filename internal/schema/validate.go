// Package schema provides JSON schema validation for testbridge configuration
// files and tool-call arguments.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/pl/testbridge/schema"
)

// toolSchemaFiles maps a tool name to its embedded argument schema.
var toolSchemaFiles = map[string]string{
	"run_rspec": "run_rspec.schema.json",
	"run_cargo": "run_cargo.schema.json",
}

var (
	configSchema *jsonschema.Schema
	toolSchemas  map[string]*jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		add := func(name string) bool {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return false
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return false
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return false
			}
			return true
		}

		if !add("config.schema.json") {
			return
		}
		for _, file := range toolSchemaFiles {
			if !add(file) {
				return
			}
		}

		var err error
		configSchema, err = compiler.Compile("config.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
			return
		}

		toolSchemas = make(map[string]*jsonschema.Schema, len(toolSchemaFiles))
		for tool, file := range toolSchemaFiles {
			s, err := compiler.Compile(file)
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", file, err)
				return
			}
			toolSchemas[tool] = s
		}
	})

	return compileErr
}

// ValidateConfig validates JSON data against the config schema.
func ValidateConfig(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := configSchema.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// ValidateToolArgs validates tool-call arguments against the embedded
// schema for that tool.
func ValidateToolArgs(tool string, data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	s, ok := toolSchemas[tool]
	if !ok {
		return fmt.Errorf("no argument schema for tool %q", tool)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%s argument validation failed: %w", tool, err)
	}

	return nil
}

// RawToolSchema returns the embedded argument schema bytes for a tool,
// for publishing in the tool catalog.
func RawToolSchema(tool string) ([]byte, error) {
	file, ok := toolSchemaFiles[tool]
	if !ok {
		return nil, fmt.Errorf("no argument schema for tool %q", tool)
	}
	return schemafs.FS.ReadFile(file)
}
