package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// LoadWithWarnings reads a config file and returns any unknown field warnings.
func LoadWithWarnings(path string, data []byte) (*Config, []string, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Detect unknown fields
	warnings := detectUnknownFields(data)

	return &cfg, warnings, nil
}

// detectUnknownFields compares raw JSON with known struct fields.
// Note: Since this is called after successful Config parsing, a parse failure
// here would indicate an unexpected internal inconsistency.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// This should never happen since the data was already parsed successfully.
		// Return a warning so the condition is visible rather than silently ignored.
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	knownTopLevel := getJSONFields(reflect.TypeOf(Config{}))
	for key := range raw {
		if key == "$schema" {
			continue // $schema is explicitly allowed and ignored
		}
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	if frameworksRaw, ok := raw["frameworks"]; ok {
		warnings = append(warnings, checkFrameworksUnknownFields(frameworksRaw)...)
	}

	if dockerRaw, ok := raw["docker"]; ok {
		warnings = append(warnings, checkSectionUnknownFields(dockerRaw, reflect.TypeOf(DockerConfig{}), "docker")...)
	}

	return warnings
}

func checkFrameworksUnknownFields(data json.RawMessage) []string {
	var warnings []string

	var frameworks map[string]json.RawMessage
	if err := json.Unmarshal(data, &frameworks); err != nil {
		// Should not happen since Config.Frameworks parsed successfully.
		return []string{"internal: failed to re-parse frameworks for unknown field detection"}
	}

	knownFrameworks := getJSONFields(reflect.TypeOf(FrameworksConfig{}))
	for name, frameworkRaw := range frameworks {
		if !knownFrameworks[name] {
			warnings = append(warnings, fmt.Sprintf("unknown framework %q (ignored)", name))
			continue
		}
		warnings = append(warnings, checkSectionUnknownFields(frameworkRaw, reflect.TypeOf(FrameworkConfig{}), "frameworks."+name)...)
	}

	return warnings
}

func checkSectionUnknownFields(data json.RawMessage, t reflect.Type, section string) []string {
	var warnings []string

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	known := getJSONFields(t)
	for key := range fields {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", key, section))
		}
	}

	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		// Extract field name from tag (before comma)
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
