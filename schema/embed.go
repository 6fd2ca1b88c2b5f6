// Package schema provides embedded JSON schemas for testbridge configuration
// and tool-call arguments.
package schema

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS
