// Package schemas holds the JSON Schema documents for persisted artifacts.
package schemas

import _ "embed"

// Profile is the JSON Schema for an exported profile document.
//
//go:embed profile.schema.json
var Profile []byte
