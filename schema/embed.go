// Package schema provides the embedded JSON schemas for voltcheck
// configuration, record, catalog and reference case files.
package schema

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS
