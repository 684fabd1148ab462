// Package migrations holds the goose SQL migrations of the documents store.
package migrations

import "embed"

// FS contains every migration file.
//
//go:embed *.sql
var FS embed.FS
