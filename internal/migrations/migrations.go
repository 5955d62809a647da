// Package migrations embeds the catalog schema migration files.
package migrations

import "embed"

// Files holds the embedded .up.sql migration files, applied in lexical order.
//
//go:embed *.up.sql
var Files embed.FS
