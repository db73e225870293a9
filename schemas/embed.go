// Package schemas provides the embedded DDL of the SQL storage backends.
package schemas

import (
	"embed"
	"fmt"
	"strings"
)

// Migrations contains the DDL files, one per table and dialect.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// KVEntries returns the kv_entries DDL for a dialect name such as "sqlite"
// or "mysql". It panics for a dialect without a file.
func KVEntries(dialect string) string {
	name := fmt.Sprintf("migrations/kv_entries.%s.sql", dialect)
	contents, err := Migrations.ReadFile(name)
	if err != nil {
		panic(fmt.Errorf("Migrations.ReadFile(%s) > %w", name, err))
	}
	return strings.TrimSpace(string(contents))
}
