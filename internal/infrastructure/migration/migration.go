// Package migration applies the versioned SQL schema with goose. Scripts are
// embedded so the binary migrates without the source tree.
package migration

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

// Scripts live in one directory per goose dialect. SQLite only maps a column
// to time.Time when its declared type is exactly DATETIME, so the MySQL
// DATETIME(3) columns cannot be shared.
//
//go:embed scripts/*/*.sql
var scriptsFS embed.FS

const scriptsRoot = "scripts"

// SourceScriptsPath is where new migrations are generated, relative to the
// repository root. Each dialect has its own subdirectory.
const SourceScriptsPath = "internal/infrastructure/migration/scripts"

func scriptsDirFor(dialect string) string {
	return path.Join(scriptsRoot, dialect)
}

// DialectForDriver maps a database.driver config value to a goose dialect.
func DialectForDriver(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "mysql", "":
		return "mysql", nil
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no migration dialect for database driver %q", driver)
	}
}
