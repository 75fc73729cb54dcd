// Package migrations embeds the SQL schema files and registers them with
// the database package at init time.
package migrations

import (
	"embed"

	"github.com/arifwid/kantorku/internal/infrastructure/database"
)

//go:embed *.sql
var fsys embed.FS

func init() {
	database.MigrationsFS = fsys
}
