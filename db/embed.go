// Package db embeds the schema migrations shipped with the binary.
package db

import "embed"

// MigrationsFS holds the SQL migration files applied by the migrate command.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
