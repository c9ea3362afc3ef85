// Package migrations embeds the SQLite schema applied by the store on open.
//
// The schema is additive only: every statement is CREATE ... IF NOT EXISTS,
// so opening a database created by an older build is always safe.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
