// Package migrations embeds the SQL schema migrations applied by the
// server's -migrate flag.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
