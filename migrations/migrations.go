// Package migrations embeds the SQL schema for the case study store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
