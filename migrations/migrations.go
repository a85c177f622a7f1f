// Package migrations embeds the versioned postgres schema.
package migrations

import "embed"

// FS holds every NNNN_name.sql file and its NNNN_name_rollback.sql counterpart.
//
//go:embed *.sql
var FS embed.FS
