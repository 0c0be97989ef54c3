// Package migrations embeds the golang-migrate SQL files for the sqlite driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
