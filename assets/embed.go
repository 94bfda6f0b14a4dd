// Package assets embeds the web page and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed sql/*.sql web/*
var FS embed.FS

// MigrationsDir is the directory of FS holding *.sql migrations.
const MigrationsDir = "sql"

// Web returns the page files (index.html, trainer.js, trainer.css).
func Web() fs.FS {
	sub, err := fs.Sub(FS, "web")
	if err != nil {
		panic(err)
	}
	return sub
}
