// Package assets bundles the default word list and the dictionary schema.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed wordlist.json sql/*.sql
var FS embed.FS

// WordList returns the bundled JSON word list ({"words": [...]}).
func WordList() ([]byte, error) {
	return FS.ReadFile("wordlist.json")
}

// Migrations returns the embedded SQL migrations rooted at sql/.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
