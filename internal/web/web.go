package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// Static returns the landing page assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
