package migration

import (
	"embed"
	"io/fs"
)

//go:embed sql
var embedded embed.FS

// Embedded returns the migrations shipped inside the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
