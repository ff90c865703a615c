package db

import (
	"io/fs"
	"path"
	"sort"
	"strings"
)

type Migration struct {
	Version string
	SQL     string
}

// UpMigrations returns the embedded *.up.sql files ordered by version. The version is
// the file name up to the first underscore.
func UpMigrations() ([]Migration, error) {
	return upMigrations(Migrations, "migrations")
}

func upMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		base := path.Base(name)
		version, _, _ := strings.Cut(base, "_")
		out = append(out, Migration{Version: version, SQL: string(body)})
	}
	return out, nil
}
