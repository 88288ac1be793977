package application

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationManager collects embedded schema files from modules and applies
// them in lexical order. Schema files are written to be idempotent
// (CREATE TABLE IF NOT EXISTS and friends), so Run is safe on every start.
type MigrationManager interface {
	RegisterSchema(fsys *embed.FS)
	Run(ctx context.Context) error
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []*embed.FS
}

func (m *migrationManager) RegisterSchema(fsys *embed.FS) {
	m.schemas = append(m.schemas, fsys)
}

func (m *migrationManager) Run(ctx context.Context) error {
	for _, fsys := range m.schemas {
		files, err := listSQLFiles(fsys)
		if err != nil {
			return err
		}
		for _, file := range files {
			contents, err := fsys.ReadFile(file)
			if err != nil {
				return errors.Wrapf(err, "read schema %s", file)
			}
			if _, err := m.pool.Exec(ctx, string(contents)); err != nil {
				return errors.Wrapf(err, "apply schema %s", file)
			}
		}
	}
	return nil
}

func listSQLFiles(fsys *embed.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
