// Package itf provides the shared fixture for tests that exercise real
// Postgres-backed repositories. Each test gets its own database, created
// from scratch and migrated before the test body runs.
package itf

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/evergreen-centers/evergreen/pkg/application"
	"github.com/evergreen-centers/evergreen/pkg/composables"
	"github.com/evergreen-centers/evergreen/pkg/configuration"
	"github.com/evergreen-centers/evergreen/pkg/eventbus"
)

var dbNameSanitizer = regexp.MustCompile(`[^a-z0-9_]+`)

type Env struct {
	Pool *pgxpool.Pool
	App  application.Application
	// Ctx carries the pool so repositories and services can run as they do
	// in production.
	Ctx context.Context
}

// Setup provisions a fresh database named after the test, registers the
// given modules and applies their schemas. The test is skipped when no
// Postgres server is reachable.
func Setup(t *testing.T, mods ...application.Module) *Env {
	t.Helper()

	conf := configuration.Use()
	dbName := databaseName(t)
	createDB(t, conf, dbName)

	opts := conf.Database
	opts.Name = dbName
	pool, err := pgxpool.New(context.Background(), opts.ConnectionString())
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	log := conf.Logger()
	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(log),
		Logger:   log,
	})
	for _, mod := range mods {
		if err := mod.Register(app); err != nil {
			t.Fatalf("register module %s: %v", mod.Name(), err)
		}
	}
	if err := app.Migrations().Run(context.Background()); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return &Env{
		Pool: pool,
		App:  app,
		Ctx:  composables.WithPool(context.Background(), pool),
	}
}

func databaseName(t *testing.T) string {
	name := strings.ToLower(t.Name())
	name = dbNameSanitizer.ReplaceAllString(name, "_")
	if len(name) > 48 {
		name = name[:48]
	}
	return "test_" + name
}

func createDB(t *testing.T, conf *configuration.Configuration, name string) {
	t.Helper()

	admin := conf.Database
	db, err := sql.Open("postgres", admin.ConnectionString())
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	defer func() { _ = db.Close() }()
	if err := db.Ping(); err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}

	if _, err := db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", name)); err != nil {
		t.Fatalf("drop database %s: %v", name, err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", name)); err != nil {
		t.Fatalf("create database %s: %v", name, err)
	}
}
