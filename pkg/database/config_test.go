package database_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/app-host/pkg/database"
)

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr bool
	}{
		{"disabled needs nothing", database.Config{}, false},
		{"enabled with credentials", database.Config{Enabled: true, Name: "app", User: "app"}, false},
		{"enabled without name", database.Config{Enabled: true, User: "app"}, true},
		{"enabled without user", database.Config{Enabled: true, Name: "app"}, true},
		{"bad lifetime", database.Config{Enabled: true, Name: "app", User: "app", ConnMaxLifetime: "soon"}, true},
		{"bad port", database.Config{Enabled: true, Name: "app", User: "app", Port: 70000}, true},
		{"idle exceeds open", database.Config{Enabled: true, Name: "app", User: "app", MaxOpenConns: 2, MaxIdleConns: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if cfg.Host != "localhost" || cfg.Port != 5432 {
				t.Errorf("defaults = %s:%d, want localhost:5432", cfg.Host, cfg.Port)
			}
			if cfg.ConnTimeoutDuration().String() != "5s" {
				t.Errorf("ConnTimeout = %v, want 5s", cfg.ConnTimeoutDuration())
			}
		})
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	t.Setenv("TEST_DB_ENABLED", "true")
	t.Setenv("TEST_DB_MIGRATE", "true")
	t.Setenv("TEST_DB_NAME", "backend")
	t.Setenv("TEST_DB_USER", "svc")
	t.Setenv("TEST_DB_PORT", "6543")

	cfg := &database.Config{}
	env := &database.Env{
		Enabled: "TEST_DB_ENABLED",
		Migrate: "TEST_DB_MIGRATE",
		Name:    "TEST_DB_NAME",
		User:    "TEST_DB_USER",
		Port:    "TEST_DB_PORT",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if !cfg.Enabled || !cfg.Migrate {
		t.Errorf("Enabled = %v, Migrate = %v, want both true", cfg.Enabled, cfg.Migrate)
	}
	if cfg.Name != "backend" || cfg.User != "svc" || cfg.Port != 6543 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfig_Merge(t *testing.T) {
	base := database.Config{Host: "localhost", Port: 5432, Name: "app"}
	base.Merge(&database.Config{Enabled: true, Host: "db", MaxOpenConns: 40})

	if !base.Enabled {
		t.Error("Enabled should be set by overlay")
	}
	if base.Host != "db" || base.Port != 5432 || base.Name != "app" || base.MaxOpenConns != 40 {
		t.Errorf("merged = %+v", base)
	}
}

func TestConfig_MigrateURL(t *testing.T) {
	cfg := database.Config{Host: "db", Port: 5433, Name: "backend", User: "svc", Password: "p@ss word"}

	u, err := url.Parse(cfg.MigrateURL("schema_migrations_billing"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if u.Scheme != "pgx5" || u.Host != "db:5433" || u.Path != "/backend" {
		t.Errorf("url = %s", u)
	}
	if pw, _ := u.User.Password(); pw != "p@ss word" {
		t.Errorf("password = %q", pw)
	}
	if got := u.Query().Get("x-migrations-table"); got != "schema_migrations_billing" {
		t.Errorf("x-migrations-table = %q", got)
	}
}
