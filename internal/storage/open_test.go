package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

func TestOpen(t *testing.T) {
	p, err := Open("postgres://user@localhost/habitual")
	if err != nil {
		t.Fatalf("Open(postgres) failed: %v", err)
	}
	if _, ok := p.(*postgres.Store); !ok {
		t.Errorf("Open(postgres://...) = %T, want *postgres.Store", p)
	}

	path := filepath.Join(t.TempDir(), "habitual.db")
	p, err = Open(path)
	if err != nil {
		t.Fatalf("Open(sqlite) failed: %v", err)
	}
	if _, ok := p.(*sqlite.Store); !ok {
		t.Errorf("Open(path) = %T, want *sqlite.Store", p)
	}
	if p.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", p.GetConfigPath(), path)
	}
	if _, ok := p.(Migrator); !ok {
		t.Error("sqlite store should support migrations")
	}

	if _, err := Open("   "); err == nil {
		t.Error("Open(blank) should fail")
	}
}

func TestOpen_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	p, err := Open("~/habitual.db")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if want := filepath.Join(home, "habitual.db"); p.GetConfigPath() != want {
		t.Errorf("GetConfigPath() = %q, want %q", p.GetConfigPath(), want)
	}
}
