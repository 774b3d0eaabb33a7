package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// setupTestDB creates a database with a habits table holding n rows
func setupTestDB(t *testing.T, n int) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE habits (id TEXT PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create habits table: %v", err)
	}
	for i := 0; i < n; i++ {
		if _, err := db.Exec("INSERT INTO habits (id, name) VALUES (?, ?)", i, "habit"); err != nil {
			t.Fatalf("failed to insert test data: %v", err)
		}
	}
	return dbPath
}

func countHabits(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("failed to query %s: %v", path, err)
	}
	return count
}

// fixedClock returns a Manager clock that advances one minute per call
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t, 2)

	mgr := NewManager(dbPath)
	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("backup written to %s, want dir %s", path, mgr.Dir())
	}
	if got := countHabits(t, path); got != 2 {
		t.Errorf("backup has %d habits, want 2", got)
	}
}

func TestCreate_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create should fail without a database")
	}
}

func TestCreate_RejectsForeignDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE unrelated (id INTEGER)"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	db.Close()

	if _, err := NewManager(dbPath).Create(); err == nil {
		t.Error("Create should refuse a database without a habits table")
	}
}

func TestCreate_UniqueNamesWithinOneSecond(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)
	frozen := time.Date(2025, 4, 27, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return frozen }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("List returned %d backups, want 3", len(backups))
	}
}

func TestListAndRotate(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 4, 1, 8, 0, 0, 0, time.Local))
	mgr.keep = 3

	for i := 0; i < 5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	// stray files are ignored
	os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0600)
	os.WriteFile(filepath.Join(mgr.Dir(), "habitual-garbage.db"), []byte("x"), 0600)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected rotation to keep 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first: %v then %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
	if want := time.Date(2025, 4, 1, 8, 4, 0, 0, time.Local); !backups[0].Timestamp.Equal(want) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, want)
	}
}

func TestList_NoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitual.db"))
	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Errorf("List() = %v, %v; want empty", backups, err)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t, 2)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 4, 1, 8, 0, 0, 0, time.Local))

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO habits (id, name) VALUES ('x', 'late')"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	db.Close()

	preRestore, err := mgr.Restore(snapshot)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := countHabits(t, dbPath); got != 2 {
		t.Errorf("restored database has %d habits, want 2", got)
	}
	if preRestore == "" {
		t.Fatal("Restore should snapshot the current database first")
	}
	if got := countHabits(t, preRestore); got != 3 {
		t.Errorf("pre-restore backup has %d habits, want 3", got)
	}
}

func TestRestore_Invalid(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("Restore of a missing file should fail")
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("not a database"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := mgr.Restore(corrupt); err == nil {
		t.Error("Restore of a corrupted file should fail")
	}
	if got := countHabits(t, dbPath); got != 1 {
		t.Errorf("failed restore changed the database: %d habits", got)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"habitual-20250427-093000.db", true},
		{"habitual-20250427-093000-2.db", true},
		{"habitual-20250427-093000-x.db", false},
		{"habitual-20250427.db", false},
		{"otherapp-20250427-093000.db", false},
		{"habitual-20250427-093000.db.bak", false},
	}
	for _, tt := range tests {
		if _, ok := parseName(tt.name); ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
