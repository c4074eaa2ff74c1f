package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(Run{Mode: "classic", Outcome: "lost", Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	// Different mode
	if _, err := store.SaveRun(Run{Mode: "pyramid", Outcome: "won", Score: 500}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	pyramid, err := store.TopRuns("pyramid", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(pyramid) != 1 {
		t.Errorf("Expected 1 pyramid run, got %d", len(pyramid))
	}
}

func TestStoreSaveRunFields(t *testing.T) {
	store := openTestStore(t)

	in := Run{
		Mode:       "fortress",
		Outcome:    "won",
		Score:      660,
		LivesLeft:  2,
		BricksLeft: 0,
		Ticks:      12345,
		Seed:       -7,
	}
	id, err := store.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id %q is not a UUID: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	in.ID = id
	in.CreatedAt = got.CreatedAt
	if *got != in {
		t.Errorf("RunByID() = %+v, expected %+v", *got, in)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RunByID() for unknown id = %v, %v", missing, err)
	}
}

func TestStoreSaveRunRequiresMode(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{Score: 10}); err == nil {
		t.Error("SaveRun() without a mode should fail")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Mode: "test", Outcome: "lost", Score: (i + 1) * 100})
	}

	// Request only top 3
	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Should be 500, 400, 300 (top 3)
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 25; i++ {
		mode := "classic"
		if i%2 == 1 {
			mode = "pyramid"
		}
		store.SaveRun(Run{Mode: mode, Outcome: "lost", Score: i})
	}

	runs, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Fatalf("Expected default limit of 20, got %d", len(runs))
	}
	if runs[0].Score != 24 {
		t.Errorf("Most recent run should come first, got score %d", runs[0].Score)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	best, err := store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for empty mode, got %d", best)
	}

	store.SaveRun(Run{Mode: "classic", Outcome: "lost", Score: 100})
	store.SaveRun(Run{Mode: "classic", Outcome: "won", Score: 300})
	store.SaveRun(Run{Mode: "classic", Outcome: "lost", Score: 200})

	best, err = store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Mode: "classic", Outcome: "lost", Score: 100})
	store.SaveRun(Run{Mode: "classic", Outcome: "lost", Score: 200})
	store.SaveRun(Run{Mode: "pyramid", Outcome: "lost", Score: 300})

	// Clear only classic runs
	if err := store.ClearRuns("classic"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	classic, _ := store.TopRuns("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic runs after clear, got %d", len(classic))
	}

	pyramid, _ := store.TopRuns("pyramid", 10)
	if len(pyramid) != 1 {
		t.Errorf("Pyramid runs should not be affected by clearing classic")
	}
}

func TestStoreAllModeStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Mode: "classic", Outcome: "won", Score: 660})
	store.SaveRun(Run{Mode: "classic", Outcome: "lost", Score: 140})
	store.SaveRun(Run{Mode: "fortress", Outcome: "lost", Score: 30})

	stats, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 modes, got %d", len(stats))
	}

	classic := stats["classic"]
	if classic.Runs != 2 || classic.Wins != 1 || classic.BestScore != 660 || classic.AvgScore != 400 {
		t.Errorf("classic stats = %+v", *classic)
	}
	if stats["fortress"].Wins != 0 {
		t.Errorf("fortress stats = %+v", *stats["fortress"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
