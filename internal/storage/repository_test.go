package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/PCalderonpm/menu-escolar/internal/core"
	"github.com/PCalderonpm/menu-escolar/internal/menus"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "menus.db"))
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveThenLoadDeepEqual(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	b := core.MenuBundle{
		Ledger: core.Ledger{
			"2024-03-05": core.SchoolMenu,
			"2024-03-06": core.PackedLunch,
			"2024-03-07": core.Absent,
		},
		Pricing:    core.DefaultPricing(),
		Profile:    core.StudentProfile{Name: "Sofía"},
		WeeklyMenu: core.WeeklyMenuPlan{"2024-03-04": "Lentejas"},
	}

	id, err := repo.Save(ctx, "", b)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatalf("expected minted id")
	}

	got, err := repo.Load(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, b) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, b)
	}
}

func TestSaveReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := core.NewBundle()
	first.Ledger = first.Ledger.Toggle("2024-03-05", core.SchoolMenu)
	id, err := repo.Save(ctx, "", first)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Full replace, not merge: the old ledger entry must be gone.
	second := core.NewBundle()
	second.Profile.Name = "Benja"
	if _, err := repo.Save(ctx, id, second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := repo.Load(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Ledger) != 0 || got.Profile.Name != "Benja" {
		t.Fatalf("expected full replace, got %+v", got)
	}
}

func TestLoadMissingMenu(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Load(context.Background(), "nope"); !errors.Is(err, menus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListIDsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	a, _ := repo.Save(ctx, "", core.NewBundle())
	b, _ := repo.Save(ctx, "", core.NewBundle())

	ids, err := repo.ListIDs(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	found := map[string]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[a] || !found[b] {
		t.Fatalf("missing ids: %v", ids)
	}
}
