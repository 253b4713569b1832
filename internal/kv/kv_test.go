package kv_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"goaltrack/internal/kv"
)

// stores returns one instance of every Store implementation.
func stores(t *testing.T) map[string]kv.Store {
	t.Helper()

	db, err := kv.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("close failed: %v", err)
		}
	})

	return map[string]kv.Store{
		"memory": kv.NewMemory(),
		"sqlite": db,
	}
}

func TestStore_MissingKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, found, err := s.GetString(ctx, "goals.1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found {
				t.Error("expected missing key to be not found")
			}

			n, found, err := s.GetNumber(ctx, "goals.1.lastId")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found || n != 0 {
				t.Errorf("expected (0, false), got (%d, %v)", n, found)
			}
		})
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := s.SetString(ctx, "token", "first"); err != nil {
				t.Fatalf("SetString failed: %v", err)
			}
			if err := s.SetString(ctx, "token", "second"); err != nil {
				t.Fatalf("SetString failed: %v", err)
			}

			got, found, err := s.GetString(ctx, "token")
			if err != nil || !found {
				t.Fatalf("GetString: found=%v err=%v", found, err)
			}
			if got != "second" {
				t.Errorf("expected %q, got %q", "second", got)
			}
		})
	}
}

func TestStore_Numbers(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := s.SetNumber(ctx, "goals.1.lastId", 41); err != nil {
				t.Fatalf("SetNumber failed: %v", err)
			}
			n, err := s.Incr(ctx, "goals.1.lastId")
			if err != nil {
				t.Fatalf("Incr failed: %v", err)
			}
			if n != 42 {
				t.Errorf("expected 42, got %d", n)
			}

			got, found, err := s.GetNumber(ctx, "goals.1.lastId")
			if err != nil || !found {
				t.Fatalf("GetNumber: found=%v err=%v", found, err)
			}
			if got != 42 {
				t.Errorf("expected persisted 42, got %d", got)
			}
		})
	}
}

func TestStore_IncrFromAbsent(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for want := int64(1); want <= 3; want++ {
				n, err := s.Incr(ctx, "counter")
				if err != nil {
					t.Fatalf("Incr failed: %v", err)
				}
				if n != want {
					t.Errorf("expected %d, got %d", want, n)
				}
			}
		})
	}
}

func TestStore_NotANumber(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := s.SetString(ctx, "user", "alice"); err != nil {
				t.Fatalf("SetString failed: %v", err)
			}
			if _, _, err := s.GetNumber(ctx, "user"); !errors.Is(err, kv.ErrNotNumber) {
				t.Errorf("expected ErrNotNumber, got %v", err)
			}
			if _, err := s.Incr(ctx, "user"); !errors.Is(err, kv.ErrNotNumber) {
				t.Errorf("expected ErrNotNumber from Incr, got %v", err)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := s.SetString(ctx, "token", "abc"); err != nil {
				t.Fatalf("SetString failed: %v", err)
			}
			if err := s.Delete(ctx, "token"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if err := s.Delete(ctx, "token"); err != nil {
				t.Fatalf("second Delete failed: %v", err)
			}
			if _, found, _ := s.GetString(ctx, "token"); found {
				t.Error("expected key to be deleted")
			}
		})
	}
}

func TestSQLite_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	db, err := kv.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := db.SetString(ctx, "tasks", `[{"name":"Learn Go"}]`); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err = kv.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	got, found, err := db.GetString(ctx, "tasks")
	if err != nil || !found {
		t.Fatalf("GetString: found=%v err=%v", found, err)
	}
	if got != `[{"name":"Learn Go"}]` {
		t.Errorf("unexpected value %q", got)
	}
}

func TestSQLite_IncrAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	var handles []*kv.SQLite
	for i := 0; i < 2; i++ {
		db, err := kv.OpenSQLite(ctx, path)
		if err != nil {
			t.Fatalf("OpenSQLite failed: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		handles = append(handles, db)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database at %s: %v", path, err)
	}

	const perHandle = 50
	var (
		mu   sync.Mutex
		seen = make(map[int64]bool)
		errs []error
		wg   sync.WaitGroup
	)
	for _, db := range handles {
		wg.Add(1)
		go func(db *kv.SQLite) {
			defer wg.Done()
			for i := 0; i < perHandle; i++ {
				n, err := db.Incr(ctx, "goals.1.lastId")
				mu.Lock()
				if err != nil {
					errs = append(errs, err)
				} else if seen[n] {
					errs = append(errs, fmt.Errorf("duplicate id %d", n))
				} else {
					seen[n] = true
				}
				mu.Unlock()
			}
		}(db)
	}
	wg.Wait()

	for _, err := range errs {
		t.Error(err)
	}
	if len(seen) != 2*perHandle {
		t.Errorf("expected %d distinct ids, got %d", 2*perHandle, len(seen))
	}
	n, found, err := handles[0].GetNumber(ctx, "goals.1.lastId")
	if err != nil || !found || n != 2*perHandle {
		t.Errorf("expected counter %d, got %d found=%v err=%v", 2*perHandle, n, found, err)
	}
}
