package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ledger/internal/core"
)

func sequentialID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func seeded(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s := New(append([]Option{WithIDGenerator(sequentialID())}, opts...)...)
	s.ReplaceAll([]core.Transaction{
		{ID: "1", Date: "01.01.24", Name: "Coffee", Amount: 3, Type: "FOOD", Project: "Budget"},
		{ID: "2", Date: "02.01.24", Name: "Bus", Amount: 2, Type: "TRANSPORT", Project: "Budget"},
		{ID: "3", Date: "03.01.24", Name: "Rent", Amount: 800, Type: "HOUSING", Project: "Home"},
	})
	return s
}

func TestUpsertAppendsWithFreshID(t *testing.T) {
	s := seeded(t)

	got := s.Upsert(core.Transaction{Date: "04.01.24", Name: "Lunch", Amount: 12, Type: "FOOD", Project: "Budget"}, "")
	if got.ID != "id-1" {
		t.Fatalf("ID = %q, want id-1", got.ID)
	}
	snap := s.Snapshot()
	if len(snap) != 4 || snap[3].Name != "Lunch" {
		t.Fatalf("snapshot = %+v, want Lunch appended", snap)
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	s := seeded(t)

	got := s.Upsert(core.Transaction{Date: "02.01.24", Name: "Train", Amount: 9, Type: "TRANSPORT", Project: "Budget"}, "2")
	if got.ID != "2" {
		t.Fatalf("ID = %q, want 2", got.ID)
	}
	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	if snap[1].Name != "Train" || snap[1].ID != "2" {
		t.Fatalf("record 1 = %+v, want Train at original position", snap[1])
	}
}

func TestUpsertUnknownEditingIDAppends(t *testing.T) {
	s := seeded(t)

	got := s.Upsert(core.Transaction{Date: "05.01.24", Name: "Gym", Amount: 30}, "missing")
	if got.ID != "id-1" {
		t.Fatalf("ID = %q, want fresh id-1", got.ID)
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := seeded(t)

	s.Remove("2")
	s.Remove("2")
	s.Remove("nope")

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len = %d, want 2", len(snap))
	}
	if snap[0].ID != "1" || snap[1].ID != "3" {
		t.Fatalf("remaining ids = %q, %q", snap[0].ID, snap[1].ID)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := seeded(t)

	snap := s.Snapshot()
	snap[0].Name = "Mutated"

	if got := s.Snapshot()[0].Name; got != "Coffee" {
		t.Fatalf("store record mutated through snapshot: %q", got)
	}
}

func TestBulkReassignProject(t *testing.T) {
	var syncCalls int
	var syncedSet []core.Transaction
	s := seeded(t, WithSync(func(ctx context.Context, txs []core.Transaction) error {
		syncCalls++
		syncedSet = txs
		return nil
	}))

	count, err := s.BulkReassignProject(context.Background(), []string{"1", "2", "missing"}, "  NewProj  ")
	if err != nil {
		t.Fatalf("BulkReassignProject: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want requested count 3", count)
	}
	if syncCalls != 1 {
		t.Fatalf("sync calls = %d, want 1", syncCalls)
	}
	if len(syncedSet) != 3 {
		t.Fatalf("synced set len = %d, want full collection", len(syncedSet))
	}

	snap := s.Snapshot()
	if snap[0].Project != "NewProj" || snap[1].Project != "NewProj" {
		t.Fatalf("projects = %q, %q, want NewProj", snap[0].Project, snap[1].Project)
	}
	if snap[2].Project != "Home" {
		t.Fatalf("untouched record moved: %q", snap[2].Project)
	}
}

func TestBulkReassignProjectNoOps(t *testing.T) {
	var syncCalls int
	s := seeded(t, WithSync(func(context.Context, []core.Transaction) error {
		syncCalls++
		return nil
	}))

	if count, _ := s.BulkReassignProject(context.Background(), nil, "NewProj"); count != 0 {
		t.Fatalf("empty ids count = %d, want 0", count)
	}
	if count, _ := s.BulkReassignProject(context.Background(), []string{"1"}, "   "); count != 0 {
		t.Fatalf("blank target count = %d, want 0", count)
	}
	if count, err := s.BulkReassignProject(context.Background(), []string{"ghost"}, "NewProj"); err != nil || count != 1 {
		t.Fatalf("unmatched ids: count = %d, err = %v", count, err)
	}
	if syncCalls != 0 {
		t.Fatalf("sync calls = %d, want 0 for no-ops and unmatched ids", syncCalls)
	}
}

func TestBulkReassignProjectSyncFailureKeepsLocalChange(t *testing.T) {
	syncErr := errors.New("remote down")
	s := seeded(t, WithSync(func(context.Context, []core.Transaction) error {
		return syncErr
	}))

	count, err := s.BulkReassignProject(context.Background(), []string{"1"}, "NewProj")
	if !errors.Is(err, syncErr) {
		t.Fatalf("err = %v, want wrapped sync error", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if got := s.Snapshot()[0].Project; got != "NewProj" {
		t.Fatalf("local change rolled back: %q", got)
	}
}
