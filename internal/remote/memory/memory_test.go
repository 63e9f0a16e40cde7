package memory

import (
	"context"
	"testing"

	"ledger/internal/payload"
)

func TestReadUnknownKey(t *testing.T) {
	s := New()

	rows, found, err := s.Read(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if found {
		t.Fatal("found = true for unwritten key")
	}
	if rows != nil {
		t.Fatalf("rows = %+v, want nil", rows)
	}
}

func TestWriteReplacesWholeCollection(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := []payload.Row{
		{Date: "01.01.24", Name: "Coffee", Amount: 3, Type: "FOOD", Project: "Budget"},
		{Date: "02.01.24", Name: "Bus", Amount: 2, Type: "TRANSPORT", Project: "Budget"},
	}
	if err := s.Write(ctx, "user@example.com", first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	second := []payload.Row{
		{Date: "03.01.24", Name: "Rent", Amount: 800, Type: "HOUSING", Project: "Home"},
	}
	if err := s.Write(ctx, "user@example.com", second); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows, found, err := s.Read(ctx, "user@example.com")
	if err != nil || !found {
		t.Fatalf("Read: found=%v err=%v", found, err)
	}
	if len(rows) != 1 || rows[0].Name != "Rent" {
		t.Fatalf("rows = %+v, want only the second write", rows)
	}
}

func TestKeysSanitizedConsistently(t *testing.T) {
	s := New()
	ctx := context.Background()

	rows := []payload.Row{{Date: "01.01.24", Name: "Coffee", Amount: 3, Type: "FOOD", Project: "Budget"}}
	if err := s.Write(ctx, "a.b@example.com", rows); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, found, err := s.Read(ctx, "a_b@example_com")
	if err != nil || !found {
		t.Fatalf("Read via sanitized key: found=%v err=%v", found, err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %+v", got)
	}
}

func TestReadReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Write(ctx, "user", []payload.Row{{Name: "Coffee", Amount: 3}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rows, _, _ := s.Read(ctx, "user")
	rows[0].Name = "Mutated"

	again, _, _ := s.Read(ctx, "user")
	if again[0].Name != "Coffee" {
		t.Fatalf("stored row mutated through read copy: %q", again[0].Name)
	}
}
