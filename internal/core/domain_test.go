package core

import (
	"math"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:      "1",
		Date:    "01.01.24",
		Name:    "Coffee",
		Amount:  15,
		Type:    "Food",
		Project: DefaultProject,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Date: "", Name: "a", Amount: 1}, ErrInvalidDate},
		{Transaction{Date: "01-01-24", Name: "a", Amount: 1}, ErrInvalidDate},
		{Transaction{Date: "01.01.24", Name: "  ", Amount: 1}, ErrEmptyName},
		{Transaction{Date: "01.01.24", Name: "a", Amount: math.NaN()}, ErrInvalidAmount},
		{Transaction{Date: "01.01.24", Name: "a", Amount: math.Inf(1)}, ErrInvalidAmount},
	}
	for i, tc := range bads {
		if err := tc.tx.Validate(); err != tc.want {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestDefectIsGlobal(t *testing.T) {
	if !(Defect{Message: "Retrieved data is not an array."}).IsGlobal() {
		t.Fatal("message-only defect should be global")
	}
	if (Defect{Index: 2, Messages: []string{"Missing date"}}).IsGlobal() {
		t.Fatal("per-item defect should not be global")
	}
}
