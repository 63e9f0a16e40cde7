package query

import (
	"reflect"
	"testing"
	"time"

	"ledger/internal/core"
)

func tx(id, date, name string, amount float64, typ, project string) core.Transaction {
	return core.Transaction{ID: id, Date: date, Name: name, Amount: amount, Type: typ, Project: project}
}

func names(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.Name
	}
	return out
}

func equalNames(got []core.Transaction, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, t := range got {
		if t.Name != want[i] {
			return false
		}
	}
	return true
}

func TestFilterSearch(t *testing.T) {
	txs := []core.Transaction{
		tx("1", "01.01.24", "Apple", 1, "Food", "Budget"),
		tx("2", "01.01.24", "Banana", 2, "Food", "Budget"),
		tx("3", "01.01.24", "Rent", 3, "Housing", "Budget"),
	}

	got := Filter(txs, Filters{Search: "ana"})
	if !equalNames(got, "Banana") {
		t.Fatalf("search %q matched %v", "ana", names(got))
	}

	// Case-insensitive, matches type and project too.
	if got := Filter(txs, Filters{Search: "HOUS"}); !equalNames(got, "Rent") {
		t.Fatalf("type search matched %v", names(got))
	}
	if got := Filter(txs, Filters{Search: "budget"}); len(got) != 3 {
		t.Fatalf("project search matched %d records", len(got))
	}
}

func TestFilterProject(t *testing.T) {
	txs := []core.Transaction{
		tx("1", "01.01.24", "A", 1, "Food", "Budget"),
		tx("2", "01.01.24", "B", 2, "Food", "Trip"),
	}
	if got := Filter(txs, Filters{Project: "Trip"}); !equalNames(got, "B") {
		t.Fatalf("project filter matched %v", names(got))
	}
	if got := Filter(txs, Filters{Project: core.AllProjects}); len(got) != 2 {
		t.Fatalf("%q sentinel should disable the filter, matched %d", core.AllProjects, len(got))
	}
}

func TestFilterDateRange(t *testing.T) {
	txs := []core.Transaction{
		tx("1", "01.01.24", "Old", 1, "", ""),
		tx("2", "15.02.24", "Mid", 2, "", ""),
		tx("3", "01.04.24", "New", 3, "", ""),
		tx("4", "garbage", "Bad", 4, "", ""),
	}
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := Filter(txs, Filters{StartDate: feb, EndDate: mar}); !equalNames(got, "Mid") {
		t.Fatalf("range filter matched %v", names(got))
	}
	// Single-sided bound; malformed dates never match once a bound is set.
	if got := Filter(txs, Filters{StartDate: feb}); !equalNames(got, "Mid", "New") {
		t.Fatalf("open-ended range matched %v", names(got))
	}
	// No bounds at all: the date filter is skipped entirely.
	if got := Filter(txs, Filters{}); len(got) != 4 {
		t.Fatalf("no filters should pass everything, matched %d", len(got))
	}
}

func TestFiltersCompose(t *testing.T) {
	txs := []core.Transaction{
		tx("1", "15.02.24", "Coffee", 1, "Food", "Budget"),
		tx("2", "15.02.24", "Coffee", 1, "Food", "Trip"),
		tx("3", "15.06.24", "Coffee", 1, "Food", "Budget"),
	}
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got := Filter(txs, Filters{Search: "coffee", StartDate: feb, EndDate: mar, Project: "Budget"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("conjunctive filters matched %v", names(got))
	}
}

func TestSortByDate(t *testing.T) {
	txs := []core.Transaction{
		tx("1", "05.03.24", "C", 1, "", ""),
		tx("2", "garbage", "X", 1, "", ""),
		tx("3", "01.01.24", "A", 1, "", ""),
		tx("4", "15.01.24", "B", 1, "", ""),
	}
	got, err := Sort(txs, SortSpec{Key: ByDate, Direction: Asc})
	if err != nil {
		t.Fatal(err)
	}
	if !equalNames(got, "X", "A", "B", "C") {
		t.Fatalf("date asc order: %v", names(got))
	}
	// Input untouched.
	if txs[0].Name != "C" {
		t.Fatal("Sort mutated its input")
	}
}

func TestSortByAmountStability(t *testing.T) {
	txs := []core.Transaction{
		tx("1", "01.01.24", "first", 5, "", ""),
		tx("2", "01.01.24", "second", 5, "", ""),
		tx("3", "01.01.24", "third", 5, "", ""),
		tx("4", "01.01.24", "big", 9, "", ""),
	}
	desc, err := Sort(txs, SortSpec{Key: ByAmount, Direction: Desc})
	if err != nil {
		t.Fatal(err)
	}
	if !equalNames(desc, "big", "first", "second", "third") {
		t.Fatalf("desc order: %v", names(desc))
	}
	asc, err := Sort(desc, SortSpec{Key: ByAmount, Direction: Asc})
	if err != nil {
		t.Fatal(err)
	}
	// Equal-amount runs come back in their previous relative order.
	if !equalNames(asc, "first", "second", "third", "big") {
		t.Fatalf("asc order after desc: %v", names(asc))
	}
}

func TestSortByNameCaseInsensitive(t *testing.T) {
	txs := []core.Transaction{
		tx("1", "01.01.24", "banana", 1, "", ""),
		tx("2", "01.01.24", "Apple", 1, "", ""),
		tx("3", "01.01.24", "cherry", 1, "", ""),
	}
	got, err := Sort(txs, SortSpec{Key: ByName})
	if err != nil {
		t.Fatal(err)
	}
	if !equalNames(got, "Apple", "banana", "cherry") {
		t.Fatalf("name order: %v", names(got))
	}
}

func TestSortUnknownKey(t *testing.T) {
	if _, err := Sort(nil, SortSpec{Key: "color"}); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
	if _, err := Sort(nil, SortSpec{Key: ByDate, Direction: "sideways"}); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestDistinctValues(t *testing.T) {
	txs := []core.Transaction{
		tx("1", "01.01.24", "Coffee", 3, "FOOD", "Budget"),
		tx("2", "02.01.24", "Bus", 2, "TRANSPORT", "Budget"),
		tx("3", "03.01.24", "Rent", 800, "HOUSING", "Home"),
		tx("4", "04.01.24", "Tea", 2, "FOOD", ""),
	}

	projects, err := DistinctValues(txs, ByProject)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(projects, []string{"Budget", "Home"}) {
		t.Fatalf("projects = %v", projects)
	}

	types, err := DistinctValues(txs, ByType)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(types, []string{"FOOD", "HOUSING", "TRANSPORT"}) {
		t.Fatalf("types = %v", types)
	}

	if _, err := DistinctValues(txs, ByAmount); err == nil {
		t.Fatal("expected error for non-label key")
	}
}

func TestDistinctValuesEmptyInput(t *testing.T) {
	values, err := DistinctValues(nil, ByProject)
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 0 {
		t.Fatalf("values = %v, want empty", values)
	}
}
