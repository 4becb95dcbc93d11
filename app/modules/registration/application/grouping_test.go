package registrationservice

import (
	"testing"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	"github.com/google/go-cmp/cmp"
)

func TestGroupByTable(t *testing.T) {
	regs := []registrationdb.Registration{
		{ID: 1, TablePreference: intPtr(2), SeatPreference: intPtr(3)},
		{ID: 2, TablePreference: nil},
		{ID: 3, TablePreference: intPtr(1)},
		{ID: 4, TablePreference: intPtr(2), SeatPreference: intPtr(1)},
		{ID: 5, TablePreference: intPtr(2)},
		{ID: 6, TablePreference: intPtr(2), SeatPreference: intPtr(1)},
		{ID: 7},
	}

	type bucket struct {
		Table *int
		IDs   []int64
	}
	var got []bucket
	for _, g := range GroupByTable(regs) {
		b := bucket{Table: g.TableNumber}
		for _, r := range g.Registrations {
			b.IDs = append(b.IDs, r.ID)
		}
		got = append(got, b)
	}

	want := []bucket{
		{Table: intPtr(1), IDs: []int64{3}},
		{Table: intPtr(2), IDs: []int64{4, 6, 1, 5}},
		{Table: nil, IDs: []int64{2, 7}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupByTable mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByTable_Empty(t *testing.T) {
	if groups := GroupByTable(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}
