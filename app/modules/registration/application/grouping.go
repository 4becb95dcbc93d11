package registrationservice

import (
	"sort"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
)

// GroupByTable buckets registrations by table preference in ascending table order.
// Within a bucket, guests are ordered by seat preference (unset last), then id.
// Guests without a table preference form a trailing bucket with a nil table number.
func GroupByTable(regs []registrationdb.Registration) []TableGroup {
	buckets := make(map[int][]registrationdb.Registration)
	var unassigned []registrationdb.Registration
	for _, r := range regs {
		if r.TablePreference == nil {
			unassigned = append(unassigned, r)
			continue
		}
		buckets[*r.TablePreference] = append(buckets[*r.TablePreference], r)
	}

	tables := make([]int, 0, len(buckets))
	for t := range buckets {
		tables = append(tables, t)
	}
	sort.Ints(tables)

	groups := make([]TableGroup, 0, len(tables)+1)
	for _, t := range tables {
		members := buckets[t]
		sortBySeat(members)
		table := t
		groups = append(groups, TableGroup{TableNumber: &table, Registrations: members})
	}
	if len(unassigned) > 0 {
		sortBySeat(unassigned)
		groups = append(groups, TableGroup{Registrations: unassigned})
	}
	return groups
}

func sortBySeat(regs []registrationdb.Registration) {
	sort.SliceStable(regs, func(i, j int) bool {
		a, b := regs[i].SeatPreference, regs[j].SeatPreference
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return regs[i].ID < regs[j].ID
	})
}
