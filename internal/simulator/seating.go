package simulator

import (
	"fmt"
	"sort"

	"github.com/chrisdamba/lunchrush/internal/models"
)

// SeatingPolicy orders the tables to try for a party, most preferred first.
// It must not modify the tables.
type SeatingPolicy func(tables []*models.Table, party *models.Customer) []*models.Table

// BestFit tries the smallest tables first so large tables stay open for
// large parties.
func BestFit(tables []*models.Table, _ *models.Customer) []*models.Table {
	ordered := copyTables(tables)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Capacity < ordered[j].Capacity
	})
	return ordered
}

// FirstFit tries tables in the order the restaurant set them up.
func FirstFit(tables []*models.Table, _ *models.Customer) []*models.Table {
	return copyTables(tables)
}

// LargestFirst tries the biggest tables first.
func LargestFirst(tables []*models.Table, _ *models.Customer) []*models.Table {
	ordered := copyTables(tables)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Capacity > ordered[j].Capacity
	})
	return ordered
}

func SeatingPolicyByName(name string) (SeatingPolicy, error) {
	switch name {
	case models.SeatingPolicyBestFit, "":
		return BestFit, nil
	case models.SeatingPolicyFirstFit:
		return FirstFit, nil
	case models.SeatingPolicyLargestFirst:
		return LargestFirst, nil
	default:
		return nil, fmt.Errorf("unknown seating policy: %s", name)
	}
}

func copyTables(tables []*models.Table) []*models.Table {
	out := make([]*models.Table, len(tables))
	copy(out, tables)
	return out
}
