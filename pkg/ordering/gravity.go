package ordering

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Unit is a movable block of the left column: a connected group under a
// synthetic id, with its members already in internal order.
type Unit struct {
	ID      int
	Members []int
}

// GravitySort orders units by barycenter and concatenates their members.
//
// A unit's barycenter is the mean index, within virtual, of the slots it
// is related to. Units without relations get the mean index of virtual,
// (len-1)/2, or 0 when virtual is empty. The sort is stable, so ties keep
// the input order of units.
func GravitySort(units []Unit, virtual []int, rels []Relation) []int {
	pos := make(map[int]float64, len(virtual))
	for i, id := range virtual {
		pos[id] = float64(i)
	}
	targets := make(map[int][]float64, len(units))
	for _, r := range rels {
		if p, ok := pos[r.To]; ok {
			targets[r.From] = append(targets[r.From], p)
		}
	}

	fallback := 0.0
	if len(virtual) > 0 {
		fallback = float64(len(virtual)-1) / 2
	}

	type scored struct {
		unit Unit
		bary float64
	}
	scoredUnits := make([]scored, len(units))
	for i, u := range units {
		b := fallback
		if t := targets[u.ID]; len(t) > 0 {
			b = stat.Mean(t, nil)
		}
		scoredUnits[i] = scored{unit: u, bary: b}
	}
	slices.SortStableFunc(scoredUnits, func(a, b scored) int { return cmp.Compare(a.bary, b.bary) })

	var out []int
	for _, s := range scoredUnits {
		out = append(out, s.unit.Members...)
	}
	return out
}
