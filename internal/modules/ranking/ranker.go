// Package ranking orders clouds by distance to a reference point.
package ranking

import (
	"cloudpicker/internal/modules/cloud"
	"cloudpicker/internal/modules/geo"
	"cloudpicker/internal/types"
)

// Distance is an optional kilometre value. Valid is false when no distance
// could be computed; a Valid zero is a real zero.
type Distance struct {
	Km    float64
	Valid bool
}

// Ranked pairs a cloud with its distance from the last reference point.
type Ranked struct {
	Cloud    cloud.Cloud
	Distance Distance
}

// Measure computes the distance from c to ref. Clouds with coordinates
// outside the valid ranges get no distance.
func Measure(c cloud.Cloud, ref types.Coordinate) Distance {
	coord := c.Coordinate()
	if !geo.Valid(coord) {
		return Distance{}
	}
	return Distance{Km: geo.Distance(coord, ref), Valid: true}
}

// DistanceTo is Measure against an optional position.
func DistanceTo(c cloud.Cloud, pos types.UserPosition) Distance {
	ref, ok := pos.Get()
	if !ok {
		return Distance{}
	}
	return Measure(c, ref)
}

// Rank returns clouds ordered by distance to ref. The input slice is left
// untouched; distances live only in the returned slice.
//
// Ordering: an entry without a distance goes before the one it is compared
// with; otherwise ascending distance. Equal keys keep input order.
func Rank(clouds []cloud.Cloud, ref types.Coordinate) []Ranked {
	out := make([]Ranked, len(clouds))
	for i, c := range clouds {
		out[i] = Ranked{Cloud: c, Distance: Measure(c, ref)}
	}
	sortStable(out, func(a, b Ranked) bool { return compare(a.Distance, b.Distance) < 0 })
	return out
}

// Nearest returns the first cloud of Rank. It reports false when there are
// no clouds or the position is unknown.
func Nearest(clouds []cloud.Cloud, pos types.UserPosition) (Ranked, bool) {
	ref, ok := pos.Get()
	if !ok || len(clouds) == 0 {
		return Ranked{}, false
	}
	return Rank(clouds, ref)[0], true
}

func compare(a, b Distance) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	case a.Km < b.Km:
		return -1
	case a.Km > b.Km:
		return 1
	}
	return 0
}

// sortStable performs an insertion sort (fine for small N). An element only
// moves left past strictly greater neighbours, so ties keep their order.
func sortStable[T any](items []T, less func(a, b T) bool) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && less(key, items[j]) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
