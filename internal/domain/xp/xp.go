// Package xp computes reward pools and splits them across ranked clubs.
//
// Everything here is pure: no I/O, no clock, no randomness. The same input
// always yields the same output.
package xp

import (
	"sort"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
)

const (
	// PerRankedClub is the pool contribution of every ranked club in an inter event.
	PerRankedClub = 100
	// MaxPosition bounds ranking positions so shares stay within a 32-bit award.
	MaxPosition = 10_000
)

var intraPools = map[entities.SizeCategory]int{
	entities.SizeSmall:  150,
	entities.SizeMedium: 300,
	entities.SizeLarge:  600,
}

// IntraPool returns the fixed pool of an intra event. Unknown categories get 0.
func IntraPool(size entities.SizeCategory) int {
	return intraPools[size]
}

// ProvisionalInterPool is the pool estimate stored when an inter event is
// created: the owning club plus every invited club. It is replaced at
// completion by the pool of the clubs that were actually ranked.
func ProvisionalInterPool(competingClubs int) int {
	return (competingClubs + 1) * PerRankedClub
}

// Entry is one ranked club.
type Entry struct {
	ClubID   string
	Position int
}

// Distribution is the outcome of Distribute.
type Distribution struct {
	Pool   int
	Awards map[string]int
}

// Distribute splits n*100 XP across the ranked entries with weight
// n - position + 1, rounding each share half away from zero. Whatever the
// rounding leaves over (or takes too much) goes to the best-ranked entry, so
// the awards always sum to exactly Pool.
//
// Positions must be distinct and within [1, MaxPosition]; they are not
// required to be contiguous, and a position past n yields a non-positive
// weight that is applied as is.
//
// Because the whole remainder lands on the best entry, a negative remainder
// can leave it below the runner-up: with 63 contiguous positions the winner
// gets 193 and second place 194. The sum is exact for every n.
func Distribute(entries []Entry) (Distribution, error) {
	n := len(entries)
	if n == 0 {
		return Distribution{Pool: 0, Awards: map[string]int{}}, nil
	}

	sorted := make([]Entry, n)
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].ClubID < sorted[j].ClubID
	})

	seenClub := make(map[string]struct{}, n)
	for i, e := range sorted {
		if e.Position < 1 || e.Position > MaxPosition {
			return Distribution{}, domain.Invalid("position %d of club %q is outside 1..%d", e.Position, e.ClubID, MaxPosition)
		}
		if i > 0 && sorted[i-1].Position == e.Position {
			return Distribution{}, domain.Invalid("duplicate position %d", e.Position)
		}
		if _, dup := seenClub[e.ClubID]; dup {
			return Distribution{}, domain.Invalid("club %q ranked twice", e.ClubID)
		}
		seenClub[e.ClubID] = struct{}{}
	}

	pool := n * PerRankedClub
	totalWeight := n * (n + 1) / 2

	awards := make(map[string]int, n)
	sum := 0
	for _, e := range sorted {
		weight := n - e.Position + 1
		share := roundHalfAwayFromZero(pool*weight, totalWeight)
		awards[e.ClubID] = share
		sum += share
	}
	if diff := pool - sum; diff != 0 {
		awards[sorted[0].ClubID] += diff
	}

	return Distribution{Pool: pool, Awards: awards}, nil
}

// roundHalfAwayFromZero returns num/den rounded to the nearest integer, ties
// away from zero. den must be positive.
func roundHalfAwayFromZero(num, den int) int {
	if num >= 0 {
		return (2*num + den) / (2 * den)
	}
	return -((-2*num + den) / (2 * den))
}
