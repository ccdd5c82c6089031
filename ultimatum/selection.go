package ultimatum

import (
	"fmt"
	"math/rand"
	"sort"
)

// evolvable is anything natural selection can rank, clone and mutate.
type evolvable[T any] interface {
	Fitness() float64
	ResetFitness()
	Mutate(alpha float64, rng *rand.Rand)
	Clone() T
}

// cullCount is the number of members removed from a pool of size n.
func cullCount(n int, cullingRatio float64) int {
	return int(float64(n) * cullingRatio)
}

// naturalSelection lets the weakest part of a pool die and breeds the
// survivors back to the original size.
//
//  1. Stable sort descending by fitness; ties keep their relative order.
//  2. Drop the last floor(n*cullingRatio) members.
//  3. Append mutated clones of uniformly drawn survivors until size n.
//  4. Reset every member's fitness.
//
// The returned slice reuses the backing array of members.
func naturalSelection[T evolvable[T]](members []T, cullingRatio, mutationStrength float64, rng *rand.Rand) []T {
	size := len(members)
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Fitness() > members[j].Fitness()
	})

	survivors := members[:size-cullCount(size, cullingRatio)]
	if len(survivors) == 0 {
		return members
	}

	next := survivors
	for len(next) < size {
		child := survivors[rng.Intn(len(survivors))].Clone()
		child.Mutate(mutationStrength, rng)
		next = append(next, child)
	}
	if len(next) != size {
		panic(fmt.Sprintf("ultimatum: selection changed pool size from %d to %d", size, len(next)))
	}

	for _, m := range next {
		m.ResetFitness()
	}
	return next
}
