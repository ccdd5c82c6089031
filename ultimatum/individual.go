package ultimatum

import (
	"fmt"
	"math/rand"
)

// Individual plays both sides of the bargain in a mono population.
type Individual struct {
	Proposer  Proposer
	Responder Responder
}

// NewIndividual pairs a proposer with a responder.
func NewIndividual(p Proposer, r Responder) *Individual {
	return &Individual{Proposer: p, Responder: r}
}

// Fitness is the sum of both roles' fitness.
func (ind *Individual) Fitness() float64 {
	return ind.Proposer.Fitness() + ind.Responder.Fitness()
}

func (ind *Individual) ResetFitness() {
	ind.Proposer.ResetFitness()
	ind.Responder.ResetFitness()
}

func (ind *Individual) Mutate(alpha float64, rng *rand.Rand) {
	ind.Proposer.Mutate(alpha, rng)
	ind.Responder.Mutate(alpha, rng)
}

func (ind *Individual) Clone() *Individual {
	return &Individual{
		Proposer:  ind.Proposer.Clone(),
		Responder: ind.Responder.Clone(),
	}
}

func (ind *Individual) String() string {
	return fmt.Sprintf("Individual(%s/%s, Fitness: %.3f)", ind.Proposer.Kind(), ind.Responder.Kind(), ind.Fitness())
}
