package ultimatum

import (
	"fmt"
	"math/rand"
)

// Role tags a strategy as one side of the bargain.
type Role int

const (
	RoleProposer Role = iota
	RoleResponder
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleProposer:
		return "proposer"
	case RoleResponder:
		return "responder"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Strategy is the behaviour shared by every proposer and responder variant.
// Each strategy owns its parameters and a fitness accumulator that is reset
// to zero at the end of every generation.
type Strategy interface {
	// Kind is the registry name of the concrete variant, e.g. "threshold_proposer".
	Kind() string
	Role() Role
	Fitness() float64
	AddFitness(delta float64)
	ResetFitness()
	// Mutate perturbs the parameters with Gaussian noise scaled by alpha and
	// clamps them back into the variant's domain.
	Mutate(alpha float64, rng *rand.Rand)
}

// Proposer produces an offer in [0,1]: the share it proposes to hand over.
type Proposer interface {
	Strategy
	Propose(rng *rand.Rand) float64
	// Clone returns an independent copy sharing no mutable state with the receiver.
	Clone() Proposer
}

// Responder accepts or rejects an offer in [0,1].
type Responder interface {
	Strategy
	Respond(proposal float64, rng *rand.Rand) bool
	// Clone returns an independent copy sharing no mutable state with the receiver.
	Clone() Responder
}

// fitness is embedded by every variant.
type fitness struct {
	value float64
}

func (f *fitness) Fitness() float64         { return f.value }
func (f *fitness) AddFitness(delta float64) { f.value += delta }
func (f *fitness) ResetFitness()            { f.value = 0 }
