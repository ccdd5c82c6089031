package ultimatum

import (
	"fmt"
	"math/rand"
)

// Play runs one ultimatum round. The proposer offers a share of a unit pie;
// if the responder accepts, the proposer keeps 1-proposal and the responder
// receives proposal. A rejected offer leaves both fitness values untouched.
//
// A proposal outside [0,1] means a broken strategy and panics.
func Play(p Proposer, r Responder, rng *rand.Rand) (proposal float64, accepted bool) {
	proposal = p.Propose(rng)
	if !(proposal >= 0 && proposal <= 1) {
		panic(fmt.Sprintf("ultimatum: %s proposed %v, outside [0,1]", p.Kind(), proposal))
	}
	accepted = r.Respond(proposal, rng)
	if accepted {
		p.AddFitness(1 - proposal)
		r.AddFitness(proposal)
	}
	return proposal, accepted
}
