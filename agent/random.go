package agent

import (
	"bandit/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	seed uint64
	rng  *rand.Rand
}

// NewRandomAgent returns a baseline agent that pulls arms uniformly at random.
// Its generator is re-seeded at the start of every game.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) ChooseArm(obs game.Observation, config game.Configuration) (int, error) {
	if err := obs.Validate(config); err != nil {
		return -1, err
	}
	if obs.IsFirstStep() {
		a.rng.Seed(a.seed)
	}
	return a.rng.Intn(config.BanditCount), nil
}
