package agent

import (
	"bandit/game"
	"bandit/selector"
)

type Agent interface {
	// ChooseArm returns the arm to pull for the observation, or an error if the
	// observation breaks the harness contract
	ChooseArm(obs game.Observation, config game.Configuration) (int, error)
}

// NewSelectorAgent returns the streak-aware bandit policy as an agent.
func NewSelectorAgent(options ...selector.Option) *selector.Selector {
	return selector.NewSelector(options...)
}

var _ Agent = (*selector.Selector)(nil)
