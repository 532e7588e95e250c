package game

import "github.com/pkg/errors"

// Players in a bandit game. Observation.AgentIndex is one of these.
const NumPlayers = 2

// ErrInvalidObservation marks any observation or configuration that breaks the
// harness contract. Callers should test for it with errors.Is.
var ErrInvalidObservation = errors.New("invalid observation")

// Configuration is static for the whole game.
type Configuration struct {
	BanditCount int `json:"banditCount"`
}

// Observation is what the harness hands to an agent on every step.
type Observation struct {
	Step        int     `json:"step"`
	Reward      float64 `json:"reward"` // Cumulative, tracked by the harness
	AgentIndex  int     `json:"agentIndex"`
	LastActions []int   `json:"lastActions,omitempty"` // One arm per player, present from step 1
}

// IsFirstStep reports whether the observation opens a new game.
func (o Observation) IsFirstStep() bool {
	return o.Step == 0
}

// SelfAction is the arm this agent pulled on the previous step.
func (o Observation) SelfAction() int {
	return o.LastActions[o.AgentIndex]
}

// OpponentAction is the arm the other player pulled on the previous step.
func (o Observation) OpponentAction() int {
	return o.LastActions[NumPlayers-1-o.AgentIndex]
}
