package game

import (
	"math"

	"github.com/pkg/errors"
)

// Validate checks the configuration on its own.
func (c Configuration) Validate() error {
	if c.BanditCount <= 0 {
		return errors.Wrapf(ErrInvalidObservation, "bandit count %d must be positive", c.BanditCount)
	}
	return nil
}

// Validate checks the observation against the configuration. Last actions are
// only required (and only checked) from step 1 onwards.
func (o Observation) Validate(c Configuration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if o.Step < 0 {
		return errors.Wrapf(ErrInvalidObservation, "step %d is negative", o.Step)
	}
	if math.IsNaN(o.Reward) || math.IsInf(o.Reward, 0) {
		return errors.Wrapf(ErrInvalidObservation, "reward %v is not finite", o.Reward)
	}
	if o.Reward < 0 {
		return errors.Wrapf(ErrInvalidObservation, "reward %v is negative", o.Reward)
	}
	if o.AgentIndex < 0 || o.AgentIndex >= NumPlayers {
		return errors.Wrapf(ErrInvalidObservation, "agent index %d is not 0 or 1", o.AgentIndex)
	}
	if o.IsFirstStep() {
		return nil
	}

	if len(o.LastActions) != NumPlayers {
		return errors.Wrapf(ErrInvalidObservation, "step %d has %d last actions, want %d", o.Step, len(o.LastActions), NumPlayers)
	}
	for player, arm := range o.LastActions {
		if arm < 0 || arm >= c.BanditCount {
			return errors.Wrapf(ErrInvalidObservation, "player %d pulled arm %d outside [0, %d)", player, arm, c.BanditCount)
		}
	}
	return nil
}
