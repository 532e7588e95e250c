package engine

import (
	"context"
	"time"

	"bandit/agent"
	"bandit/experiments/metrics"
	"bandit/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(e *localEngine)

type localEngine struct {
	agents      []agent.Agent
	steps       int
	banditCount int
	decay       float64
	seed        uint64
}

func WithSteps(steps int) Option {
	return func(e *localEngine) {
		if steps > 0 {
			e.steps = steps
		}
	}
}

func WithBanditCount(count int) Option {
	return func(e *localEngine) {
		if count > 0 {
			e.banditCount = count
		}
	}
}

func WithDecay(decay float64) Option {
	return func(e *localEngine) {
		if decay > 0 && decay <= 1 {
			e.decay = decay
		}
	}
}

// WithSeed fixes the hidden thresholds and reward draws of the game.
func WithSeed(seed uint64) Option {
	return func(e *localEngine) {
		e.seed = seed
	}
}

// LocalEngine sets up a two player game in which every arm pays out with a
// hidden probability that shrinks each time the arm is pulled.
func LocalEngine(agents []agent.Agent, options ...Option) Engine {
	if len(agents) != game.NumPlayers {
		panic("need exactly two agents")
	}

	e := &localEngine{ // Default values
		agents:      agents,
		steps:       DefaultSteps,
		banditCount: DefaultBanditCount,
		decay:       DefaultDecay,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *localEngine) Run(ctx context.Context) (metrics.GameMetric, error) {
	metric := metrics.GameMetric{StartTime: time.Now()}
	rng := rand.New(rand.NewSource(e.seed))
	config := game.Configuration{BanditCount: e.banditCount}

	thresholds := make([]float64, e.banditCount)
	for i := range thresholds {
		thresholds[i] = rng.Float64()
	}

	rewards := make([]float64, game.NumPlayers)
	var lastActions []int
	for step := 0; step < e.steps; step++ {
		if err := ctx.Err(); err != nil {
			return metric, errors.Wrapf(err, "game stopped at step %d", step)
		}

		actions := make([]int, game.NumPlayers)
		for player, a := range e.agents {
			obs := game.Observation{Step: step, Reward: rewards[player], AgentIndex: player}
			if step > 0 {
				obs.LastActions = append([]int(nil), lastActions...)
			}

			arm, err := a.ChooseArm(obs, config)
			if err != nil {
				return metric, errors.Wrapf(err, "player %d at step %d", player, step)
			}
			if arm < 0 || arm >= e.banditCount {
				return metric, errors.Wrapf(ErrIllegalArm, "player %d chose arm %d at step %d", player, arm, step)
			}
			actions[player] = arm
		}

		// Rewards use the thresholds from before this step's pulls
		for player, arm := range actions {
			if rng.Float64() < thresholds[arm] {
				rewards[player]++
			}
		}
		for _, arm := range actions {
			thresholds[arm] *= e.decay
		}

		lastActions = actions
		metric.Steps++
	}

	metric.EndTime = time.Now()
	metric.Duration = metric.EndTime.Sub(metric.StartTime)
	metric.Rewards = rewards
	metric.Winner = winner(rewards)

	log.Debug().Msgf("game over after %d steps with rewards %v", metric.Steps, rewards)
	return metric, nil
}
