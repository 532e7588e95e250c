package engine

import (
	"bandit/experiments/metrics"
	"context"

	"github.com/pkg/errors"
)

const DefaultSteps = 2000
const DefaultBanditCount = 100
const DefaultDecay = 0.97 // Threshold multiplier applied on every pull

// ErrIllegalArm is returned when an agent answers with an arm outside the game.
var ErrIllegalArm = errors.New("illegal arm")

type Engine interface {
	// Run plays one game to the last step and reports how it went
	Run(ctx context.Context) (metrics.GameMetric, error)
}

func winner(rewards []float64) int {
	switch {
	case rewards[0] > rewards[1]:
		return 0
	case rewards[1] > rewards[0]:
		return 1
	default:
		return -1
	}
}
