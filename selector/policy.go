package selector

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Hyperparameters for arm selection

const WinPrior = 1  // Beta prior pseudo-count for wins
const LossPrior = 1 // Beta prior pseudo-count for losses

const LossInflation = 1.03  // Losses are inflated by LossInflation^n before measuring spread
const Decay = 0.97          // Advantage is discounted by Decay^n
const OpponentPenalty = 1.5 // Subtracted once an opponent has pulled the arm at all

const RepeatThreshold = 0.5 // A Beta sample above this keeps (or copies) a streak

const StreakWindow = 3       // Identical trailing choices that count as a streak
const StreakUpdateStep = 3   // First step at which streak counters move
const StreakDecisionStep = 4 // First step at which streaks affect the decision
const ThompsonStep = 1000    // Default step after which sampling replaces the spread

// advantage is the exploitation term shared by both scoring strategies.
func advantage(a ArmStats) float64 {
	n := float64(a.Pulls())
	penalty := 0.0
	if a.OpponentPulls > 0 {
		penalty = OpponentPenalty
	}
	gain := float64(a.Wins-a.Losses+a.OpponentPulls+a.OpponentStreak) - penalty
	return gain / n * math.Pow(Decay, n)
}

// spread is the standard deviation of the arm's posterior with inflated losses.
func spread(a ArmStats) float64 {
	n := float64(a.Pulls())
	posterior := distuv.Beta{
		Alpha: float64(a.Wins),
		Beta:  float64(a.Losses) * math.Pow(LossInflation, n),
	}
	return posterior.StdDev()
}

// sample draws once from the arm's Beta(wins, losses) posterior.
func sample(a ArmStats, src rand.Source) float64 {
	posterior := distuv.Beta{
		Alpha: float64(a.Wins),
		Beta:  float64(a.Losses),
		Src:   src,
	}
	return posterior.Rand()
}

func ucbScore(a ArmStats) float64 {
	return spread(a) + advantage(a)
}

func tsScore(a ArmStats, src rand.Source) float64 {
	return sample(a, src) + advantage(a)
}

// bestArm returns the arm with the strictly greatest score. The running max
// starts at arm 0 with score 0, so ties and all-negative scores keep arm 0.
func bestArm(arms []ArmStats, score func(ArmStats) float64) int {
	best := 0
	bestScore := 0.0
	for arm, stats := range arms {
		if s := score(stats); s > bestScore {
			bestScore = s
			best = arm
		}
	}
	return best
}

func scoreUCB(arms []ArmStats) int {
	return bestArm(arms, ucbScore)
}

func scoreTS(arms []ArmStats, src rand.Source) int {
	return bestArm(arms, func(a ArmStats) float64 {
		return tsScore(a, src)
	})
}
