package selector

// ArmStats is the running record for one arm.
type ArmStats struct {
	Wins           int
	Losses         int
	OpponentPulls  int
	SelfStreak     int // Consecutive repeats of this arm by the agent
	OpponentStreak int
}

func newArmStats() ArmStats {
	return ArmStats{Wins: WinPrior, Losses: LossPrior}
}

// Pulls is the evidence count n used by both scoring strategies. It never drops
// below WinPrior+LossPrior.
func (a ArmStats) Pulls() int {
	return a.Wins + a.Losses + a.OpponentPulls
}

// Session is everything the selector remembers about the current game.
type Session struct {
	reward   float64
	arms     []ArmStats
	self     []int
	opponent []int
}

// NewSession returns the state of a game that has just started.
func NewSession(armCount int) *Session {
	arms := make([]ArmStats, armCount)
	for i := range arms {
		arms[i] = newArmStats()
	}
	return &Session{
		reward:   0,
		arms:     arms,
		self:     []int{},
		opponent: []int{},
	}
}

func (s *Session) ArmCount() int {
	return len(s.arms)
}

// Arm returns a copy of one arm's statistics. It panics if arm is outside
// [0, ArmCount()).
func (s *Session) Arm(arm int) ArmStats {
	return s.arms[arm]
}

// Arms returns a copy of every arm's statistics, indexed by arm.
func (s *Session) Arms() []ArmStats {
	arms := make([]ArmStats, len(s.arms))
	copy(arms, s.arms)
	return arms
}

// Reward is the last cumulative reward seen.
func (s *Session) Reward() float64 {
	return s.reward
}

// Steps is the number of updates applied since the game started.
func (s *Session) Steps() int {
	return len(s.self)
}

func (s *Session) SelfHistory() []int {
	return append([]int(nil), s.self...)
}

func (s *Session) OpponentHistory() []int {
	return append([]int(nil), s.opponent...)
}

// observe folds one step of play into the session and returns the reward
// gained on that step.
func (s *Session) observe(step int, reward float64, selfArm, opponentArm int) float64 {
	delta := reward - s.reward
	s.reward = reward

	s.self = append(s.self, selfArm)
	s.opponent = append(s.opponent, opponentArm)

	if delta > 0 {
		s.arms[selfArm].Wins++
	} else {
		s.arms[selfArm].Losses++
	}
	s.arms[opponentArm].OpponentPulls++

	if step >= StreakUpdateStep {
		if repeated(s.self, 2) {
			s.arms[selfArm].SelfStreak++
		} else {
			s.arms[selfArm].SelfStreak = 0
		}
		if repeated(s.opponent, 2) {
			s.arms[opponentArm].OpponentStreak++
		} else {
			s.arms[opponentArm].OpponentStreak = 0
		}
	}

	return delta
}

// repeated reports whether the last k entries of history are all the same arm.
func repeated(history []int, k int) bool {
	if len(history) < k {
		return false
	}
	last := history[len(history)-1]
	for _, arm := range history[len(history)-k:] {
		if arm != last {
			return false
		}
	}
	return true
}
