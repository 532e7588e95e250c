package selector

import (
	"bandit/experiments/metrics"
	"bandit/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// DefaultSeed re-seeds the random source at the start of every game.
const DefaultSeed = 42

var (
	// ErrNoSession is returned for a step >= 1 before any step 0 was seen.
	ErrNoSession = errors.New("no game in progress")
	// ErrStepOutOfOrder is returned when a step does not follow the recorded history.
	ErrStepOutOfOrder = errors.New("step out of order")
)

type Option func(s *Selector)

// Selector picks the next arm from the running statistics of one game.
// It is not safe for concurrent use.
type Selector struct {
	session      *Session
	seed         uint64
	src          rand.Source
	thompsonStep int
	metrics      metrics.Collector
	logger       zerolog.Logger
}

func WithSeed(seed uint64) Option {
	return func(s *Selector) {
		s.seed = seed
	}
}

// WithThompsonStep sets the step after which sampled scoring replaces the
// deterministic one when no streak applies.
func WithThompsonStep(step int) Option {
	return func(s *Selector) {
		if step > 0 {
			s.thompsonStep = step
		}
	}
}

func WithMetrics() Option {
	return func(s *Selector) {
		s.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Selector) {
		s.logger = logger
	}
}

// WithSession resumes from an existing session instead of waiting for step 0.
func WithSession(session *Session) Option {
	return func(s *Selector) {
		s.session = session
	}
}

func NewSelector(options ...Option) *Selector {
	s := &Selector{ // Default values
		seed:         DefaultSeed,
		thompsonStep: ThompsonStep,
		metrics:      metrics.NewDummyCollector(),
		logger:       zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	s.src = rand.NewSource(s.seed)
	if s.session != nil {
		s.metrics.Start()
	}
	return s
}

// Session returns the live session, or nil before the first game starts.
func (s *Selector) Session() *Session {
	return s.session
}

// Metrics returns the decision counts of the current game.
func (s *Selector) Metrics() metrics.DecisionMetric {
	return s.metrics.Complete()
}

// ChooseArm folds the observation into the session and returns the arm to pull
// next. On error the session is left untouched and the arm is -1.
func (s *Selector) ChooseArm(obs game.Observation, config game.Configuration) (int, error) {
	if err := obs.Validate(config); err != nil {
		return -1, err
	}

	if obs.IsFirstStep() {
		s.reset(config.BanditCount)
		s.record(obs.Step, 0, metrics.Opening)
		return 0, nil
	}

	if err := s.check(obs, config); err != nil {
		return -1, err
	}

	selfArm := obs.SelfAction()
	opponentArm := obs.OpponentAction()
	delta := s.session.observe(obs.Step, obs.Reward, selfArm, opponentArm)

	arm, branch := s.decide(obs.Step, delta, selfArm, opponentArm)
	s.record(obs.Step, arm, branch)
	return arm, nil
}

func (s *Selector) reset(armCount int) {
	s.session = NewSession(armCount)
	s.src.Seed(s.seed)
	s.metrics.Start()
}

func (s *Selector) check(obs game.Observation, config game.Configuration) error {
	if s.session == nil {
		return errors.Wrapf(ErrNoSession, "step %d", obs.Step)
	}
	if s.session.ArmCount() != config.BanditCount {
		return errors.Wrapf(game.ErrInvalidObservation, "bandit count %d does not match the %d arms of the game", config.BanditCount, s.session.ArmCount())
	}
	if want := s.session.Steps() + 1; obs.Step != want {
		return errors.Wrapf(ErrStepOutOfOrder, "got step %d, want %d", obs.Step, want)
	}
	if obs.Reward < s.session.Reward() {
		return errors.Wrapf(game.ErrInvalidObservation, "reward dropped from %v to %v", s.session.Reward(), obs.Reward)
	}
	return nil
}

func (s *Selector) decide(step int, delta float64, selfArm, opponentArm int) (int, metrics.Branch) {
	// Exploit a rewarded arm unconditionally
	if delta > 0 {
		return selfArm, metrics.RepeatWin
	}

	arms := s.session.arms
	// Not enough history for streaks
	if step < StreakDecisionStep {
		return scoreUCB(arms), metrics.UCB
	}

	if repeated(s.session.self, StreakWindow) {
		if s.flip(selfArm) {
			return selfArm, metrics.RepeatStreak
		}
		if step > s.thompsonStep {
			return scoreTS(arms, s.src), metrics.Thompson
		}
		return scoreUCB(arms), metrics.UCB
	}

	if step > s.thompsonStep {
		return scoreTS(arms, s.src), metrics.Thompson
	}

	if repeated(s.session.opponent, StreakWindow) && opponentArm != selfArm {
		if s.flip(opponentArm) {
			return opponentArm, metrics.FollowOpponent
		}
	}
	return scoreUCB(arms), metrics.UCB
}

// flip draws from the arm's posterior and reports whether it favours the arm.
func (s *Selector) flip(arm int) bool {
	return sample(s.session.arms[arm], s.src) > RepeatThreshold
}

func (s *Selector) record(step, arm int, branch metrics.Branch) {
	s.metrics.Add(branch)
	s.logger.Debug().
		Int("step", step).
		Int("arm", arm).
		Stringer("branch", branch).
		Msg("chose arm")
}
