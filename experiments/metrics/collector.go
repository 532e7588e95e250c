package metrics

import "time"

// Branch names the rule of the decision tree that produced an arm.
type Branch int

const (
	Opening        Branch = iota // Step 0
	RepeatWin                    // Last pull was rewarded
	UCB                          // Deterministic scoring
	Thompson                     // Sampled scoring
	RepeatStreak                 // Kept a streak of own choices
	FollowOpponent               // Copied an opponent streak
	numBranches
)

func (b Branch) String() string {
	switch b {
	case Opening:
		return "opening"
	case RepeatWin:
		return "repeat_win"
	case UCB:
		return "ucb"
	case Thompson:
		return "thompson"
	case RepeatStreak:
		return "repeat_streak"
	case FollowOpponent:
		return "follow_opponent"
	default:
		return "unknown"
	}
}

// Branches lists every branch in declaration order.
func Branches() []Branch {
	branches := make([]Branch, 0, numBranches)
	for b := Opening; b < numBranches; b++ {
		branches = append(branches, b)
	}
	return branches
}

type GameMetric struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Steps     int
	Rewards   []float64 // Cumulative reward per player
	Winner    int       // Player index, -1 for a draw
}

type DecisionMetric struct {
	StartTime time.Time
	Duration  time.Duration
	Decisions int
	counts    [numBranches]int
}

// Count returns how many decisions were made by branch b.
func (m DecisionMetric) Count(b Branch) int {
	if b < 0 || b >= numBranches {
		return 0
	}
	return m.counts[b]
}

type Collector interface {
	Start()
	Add(branch Branch)
	Complete() DecisionMetric
}

type collector struct {
	startTime time.Time
	decisions int
	counts    [numBranches]int
}

func NewCollector() Collector {
	return &collector{}
}

// Start clears the counts for a new game.
func (m *collector) Start() {
	m.startTime = time.Now()
	m.decisions = 0
	m.counts = [numBranches]int{}
}

func (m *collector) Add(branch Branch) {
	m.decisions++
	m.counts[branch]++
}

func (m *collector) Complete() DecisionMetric {
	return DecisionMetric{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Decisions: m.decisions,
		counts:    m.counts,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                   {}
func (m *dummyCollector) Add(branch Branch)        {}
func (m *dummyCollector) Complete() DecisionMetric { return DecisionMetric{} }
