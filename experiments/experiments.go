package experiments

import (
	"context"
	"time"

	"bandit/agent"
	"bandit/config"
	"bandit/engine"
	"bandit/experiments/metrics"
	"bandit/selector"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	SelectorKind = "selector"
	RandomKind   = "random"
)

// Agents returns the agents of a run: the configured selector, a random
// baseline and a second selector with a different seed.
func Agents(cfg *config.Config) []metrics.AgentConfig {
	return []metrics.AgentConfig{
		{ID: 0, Kind: SelectorKind, Seed: cfg.Seed, ThompsonStep: cfg.ThompsonStep},
		{ID: 1, Kind: RandomKind, Seed: cfg.Seed + 1},
		{ID: 2, Kind: SelectorKind, Seed: cfg.Seed + 2, ThompsonStep: cfg.ThompsonStep},
	}
}

// MatchUps pairs the configured selector against every other agent.
func MatchUps(configs []metrics.AgentConfig) [][]metrics.AgentConfig {
	matchUps := [][]metrics.AgentConfig{}
	for _, opponent := range configs[1:] {
		matchUps = append(matchUps, []metrics.AgentConfig{configs[0], opponent})
	}
	return matchUps
}

// Run plays every matchup and stores the records. It returns the directory the
// records were written to.
func Run(ctx context.Context, cfg *config.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", errors.Wrap(err, "invalid configuration")
	}

	runID := uuid.New()
	configs := Agents(cfg)
	matchUps := MatchUps(configs)

	count := 0
	gameRecords := []metrics.GameRecord{}
	decisionRecords := []metrics.DecisionRecord{}
	start := time.Now()

	log.Info().Msgf("starting %s experiment %s...", cfg.Name, runID)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		for i := 0; i < cfg.Games; i++ {
			// Alternate seats so neither agent always plays first
			seats := []metrics.AgentConfig{matchUp[0], matchUp[1]}
			if i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}

			count++
			gameMetric, decisionMetrics, err := runGame(ctx, cfg, seats, cfg.Seed+uint64(count))
			if err != nil {
				return "", errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     seats[0].ID,
				Agent2:     seats[1].ID,
				GameMetric: gameMetric,
			})
			for seat, dm := range decisionMetrics {
				if seats[seat].Kind != SelectorKind {
					continue
				}
				decisionRecords = append(decisionRecords, metrics.DecisionRecord{
					Game:           count,
					Player:         seat,
					Agent:          seats[seat].ID,
					DecisionMetric: dm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with rewards %v", mi+1, len(matchUps), i+1, gameMetric.Rewards)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	end := time.Now()
	log.Info().Msgf("completed %s experiment", cfg.Name)

	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name, runID)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}
	if err := store(writer, cfg, runID, start, end, configs, gameRecords, decisionRecords); err != nil {
		return "", err
	}

	return writer.BaseDir(), nil
}

func store(writer *metrics.Writer, cfg *config.Config, runID uuid.UUID, start, end time.Time,
	configs []metrics.AgentConfig, games []metrics.GameRecord, decisions []metrics.DecisionRecord) error {
	setup := metrics.Setup{
		RunID:       runID,
		Name:        cfg.Name,
		NumGames:    cfg.Games,
		Steps:       cfg.Steps,
		BanditCount: cfg.BanditCount,
		Decay:       cfg.Decay,
		StartTime:   start,
		EndTime:     end,
		Duration:    end.Sub(start),
	}
	if err := writer.WriteSetup(setup); err != nil {
		return errors.Wrap(err, "failed to store setup")
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return errors.Wrap(err, "failed to store agent configs")
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return errors.Wrap(err, "failed to write game records")
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteDecisionRecords(decisions); err != nil {
		return errors.Wrap(err, "failed to write decision records")
	}
	log.Info().Msg("stored decision records")
	return nil
}

// runGame plays a single game and returns its metrics plus the decision
// metrics of each seat.
func runGame(ctx context.Context, cfg *config.Config, seats []metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.DecisionMetric, error) {
	agents := make([]agent.Agent, len(seats))
	selectors := make([]*selector.Selector, len(seats))
	for i, seat := range seats {
		switch seat.Kind {
		case SelectorKind:
			selectors[i] = createSelector(seat)
			agents[i] = selectors[i]
		case RandomKind:
			agents[i] = agent.NewRandomAgent(seat.Seed)
		default:
			return metrics.GameMetric{}, nil, errors.Errorf("unknown agent kind %q", seat.Kind)
		}
	}

	e := engine.LocalEngine(agents,
		engine.WithSteps(cfg.Steps),
		engine.WithBanditCount(cfg.BanditCount),
		engine.WithDecay(cfg.Decay),
		engine.WithSeed(seed),
	)
	gameMetric, err := e.Run(ctx)
	if err != nil {
		return gameMetric, nil, err
	}

	decisionMetrics := make([]metrics.DecisionMetric, len(seats))
	for i, s := range selectors {
		if s != nil {
			decisionMetrics[i] = s.Metrics()
		}
	}
	return gameMetric, decisionMetrics, nil
}

func createSelector(seat metrics.AgentConfig) *selector.Selector {
	options := []selector.Option{
		selector.WithSeed(seat.Seed),
		selector.WithMetrics(),
		selector.WithLogger(log.Logger),
	}
	if seat.ThompsonStep > 0 {
		options = append(options, selector.WithThompsonStep(seat.ThompsonStep))
	}
	return selector.NewSelector(options...)
}
