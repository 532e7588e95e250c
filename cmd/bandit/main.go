package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bandit/config"
	"bandit/experiments"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "bandit",
	Short: "Streak-aware multi-armed bandit agent",
	Long: `Agent for the two player multi-armed bandit game.

Each step the agent sees its own and the opponent's last pull together with its
cumulative reward, and answers with the next arm to pull.`,
	SilenceUsage: true,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play local games against baseline agents and record the results",
	RunE:  runPlay,
}

func init() {
	flags := playCmd.Flags()
	flags.String("config", "", "Optional config file (yaml, json or toml)")

	// Experiment settings
	flags.StringVar(&cfg.Name, "name", cfg.Name, "Experiment name")
	flags.IntVar(&cfg.Games, "games", cfg.Games, "Games per matchup")
	flags.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Directory to write records to")

	// Game settings
	flags.IntVar(&cfg.Steps, "steps", cfg.Steps, "Steps per game")
	flags.IntVar(&cfg.BanditCount, "arms", cfg.BanditCount, "Number of arms")
	flags.Float64Var(&cfg.Decay, "decay", cfg.Decay, "Payout decay applied on every pull")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Base seed for agents and games")

	// Selector settings
	flags.IntVar(&cfg.ThompsonStep, "thompson-step", cfg.ThompsonStep, "Step after which sampled scoring is used")

	// Logging
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	// Bind flags to viper for config file and environment variable support
	for key, flag := range map[string]string{
		"name":          "name",
		"games":         "games",
		"out":           "out",
		"steps":         "steps",
		"arms":          "arms",
		"decay":         "decay",
		"seed":          "seed",
		"thompson_step": "thompson-step",
		"log_level":     "log-level",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("BANDIT")
	viper.AutomaticEnv()

	rootCmd.AddCommand(playCmd)
}

func loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrap(err, "failed to read config file")
		}
	}
	if err := viper.Unmarshal(cfg); err != nil {
		return errors.Wrap(err, "failed to decode config")
	}
	return cfg.Validate()
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, err := experiments.Run(ctx, cfg)
	if err != nil {
		return err
	}

	log.Info().Msgf("records written to %s", dir)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
