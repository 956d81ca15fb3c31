// Command headless plays the game with the autopilot at a fixed tick rate,
// without a window. It is used for soak testing the simulation and can post
// the final score to a leaderboard service.
package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/gradius/network"
	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/sim"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	tickRate := flag.Int("tickrate", 60, "Simulation ticks per second")
	duration := flag.Duration("duration", time.Minute, "How long to play (0 = until game over)")
	seed := flag.Uint64("seed", 0, "Random seed (0 = random)")
	stages := flag.Int("stages", 0, "Stop after clearing this many stages (0 = no limit)")
	submitURL := flag.String("submit", "", "Leaderboard URL to post the final score to")
	name := flag.String("name", "AUTO", "Name used for the submitted score")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	logger := log.With().Str("component", "headless").Logger()

	if *seed == 0 {
		*seed = rand.Uint64()
	}

	store := gamestate.New()
	simulation := sim.New(store, sim.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	runner := sim.NewRunner(simulation, sim.NewAutopilot(), *tickRate)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}
	ctx, finish := context.WithCancel(ctx)
	defer finish()

	cleared := 0
	store.OnPhaseChange(func(from, to tuning.Phase) {
		switch to {
		case tuning.PhaseStageClear:
			cleared++
			logger.Info().Int("stage", store.Stage()).Int("score", store.Score()).Msg("stage cleared")
		case tuning.PhaseGameOver:
			finish()
		}
	})

	// Continue after the tick that cleared the stage.
	runner.OnFrame = func(s *gamestate.Store) {
		if s.Phase() != tuning.PhaseStageClear {
			return
		}
		if *stages > 0 && cleared >= *stages {
			finish()
			return
		}
		s.ContinueToNextStage()
	}

	logger.Info().Uint64("seed", *seed).Int("tickRate", *tickRate).Msg("starting run")
	store.StartGame()
	runner.Run(ctx)

	logger.Info().
		Stringer("phase", store.Phase()).
		Int("stage", store.Stage()).
		Int("score", store.Score()).
		Int("lives", store.Lives()).
		Uint64("frames", simulation.Frames()).
		Strs("pendingTimers", store.PendingTimers()).
		Msg("run finished")

	if *submitURL == "" || store.Score() <= 0 {
		return
	}
	client := network.NewLeaderboardClient(*submitURL, 5*time.Second, nil)
	res, err := client.Submit(context.Background(), *name, store.Score())
	if err != nil {
		logger.Error().Err(err).Msg("score rejected")
		os.Exit(1)
	}
	logger.Info().Bool("placed", res.Placed).Bool("offline", res.Offline).Msg("score submitted")
}
