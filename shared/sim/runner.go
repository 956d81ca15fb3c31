package sim

import (
	"context"
	"time"

	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/tuning"
)

// InputSource supplies per-frame input.
type InputSource interface {
	Input(store *gamestate.Store) Input
}

// Runner steps a Simulation on a wall-clock ticker.
type Runner struct {
	sim      *Simulation
	input    InputSource
	tickRate int
	aspect   float64
	stopChan chan struct{}
	// OnFrame, if set, is called after every tick.
	OnFrame func(store *gamestate.Store)
}

// NewRunner returns a runner stepping sim at tickRate frames per second.
func NewRunner(sim *Simulation, input InputSource, tickRate int) *Runner {
	return &Runner{
		sim:      sim,
		input:    input,
		tickRate: tickRate,
		aspect:   tuning.DefaultAspect,
		stopChan: make(chan struct{}),
	}
}

// FrameDuration is the simulated length of one tick.
func (r *Runner) FrameDuration() time.Duration {
	return time.Second / time.Duration(r.tickRate)
}

// Run ticks until ctx is done or Stop is called.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.FrameDuration())
	defer ticker.Stop()

	r.sim.log.Info().Int("tickRate", r.tickRate).Msg("runner started")
	for {
		select {
		case <-ctx.Done():
			r.sim.log.Info().Uint64("frames", r.sim.Frames()).Msg("runner stopped")
			return
		case <-r.stopChan:
			r.sim.log.Info().Uint64("frames", r.sim.Frames()).Msg("runner stopped")
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Tick steps exactly one frame.
func (r *Runner) Tick() {
	store := r.sim.Store()
	r.sim.Step(r.FrameDuration(), r.input.Input(store), r.aspect)
	if r.OnFrame != nil {
		r.OnFrame(store)
	}
}

// Stop ends Run.
func (r *Runner) Stop() {
	close(r.stopChan)
}
