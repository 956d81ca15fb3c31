package scenes

import (
	"context"
	"errors"
	"image/color"
	"sync"

	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/network"
	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/automoto/gradius/systems"
	"github.com/automoto/gradius/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// LeaderboardScene lists the high scores and submits a pending score.
type LeaderboardScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	boardUI      *ui.LeaderboardUI
	client       *network.LeaderboardClient
	pendingScore int
	once         sync.Once
	shouldGoBack bool

	mu     sync.Mutex
	result requestResult
	done   bool
}

// requestResult is handed from a request goroutine to Update.
type requestResult struct {
	res       network.Result
	err       error
	submitted bool
	ownID     int64
}

// NewLeaderboardScene creates the scene. A positive score offers it for
// submission.
func NewLeaderboardScene(sc SceneChanger, score int) *LeaderboardScene {
	return &LeaderboardScene{
		sceneChanger: sc,
		pendingScore: score,
		client: network.NewLeaderboardClient(
			cfg.Network.LeaderboardURL,
			cfg.Network.RequestTimeout,
			systems.LeaderboardCache{},
		),
	}
}

func (s *LeaderboardScene) Update() {
	s.once.Do(s.configure)

	s.ecsWorld.Update()
	s.boardUI.Update()

	// Apply request results on the main goroutine
	s.mu.Lock()
	if s.done {
		r := s.result
		s.done = false
		s.mu.Unlock()
		s.applyResult(r)
	} else {
		s.mu.Unlock()
	}

	if s.shouldGoBack {
		systems.PlaySFX(s.ecsWorld, cfg.SoundMenuSelect)
		s.sceneChanger.ChangeScene(NewMenuScene(s.sceneChanger))
	}
}

func (s *LeaderboardScene) applyResult(r requestResult) {
	s.boardUI.SetBusy(false)
	if r.err != nil {
		s.boardUI.SetStatus(r.err.Error())
		return
	}
	if r.submitted {
		s.boardUI.LockSubmit()
	}

	s.boardUI.SetEntries(r.res.Entries, r.ownID)
	switch {
	case r.res.Offline:
		s.boardUI.SetStatus("Leaderboard offline, showing local scores")
	case r.submitted && !r.res.Placed:
		s.boardUI.SetStatus("Score submitted, but it did not make the top ten")
	case r.submitted:
		s.boardUI.SetStatus("Score submitted!")
	default:
		s.boardUI.SetStatus("")
	}
}

func (s *LeaderboardScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{5, 5, 20, 255})

	if s.ecsWorld == nil {
		return
	}

	s.boardUI.UI.Draw(screen)
}

func (s *LeaderboardScene) configure() {
	s.ecsWorld = ecs.NewECS(donburi.NewWorld())
	s.ecsWorld.AddSystem(systems.UpdateAudio)

	boardUI, err := ui.NewLeaderboardUI(
		s.pendingScore,
		systems.LoadProfile().Name,
		func(name string) { s.submit(name) },
		func() { s.fetch() },
		func() { s.shouldGoBack = true },
	)
	if err != nil {
		log.Fatal().Err(err).Str("component", "client").Msg("could not build leaderboard screen")
	}
	s.boardUI = boardUI

	// Show the cached table until the service answers
	s.boardUI.SetEntries(systems.CachedLeaderboard(), 0)
	s.fetch()
}

func (s *LeaderboardScene) fetch() {
	s.boardUI.SetStatus("Fetching scores...")
	s.boardUI.SetBusy(true)

	go func() {
		s.finish(requestResult{res: s.client.Fetch(context.Background())})
	}()
}

func (s *LeaderboardScene) submit(name string) {
	s.boardUI.SetStatus("Submitting...")
	s.boardUI.SetBusy(true)
	systems.SavePlayerName(name)

	score := s.pendingScore
	go func() {
		res, err := s.client.Submit(context.Background(), name, score)
		if err != nil {
			var verr *leaderboard.ValidationError
			if !errors.As(err, &verr) {
				log.Warn().Err(err).Str("component", "client").Msg("score submission failed")
			}
			s.finish(requestResult{err: err})
			return
		}
		s.finish(requestResult{
			res:       res,
			submitted: true,
			ownID:     ownEntryID(res.Entries, name, score),
		})
	}()
}

func (s *LeaderboardScene) finish(r requestResult) {
	s.mu.Lock()
	s.result = r
	s.done = true
	s.mu.Unlock()
}

// ownEntryID finds the newest row matching the submission.
func ownEntryID(entries []leaderboard.Entry, name string, score int) int64 {
	var id int64
	for _, e := range entries {
		if e.Name == name && e.Score == score && e.ID > id {
			id = e.ID
		}
	}
	return id
}
