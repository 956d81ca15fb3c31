package sim

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/rs/zerolog"
	dmath "github.com/yohamta/donburi/features/math"
)

const frame = 16 * time.Millisecond

func newTestSim(t *testing.T) (*Simulation, *gamestate.Store) {
	t.Helper()
	store := gamestate.New(gamestate.WithLogger(zerolog.Nop()))
	store.StartGame()
	s := New(store, WithRand(rand.New(rand.NewPCG(1, 2))), WithLogger(zerolog.Nop()))
	return s, store
}

func step(s *Simulation, in Input, n int) {
	for range n {
		s.Step(frame, in, tuning.DefaultAspect)
	}
}

func TestBulletKillsSmallEnemy(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnBullet(dmath.Vec2{X: 2, Y: 0}, dmath.Vec2{X: 1}, true)
	store.SpawnEnemy(tuning.EnemySmall, dmath.Vec2{X: 2.2, Y: 0}, 1, tuning.Enemies[tuning.EnemySmall].Speed)

	step(s, Input{}, 1)

	if n := len(store.Bullets()); n != 0 {
		t.Fatalf("bullets = %d, want 0", n)
	}
	if n := len(store.Enemies()); n != 0 {
		t.Fatalf("enemies = %d, want 0", n)
	}
	if store.Score() != 100 {
		t.Fatalf("score = %d, want 100", store.Score())
	}
	if store.DefeatedEnemies() != 1 {
		t.Fatalf("defeated = %d, want 1", store.DefeatedEnemies())
	}
}

func TestBulletGrazingEnemyStillHits(t *testing.T) {
	tests := []struct {
		name   string
		bullet dmath.Vec2
		enemy  dmath.Vec2
	}{
		{"edge on", dmath.Vec2{X: 0.85}, dmath.Vec2{X: 0.75}},
		{"passing below", dmath.Vec2{X: 0.45, Y: 1.15}, dmath.Vec2{X: 0.75, Y: 0.75}},
	}
	for _, tt := range tests {
		s, store := newTestSim(t)
		store.SpawnBullet(tt.bullet, dmath.Vec2{X: 1}, true)
		store.SpawnEnemy(tuning.EnemySmall, tt.enemy, 1, 0)

		step(s, Input{}, 1)

		if n := len(store.Enemies()); n != 0 {
			t.Fatalf("%s: enemies = %d, want 0", tt.name, n)
		}
		if store.Score() != 100 {
			t.Fatalf("%s: score = %d, want 100", tt.name, store.Score())
		}
	}
}

func TestStepSkippedUnlessPlaying(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnBullet(dmath.Vec2{X: 0}, dmath.Vec2{X: 1}, true)
	store.TogglePause()

	if s.Step(frame, Input{Right: true}, tuning.DefaultAspect) {
		t.Fatal("Step ran while paused")
	}
	if b := store.Bullets()[0]; b.Position.X != 0 {
		t.Fatalf("bullet moved while paused: %+v", b.Position)
	}
	if store.Now() != 0 {
		t.Fatalf("clock advanced while paused: %v", store.Now())
	}

	store.TogglePause()
	if !s.Step(frame, Input{}, tuning.DefaultAspect) {
		t.Fatal("Step did not run after resume")
	}
}

func TestJustFiredBulletIsNotMoved(t *testing.T) {
	s, store := newTestSim(t)
	step(s, Input{Shoot: true}, 1)

	bullets := store.Bullets()
	if len(bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(bullets))
	}
	if bullets[0].Position.X != tuning.PlayerStartX+1 {
		t.Fatalf("fresh bullet x = %v, want %v", bullets[0].Position.X, tuning.PlayerStartX+1)
	}

	step(s, Input{}, 1)
	if x := store.Bullets()[0].Position.X; math.Abs(x-(tuning.PlayerStartX+1+tuning.PlayerBulletSpeed)) > 1e-9 {
		t.Fatalf("bullet x after one frame = %v", x)
	}
}

func TestShootCooldown(t *testing.T) {
	s, store := newTestSim(t)
	shots := 0
	store.Subscribe(func(ev gamestate.Event) {
		if ev.Kind == gamestate.EventShot {
			shots++
		}
	})

	step(s, Input{Shoot: true}, 13)
	if shots != 1 {
		t.Fatalf("shots in 208ms = %d, want 1", shots)
	}
	step(s, Input{Shoot: true}, 2)
	if shots != 2 {
		t.Fatalf("shots in 240ms = %d, want 2", shots)
	}
}

func TestPlayerMovementIsClamped(t *testing.T) {
	s, store := newTestSim(t)
	store.MovePlayer(8.9, 4.4)
	step(s, Input{Up: true, Right: true}, 5)
	pos := store.PlayerPosition()
	if pos.X != 9 || pos.Y != 4.5 {
		t.Fatalf("position = %+v, want {9 4.5}", pos)
	}

	s.Step(frame, Input{Down: true}, 3)
	pos = store.PlayerPosition()
	if math.Abs(pos.X-6) > 1e-9 || math.Abs(pos.Y-4.3) > 1e-9 {
		t.Fatalf("wide position = %+v, want {6 4.3}", pos)
	}

	store.MovePlayer(0, -5.9)
	s.Step(frame, Input{Down: true}, 0.5)
	pos = store.PlayerPosition()
	if pos.X != 0 || pos.Y != -6 {
		t.Fatalf("tall position = %+v, want {0 -6}", pos)
	}
}

func TestOutOfBoundsBulletRemoved(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnBullet(dmath.Vec2{X: 13.9}, dmath.Vec2{X: 1}, true)
	store.SpawnBullet(dmath.Vec2{X: 0, Y: -7.9}, dmath.Vec2{X: 0, Y: -1}, false)
	step(s, Input{}, 1)
	if n := len(store.Bullets()); n != 0 {
		t.Fatalf("bullets = %d, want 0", n)
	}
}

func TestEnemyBulletDamagesPlayer(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnBullet(dmath.Vec2{X: -7.8}, dmath.Vec2{X: -1}, false)
	store.SpawnBullet(dmath.Vec2{X: -7.7}, dmath.Vec2{X: -1}, false)

	step(s, Input{}, 1)
	if store.Lives() != 2 {
		t.Fatalf("lives = %d, want 2", store.Lives())
	}
	if !store.Invulnerable() {
		t.Fatal("expected invulnerability")
	}
	if n := len(store.Bullets()); n != 1 {
		t.Fatalf("bullets = %d, want the second bullet to pass through", n)
	}
}

func TestEnemyExitsWithoutScore(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnEnemy(tuning.EnemySmall, dmath.Vec2{X: -11.95, Y: 3}, 1, 0.08)
	step(s, Input{}, 1)
	if n := len(store.Enemies()); n != 0 {
		t.Fatalf("enemies = %d, want 0", n)
	}
	if store.Score() != 0 || store.DefeatedEnemies() != 0 {
		t.Fatal("exiting enemy awarded score")
	}
}

func TestEnemyContactTradesOneLife(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnEnemy(tuning.EnemyMedium, dmath.Vec2{X: -7.5}, 2, 0.05)
	step(s, Input{}, 1)
	if store.Lives() != 2 {
		t.Fatalf("lives = %d, want 2", store.Lives())
	}
	if n := len(store.Enemies()); n != 0 {
		t.Fatalf("enemies = %d, want 0", n)
	}
}

func TestEnemyDrift(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnEnemy(tuning.EnemyLarge, dmath.Vec2{X: 5, Y: 3}, 4, 0.03)
	step(s, Input{}, 1)
	e := store.Enemies()[0]
	if math.Abs(e.Position.X-4.97) > 1e-9 || math.Abs(e.Position.Y-2.985) > 1e-9 {
		t.Fatalf("large enemy = %+v, want {4.97 2.985}", e.Position)
	}
}

func TestLargeEnemyFires(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnEnemy(tuning.EnemyLarge, dmath.Vec2{X: 5, Y: 3}, 4, 0)
	step(s, Input{}, int(tuning.EnemyShootRate/frame)+1)

	var enemyBullets int
	for _, b := range store.Bullets() {
		if !b.IsPlayerBullet {
			enemyBullets++
		}
	}
	if enemyBullets != 1 {
		t.Fatalf("enemy bullets = %d, want 1", enemyBullets)
	}
}

func TestPowerUpCollected(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnPowerUp(dmath.Vec2{X: -7.7})
	step(s, Input{}, 1)
	if store.WeaponLevel() != tuning.WeaponDouble {
		t.Fatalf("weapon = %v, want double", store.WeaponLevel())
	}
	if n := len(store.PowerUps()); n != 0 {
		t.Fatalf("power-ups = %d, want 0", n)
	}
}

func TestDeadEnemyIsNotHitTwice(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnBullet(dmath.Vec2{X: 2}, dmath.Vec2{X: 1}, true)
	store.SpawnBullet(dmath.Vec2{X: 2.05}, dmath.Vec2{X: 1}, true)
	store.SpawnEnemy(tuning.EnemySmall, dmath.Vec2{X: 2.2}, 1, 0.08)

	step(s, Input{}, 1)
	if store.Score() != 100 || store.DefeatedEnemies() != 1 {
		t.Fatalf("score/defeated = %d/%d, want 100/1", store.Score(), store.DefeatedEnemies())
	}
	if n := len(store.Bullets()); n != 1 {
		t.Fatalf("bullets = %d, want 1 survivor", n)
	}
}

func TestEnemySpawner(t *testing.T) {
	s, store := newTestSim(t)
	step(s, Input{}, int(tuning.EnemySpawnRate/frame)+1)
	enemies := store.Enemies()
	if len(enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(enemies))
	}
	e := enemies[0]
	props := tuning.PropsFor(e.Type)
	if e.Health != props.Health || e.Speed != props.Speed {
		t.Fatalf("enemy %+v does not match table %+v", e, props)
	}
	if e.Position.Y < -5 || e.Position.Y > 5 {
		t.Fatalf("spawn y = %v, want within [-5,5]", e.Position.Y)
	}
}

func TestBossTriggerAndEntry(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnEnemy(tuning.EnemySmall, dmath.Vec2{X: 10, Y: 4}, 1, 0)
	store.IncrementScore(tuning.BossSpawnScore)

	step(s, Input{}, 1)
	if !store.Boss().Incoming {
		t.Fatal("boss not incoming after crossing score threshold")
	}
	if n := len(store.Enemies()); n != 0 {
		t.Fatalf("enemies = %d, want cleared", n)
	}

	step(s, Input{}, 5)
	boss := store.Boss()
	if !boss.Active {
		t.Fatal("boss not spawned")
	}
	if boss.Health != tuning.BossHealthFor(1) {
		t.Fatalf("boss health = %d, want %d", boss.Health, tuning.BossHealthFor(1))
	}

	step(s, Input{}, int(tuning.BossEntryDuration/frame)+2)
	if x := store.Boss().Position.X; math.Abs(x-tuning.BossBattleX) > 1e-6 {
		t.Fatalf("boss x after entry = %v, want %v", x, tuning.BossBattleX)
	}

	step(s, Input{}, 2)
	var enemyBullets int
	for _, b := range store.Bullets() {
		if !b.IsPlayerBullet {
			enemyBullets++
		}
	}
	if enemyBullets == 0 {
		t.Fatal("boss did not fire after entry")
	}
	if n := len(store.Enemies()); n != 0 {
		t.Fatalf("enemies spawned during boss fight: %d", n)
	}
}

func TestBossTakesBulletDamage(t *testing.T) {
	s, store := newTestSim(t)
	store.SpawnBoss()
	store.MoveBoss(3, 0)
	s.syncSession()
	s.boss = bossController{spawnedAt: store.Boss().SpawnedAt, tracking: true}
	before := store.Boss().Health

	store.SpawnBullet(dmath.Vec2{X: 1.5}, dmath.Vec2{X: 1}, true)
	step(s, Input{}, 1)
	if got := store.Boss().Health; got != before-1 {
		t.Fatalf("boss health = %d, want %d", got, before-1)
	}
}

func TestBossVolleyPatterns(t *testing.T) {
	boss := dmath.Vec2{X: 8, Y: 0}
	player := dmath.Vec2{X: -8, Y: 0}

	spread := BossVolley(tuning.PatternSpread, boss, player)
	if len(spread) != 5 {
		t.Fatalf("spread = %d shots, want 5", len(spread))
	}
	for i, shot := range spread {
		wantY := float64(i-2) * 0.2
		if shot.Direction.X != -1 || math.Abs(shot.Direction.Y-wantY) > 1e-9 || shot.Position.X != 7 {
			t.Fatalf("spread shot %d = %+v", i, shot)
		}
	}

	circ := BossVolley(tuning.PatternCircular, boss, player)
	if len(circ) != 8 {
		t.Fatalf("circular = %d shots, want 8", len(circ))
	}
	if math.Abs(circ[0].Direction.X-1) > 1e-9 || math.Abs(circ[2].Direction.Y-1) > 1e-9 {
		t.Fatalf("circular directions = %+v", circ)
	}

	aimed := BossVolley(tuning.PatternAimed, boss, player)
	if len(aimed) != 1 || math.Abs(aimed[0].Direction.X+1) > 1e-9 || math.Abs(aimed[0].Direction.Y) > 1e-9 {
		t.Fatalf("aimed = %+v, want straight at player", aimed)
	}

	straight := BossVolley(tuning.PatternStraight, boss, player)
	if len(straight) != 1 || straight[0].Direction.X != -1 {
		t.Fatalf("straight = %+v", straight)
	}
}

func TestRandomEnemyType(t *testing.T) {
	tests := []struct {
		roll float64
		want tuning.EnemyType
	}{
		{0, tuning.EnemySmall},
		{0.59, tuning.EnemySmall},
		{0.6, tuning.EnemyMedium},
		{0.89, tuning.EnemyMedium},
		{0.95, tuning.EnemyLarge},
		{1.5, tuning.EnemySmall},
	}
	for _, tt := range tests {
		if got := RandomEnemyType(tt.roll); got != tt.want {
			t.Fatalf("RandomEnemyType(%v) = %v, want %v", tt.roll, got, tt.want)
		}
	}
}

func TestAutopilotSoakKeepsInvariants(t *testing.T) {
	s, store := newTestSim(t)
	r := NewRunner(s, NewAutopilot(), 60)
	restarts := 0
	r.OnFrame = func(store *gamestate.Store) {
		checkInvariants(t, store)
		switch store.Phase() {
		case tuning.PhaseGameOver:
			restarts++
			store.RestartGame()
		case tuning.PhaseStageClear:
			store.ContinueToNextStage()
		}
	}
	for range 60 * 120 {
		r.Tick()
	}
	if s.Frames() == 0 {
		t.Fatal("no frames simulated")
	}
	t.Logf("frames=%d restarts=%d stage=%d score=%d", s.Frames(), restarts, store.Stage(), store.Score())
}

func checkInvariants(t *testing.T, store *gamestate.Store) {
	t.Helper()
	lives := store.Lives()
	if lives < 0 || lives > tuning.PlayerStartLives {
		t.Fatalf("lives = %d out of range", lives)
	}
	if (lives == 0) != (store.Phase() == tuning.PhaseGameOver) {
		t.Fatalf("lives = %d with phase %v", lives, store.Phase())
	}
	if w := store.WeaponLevel(); w < tuning.WeaponSingle || w > tuning.MaxWeaponLevel {
		t.Fatalf("weapon = %v out of range", w)
	}
	if n := len(store.PowerUps()); n > tuning.MaxPowerUps {
		t.Fatalf("power-ups = %d over cap", n)
	}
	seen := make(map[string]bool)
	for _, b := range store.Bullets() {
		if seen[b.ID] {
			t.Fatalf("duplicate bullet %q", b.ID)
		}
		seen[b.ID] = true
	}
	for _, e := range store.Enemies() {
		if seen[e.ID] {
			t.Fatalf("duplicate enemy %q", e.ID)
		}
		seen[e.ID] = true
	}
	for _, p := range store.PowerUps() {
		if seen[p.ID] {
			t.Fatalf("duplicate power-up %q", p.ID)
		}
		seen[p.ID] = true
	}
}
