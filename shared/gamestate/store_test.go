package gamestate

import (
	"math"
	"testing"
	"time"

	"github.com/automoto/gradius/shared/tuning"
	"github.com/rs/zerolog"
	dmath "github.com/yohamta/donburi/features/math"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithLogger(zerolog.Nop()))
	s.StartGame()
	return s
}

func TestStartGameDefaults(t *testing.T) {
	s := New(WithLogger(zerolog.Nop()))
	s.IncrementScore(500)
	s.ShootBullet()
	s.SpawnEnemy(tuning.EnemySmall, dmath.Vec2{X: 5}, 1, 0.08)

	s.StartGame()
	snap := s.Snapshot()
	if snap.Phase != tuning.PhasePlaying {
		t.Fatalf("phase = %v, want playing", snap.Phase)
	}
	if snap.Player.Lives != 3 || snap.Score != 0 || snap.Player.WeaponLevel != 0 {
		t.Fatalf("lives/score/weapon = %d/%d/%d, want 3/0/0", snap.Player.Lives, snap.Score, snap.Player.WeaponLevel)
	}
	if len(snap.Bullets) != 0 || len(snap.Enemies) != 0 || len(snap.PowerUps) != 0 {
		t.Fatalf("collections not cleared: %d bullets, %d enemies, %d power-ups", len(snap.Bullets), len(snap.Enemies), len(snap.PowerUps))
	}
	if snap.Boss.Active {
		t.Fatal("boss active after start")
	}
	if snap.Player.Position.X != -8 || snap.Player.Position.Y != 0 {
		t.Fatalf("player position = %+v, want {-8 0}", snap.Player.Position)
	}
}

func TestShootBulletPatterns(t *testing.T) {
	tests := []struct {
		level tuning.WeaponLevel
		want  []Bullet
	}{
		{tuning.WeaponSingle, []Bullet{
			{Position: dmath.Vec2{X: 1, Y: 0}, Direction: dmath.Vec2{X: 1}},
		}},
		{tuning.WeaponDouble, []Bullet{
			{Position: dmath.Vec2{X: 1, Y: -0.3}, Direction: dmath.Vec2{X: 1}},
			{Position: dmath.Vec2{X: 1, Y: 0.3}, Direction: dmath.Vec2{X: 1}},
		}},
		{tuning.WeaponTriple, []Bullet{
			{Position: dmath.Vec2{X: 1}, Direction: dmath.Vec2{X: 1}},
			{Position: dmath.Vec2{X: 0.8}, Direction: dmath.Vec2{X: 1, Y: -0.2}},
			{Position: dmath.Vec2{X: 0.8}, Direction: dmath.Vec2{X: 1, Y: 0.2}},
		}},
		{tuning.WeaponUltimate, []Bullet{
			{Position: dmath.Vec2{X: 1}, Direction: dmath.Vec2{X: 1}},
			{Position: dmath.Vec2{X: 0.8}, Direction: dmath.Vec2{X: 1, Y: -0.2}},
			{Position: dmath.Vec2{X: 0.8}, Direction: dmath.Vec2{X: 1, Y: 0.2}},
			{Position: dmath.Vec2{X: -0.5}, Direction: dmath.Vec2{X: -1}},
		}},
	}
	for _, tt := range tests {
		s := newTestStore(t)
		s.MovePlayer(0, 0)
		for range tt.level {
			s.CollectPowerUp(tuning.PowerUpWeaponUpgrade)
		}
		ids := s.ShootBullet()
		got := s.Bullets()
		if len(ids) != len(tt.want) || len(got) != len(tt.want) {
			t.Fatalf("level %v: %d bullets, want %d", tt.level, len(got), len(tt.want))
		}
		for i, w := range tt.want {
			b := got[i]
			if !near(b.Position, w.Position) || !near(b.Direction, w.Direction) || !b.IsPlayerBullet {
				t.Fatalf("level %v bullet %d = %+v, want pos %+v dir %+v", tt.level, i, b, w.Position, w.Direction)
			}
			if b.ID != ids[i] {
				t.Fatalf("level %v bullet %d id = %q, want %q", tt.level, i, b.ID, ids[i])
			}
		}
	}
}

func TestIDsAreUnique(t *testing.T) {
	s := newTestStore(t)
	s.CollectPowerUp(tuning.PowerUpWeaponUpgrade)
	s.CollectPowerUp(tuning.PowerUpWeaponUpgrade)
	s.CollectPowerUp(tuning.PowerUpWeaponUpgrade)
	for range 50 {
		s.ShootBullet()
		s.SpawnEnemy(tuning.EnemyMedium, dmath.Vec2{X: 10}, 2, 0.05)
	}
	seen := make(map[string]bool)
	for _, b := range s.Bullets() {
		if seen[b.ID] {
			t.Fatalf("duplicate bullet id %q", b.ID)
		}
		seen[b.ID] = true
	}
	for _, e := range s.Enemies() {
		if seen[e.ID] {
			t.Fatalf("duplicate enemy id %q", e.ID)
		}
		seen[e.ID] = true
	}
	if len(seen) != 250 {
		t.Fatalf("ids = %d, want 250", len(seen))
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ids := s.ShootBullet()
	s.ShootBullet()
	e1 := s.SpawnEnemy(tuning.EnemySmall, dmath.Vec2{X: 5}, 1, 0.08)
	s.SpawnEnemy(tuning.EnemySmall, dmath.Vec2{X: 6}, 1, 0.08)
	p1, _ := s.SpawnPowerUp(dmath.Vec2{X: 3})
	s.SpawnPowerUp(dmath.Vec2{X: 4})

	s.RemoveBullet(ids[0])
	s.RemoveEnemy(e1)
	s.RemovePowerUp(p1)
	b, e, p := len(s.Bullets()), len(s.Enemies()), len(s.PowerUps())

	s.RemoveBullet(ids[0])
	s.RemoveEnemy(e1)
	s.RemovePowerUp(p1)
	s.RemoveBullet("bullet_missing")
	if len(s.Bullets()) != b || len(s.Enemies()) != e || len(s.PowerUps()) != p {
		t.Fatalf("second remove changed collections: %d/%d/%d, want %d/%d/%d",
			len(s.Bullets()), len(s.Enemies()), len(s.PowerUps()), b, e, p)
	}
	if b != 1 || e != 1 || p != 1 {
		t.Fatalf("after first remove = %d/%d/%d, want 1/1/1", b, e, p)
	}
}

func TestTakeDamageWhileInvulnerableIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.CollectPowerUp(tuning.PowerUpWeaponUpgrade)
	s.CollectPowerUp(tuning.PowerUpWeaponUpgrade)
	s.TakeDamage()
	if !s.Invulnerable() {
		t.Fatal("expected invulnerability after damage")
	}
	lives, weapon := s.Lives(), s.WeaponLevel()

	s.TakeDamage()
	if s.Lives() != lives || s.WeaponLevel() != weapon || !s.Invulnerable() {
		t.Fatalf("invulnerable damage changed state: lives %d weapon %d inv %v", s.Lives(), s.WeaponLevel(), s.Invulnerable())
	}
}

func TestTakeDamageStepsDownAndExpires(t *testing.T) {
	s := newTestStore(t)
	s.TakeDamage()
	if s.Lives() != 2 || s.WeaponLevel() != 0 {
		t.Fatalf("lives/weapon = %d/%d, want 2/0", s.Lives(), s.WeaponLevel())
	}

	s.Advance(tuning.InvulnerabilityWindow - time.Millisecond)
	if !s.Invulnerable() {
		t.Fatal("invulnerability cleared early")
	}
	s.Advance(time.Millisecond)
	if s.Invulnerable() {
		t.Fatal("invulnerability not cleared after window")
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		s.TakeDamage()
		s.Advance(tuning.InvulnerabilityWindow)
	}
	if s.Lives() != 0 {
		t.Fatalf("lives = %d, want 0", s.Lives())
	}
	if s.Phase() != tuning.PhaseGameOver {
		t.Fatalf("phase = %v, want gameOver", s.Phase())
	}
}

func TestDamageAfterGameOverIsIgnored(t *testing.T) {
	s := newTestStore(t)
	var hits, overs int
	s.Subscribe(func(ev Event) {
		if ev.Kind == EventPlayerHit {
			hits++
		}
	})
	s.OnPhaseChange(func(_, to tuning.Phase) {
		if to == tuning.PhaseGameOver {
			overs++
		}
	})
	for range 3 {
		s.TakeDamage()
		s.Advance(tuning.InvulnerabilityWindow)
	}
	s.TakeDamage()
	s.TakeDamage()

	if hits != 3 {
		t.Fatalf("player hit events = %d, want 3", hits)
	}
	if overs != 1 {
		t.Fatalf("game over transitions = %d, want 1", overs)
	}
	if s.Lives() != 0 {
		t.Fatalf("lives = %d, want 0", s.Lives())
	}
}

func TestInvulnerabilityTimerDoesNotSurviveRestart(t *testing.T) {
	s := newTestStore(t)
	s.TakeDamage()
	s.Advance(time.Second)
	s.RestartGame()
	s.TakeDamage()

	// The first timer is due here but belongs to the old session.
	s.Advance(time.Second)
	if !s.Invulnerable() {
		t.Fatal("stale timer cleared the new invulnerability window")
	}
	s.Advance(time.Second)
	if s.Invulnerable() {
		t.Fatal("new invulnerability window never expired")
	}
}

func TestWeaponLevelBounds(t *testing.T) {
	s := newTestStore(t)
	for range 10 {
		s.CollectPowerUp(tuning.PowerUpWeaponUpgrade)
	}
	if s.WeaponLevel() != tuning.MaxWeaponLevel {
		t.Fatalf("weapon = %v, want %v", s.WeaponLevel(), tuning.MaxWeaponLevel)
	}
	s.CollectPowerUp(tuning.PowerUpType("shield"))
	if s.WeaponLevel() != tuning.MaxWeaponLevel {
		t.Fatal("unknown power-up changed weapon level")
	}
}

func TestSpawnEnemySanitizesPosition(t *testing.T) {
	s := newTestStore(t)
	id := s.SpawnEnemy(tuning.EnemyLarge, dmath.Vec2{X: math.NaN(), Y: 1}, 0, 0.03)
	e := s.Enemies()[0]
	if e.ID != id {
		t.Fatalf("id = %q, want %q", e.ID, id)
	}
	if e.Position.X != tuning.DefaultSpawnX || e.Position.Y != tuning.DefaultSpawnY {
		t.Fatalf("position = %+v, want default spawn", e.Position)
	}
	if e.Health != tuning.Enemies[tuning.EnemyLarge].Health {
		t.Fatalf("health = %d, want table value", e.Health)
	}
}

func TestSpawnPowerUpCap(t *testing.T) {
	s := newTestStore(t)
	for i := range tuning.MaxPowerUps {
		if _, ok := s.SpawnPowerUp(dmath.Vec2{X: float64(i)}); !ok {
			t.Fatalf("spawn %d rejected below cap", i)
		}
	}
	if _, ok := s.SpawnPowerUp(dmath.Vec2{}); ok {
		t.Fatal("spawn accepted at cap")
	}
	if n := len(s.PowerUps()); n != tuning.MaxPowerUps {
		t.Fatalf("power-ups = %d, want %d", n, tuning.MaxPowerUps)
	}
}

func TestDeferredPowerUp(t *testing.T) {
	s := newTestStore(t)
	s.ScheduleDeferredPowerUp(dmath.Vec2{X: 2, Y: 1})
	if len(s.PowerUps()) != 0 {
		t.Fatal("power-up spawned before delay")
	}
	s.Advance(tuning.PowerUpSpawnDelay)
	got := s.PowerUps()
	if len(got) != 1 || got[0].Position.X != 2 || got[0].Type != tuning.PowerUpWeaponUpgrade {
		t.Fatalf("power-ups = %+v, want one weapon upgrade at x=2", got)
	}
}

func TestDamageBossDefeat(t *testing.T) {
	s := newTestStore(t)
	var events []EventKind
	s.Subscribe(func(ev Event) { events = append(events, ev.Kind) })

	s.SpawnBoss()
	health := s.Boss().Health
	if health != tuning.BossHealthFor(1) {
		t.Fatalf("boss health = %d, want %d", health, tuning.BossHealthFor(1))
	}
	s.IncrementScore(300)

	s.DamageBoss(health + 10)
	if s.Boss().Health != 0 {
		t.Fatalf("boss health = %d, want 0", s.Boss().Health)
	}
	if s.Score() != 300+tuning.BossDefeatBonus {
		t.Fatalf("score = %d, want %d", s.Score(), 300+tuning.BossDefeatBonus)
	}
	if s.Phase() != tuning.PhasePlaying {
		t.Fatal("stage cleared before settle delay")
	}

	// Further hits during the settle window do nothing.
	s.DamageBoss(5)
	if s.Score() != 300+tuning.BossDefeatBonus {
		t.Fatal("bonus awarded twice")
	}

	s.Advance(tuning.BossDefeatSettle)
	if s.Boss().Active {
		t.Fatal("boss still active after settle")
	}
	if s.Phase() != tuning.PhaseStageClear {
		t.Fatalf("phase = %v, want stageClear", s.Phase())
	}
	if !containsKind(events, EventBossDefeated) || !containsKind(events, EventPhaseChanged) {
		t.Fatalf("events = %v, want bossDefeated and phaseChanged", events)
	}
}

func TestDamageBossRequiresPlaying(t *testing.T) {
	s := newTestStore(t)
	s.SpawnBoss()
	before := s.Boss().Health
	s.TogglePause()
	s.DamageBoss(10)
	if s.Boss().Health != before {
		t.Fatal("boss damaged while paused")
	}

	s.TogglePause()
	s.DamageBoss(10)
	if s.Boss().Health != before-10 {
		t.Fatalf("boss health = %d, want %d", s.Boss().Health, before-10)
	}
}

func TestBossDefeatSettleDroppedAfterGameOver(t *testing.T) {
	s := newTestStore(t)
	s.SpawnBoss()
	s.DamageBoss(s.Boss().Health)
	s.GameOver()
	s.Advance(tuning.BossDefeatSettle)
	if s.Phase() != tuning.PhaseGameOver {
		t.Fatalf("phase = %v, want gameOver", s.Phase())
	}
}

func TestBeginBossApproachClearsInBatches(t *testing.T) {
	s := newTestStore(t)
	for i := range 12 {
		s.SpawnEnemy(tuning.EnemySmall, dmath.Vec2{X: float64(i)}, 1, 0.08)
	}
	s.BeginBossApproach()
	if n := len(s.Enemies()); n != 7 {
		t.Fatalf("enemies after first batch = %d, want 7", n)
	}
	if !s.Boss().Incoming || s.Boss().Active {
		t.Fatal("boss should be incoming, not active")
	}
	s.Advance(tuning.BossClearInterval)
	if n := len(s.Enemies()); n != 2 {
		t.Fatalf("enemies after second batch = %d, want 2", n)
	}
	s.Advance(tuning.BossClearInterval)
	if n := len(s.Enemies()); n != 0 {
		t.Fatalf("enemies after third batch = %d, want 0", n)
	}
	s.Advance(tuning.BossClearInterval)
	if !s.Boss().Active || s.Boss().Incoming {
		t.Fatalf("boss = %+v, want active", s.Boss())
	}
	if s.DefeatedEnemies() != 0 {
		t.Fatalf("defeated = %d, want reset to 0", s.DefeatedEnemies())
	}
}

func TestContinueToNextStage(t *testing.T) {
	s := newTestStore(t)
	s.IncrementScore(6000)
	s.CollectPowerUp(tuning.PowerUpWeaponUpgrade)
	s.ShootBullet()
	s.StageClear()

	s.ContinueToNextStage()
	if s.Stage() != 2 {
		t.Fatalf("stage = %d, want 2", s.Stage())
	}
	if s.Phase() != tuning.PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.Phase())
	}
	if s.Score() != 6000 || s.WeaponLevel() != 1 {
		t.Fatalf("score/weapon = %d/%v, want carried over", s.Score(), s.WeaponLevel())
	}
	if len(s.Bullets()) != 0 || s.PlayerPosition().X != tuning.PlayerStartX {
		t.Fatal("stage state not reset")
	}
	if s.Boss().MaxHealth != tuning.BossHealthFor(1) {
		t.Fatalf("boss baseline = %d, want %d", s.Boss().MaxHealth, tuning.BossHealthFor(1))
	}
	if s.ScoreThisStage() != 0 {
		t.Fatalf("score this stage = %d, want 0", s.ScoreThisStage())
	}
}

func TestReturnToMenuDropsTimers(t *testing.T) {
	s := newTestStore(t)
	s.TakeDamage()
	s.ScheduleDeferredPowerUp(dmath.Vec2{X: 2})
	if n := len(s.PendingTimers()); n != 2 {
		t.Fatalf("pending = %v, want 2 timers", s.PendingTimers())
	}

	s.ReturnToMenu()
	if n := len(s.PendingTimers()); n != 0 {
		t.Fatalf("pending after menu = %v, want none", s.PendingTimers())
	}
}

func TestPhaseTransitions(t *testing.T) {
	s := New(WithLogger(zerolog.Nop()))
	var seen []tuning.Phase
	s.OnPhaseChange(func(_, to tuning.Phase) { seen = append(seen, to) })

	s.TogglePause() // ignored in menu
	s.StartGame()
	s.TogglePause()
	s.TogglePause()
	s.GameOver()
	s.GameOver()
	s.RestartGame()
	s.StageClear()
	s.ContinueToNextStage()
	s.ReturnToMenu()

	want := []tuning.Phase{
		tuning.PhasePlaying, tuning.PhasePaused, tuning.PhasePlaying, tuning.PhaseGameOver,
		tuning.PhasePlaying, tuning.PhaseStageClear, tuning.PhasePlaying, tuning.PhaseMenu,
	}
	if len(seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transition %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestApplyBatchKeepsNewEntities(t *testing.T) {
	s := newTestStore(t)
	old := s.ShootBullet()[0]
	b := NewBatch()
	b.Move(old, dmath.Vec2{X: 5})
	fresh := s.SpawnBullet(dmath.Vec2{X: 1}, dmath.Vec2{X: -1}, false)

	s.ApplyBullets(b)
	got := s.Bullets()
	if len(got) != 2 {
		t.Fatalf("bullets = %d, want 2", len(got))
	}
	if got[0].ID != old || got[0].Position.X != 5 {
		t.Fatalf("moved bullet = %+v", got[0])
	}
	if got[1].ID != fresh || got[1].Position.X != 1 {
		t.Fatalf("fresh bullet = %+v, want untouched", got[1])
	}
}

func TestApplyEnemiesDamageAndRemoval(t *testing.T) {
	s := newTestStore(t)
	a := s.SpawnEnemy(tuning.EnemyLarge, dmath.Vec2{X: 5}, 4, 0.03)
	c := s.SpawnEnemy(tuning.EnemySmall, dmath.Vec2{X: 6}, 1, 0.08)

	b := NewBatch()
	b.Damage(a, 1)
	b.Damage(a, 1)
	if !b.Remove(c) || b.Remove(c) {
		t.Fatal("Remove should report the first mark only")
	}
	s.ApplyEnemies(b)

	got := s.Enemies()
	if len(got) != 1 || got[0].ID != a || got[0].Health != 2 {
		t.Fatalf("enemies = %+v, want large enemy with 2 health", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore(t)
	s.ShootBullet()
	snap := s.Snapshot()
	snap.Bullets[0].Position.X = 99
	if s.Bullets()[0].Position.X == 99 {
		t.Fatal("snapshot aliases store state")
	}
}

func near(a, b dmath.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func containsKind(kinds []EventKind, k EventKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
