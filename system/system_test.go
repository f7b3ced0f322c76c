package system

import (
	"fmt"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/boss"
	"github.com/milk9111/bossrush/component"
	"github.com/milk9111/bossrush/encounter"
)

func template(a boss.Archetype, hp float64) *boss.Template {
	return &boss.Template{Name: string(a), Archetype: a, HP: hp, Radius: 50, Spawn: cp.Vector{X: 400, Y: 150}}
}

func newEncounter(t *testing.T, tpl *boss.Template, eq component.Abilities) *encounter.Encounter {
	t.Helper()
	e, err := encounter.New(encounter.Config{Boss: tpl, Equipped: eq, Seed: 1})
	if err != nil {
		t.Fatalf("encounter.New: %v", err)
	}
	return e
}

func press(keys ...component.Key) component.Input {
	var in component.Input
	for _, k := range keys {
		in.Pressed.Set(k)
	}
	return in
}

func hold(keys ...component.Key) component.Input {
	var in component.Input
	for _, k := range keys {
		in.Held.Set(k)
	}
	return in
}

func enemyBullet(pos cp.Vector) component.Projectile {
	return component.Projectile{Pos: pos, W: 10, H: 10, Owner: component.OwnerEnemy, Power: 1}
}

func TestSpawnPlayerBullets(t *testing.T) {
	cases := []struct {
		name   string
		weapon component.Weapon
		count  int
		speed  float64
		power  float64
	}{
		{"normal", component.WeaponNormal, 1, normalSpeed, normalPower},
		{"homing", component.WeaponHoming, 1, homingSpeed, homingPower},
		{"spread", component.WeaponSpread, 3, spreadSpeed, spreadPower},
	}
	muzzle := cp.Vector{X: 200, Y: 300}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SpawnPlayerBullets(nil, c.weapon, muzzle)
			if len(got) != c.count {
				t.Fatalf("expected %d bullets, got %d", c.count, len(got))
			}
			for _, p := range got {
				if math.Abs(p.Vel.Length()-c.speed) > 1e-9 {
					t.Fatalf("speed %v, want %v", p.Vel.Length(), c.speed)
				}
				if p.Power != c.power || p.Owner != component.OwnerPlayer || p.Pos != muzzle {
					t.Fatalf("unexpected bullet %+v", p)
				}
				if p.Vel.Y >= 0 {
					t.Fatalf("player bullets must travel up, got %v", p.Vel)
				}
			}
		})
	}

	spread := SpawnPlayerBullets(nil, component.WeaponSpread, muzzle)
	for i, want := range []float64{-spreadAngle, 0, spreadAngle} {
		got := math.Atan2(spread[i].Vel.X, -spread[i].Vel.Y)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("spread bullet %d angle %v, want %v", i, got, want)
		}
	}
	if homing := SpawnPlayerBullets(nil, component.WeaponHoming, muzzle)[0]; !homing.Homing() {
		t.Fatalf("homing bullet should steer")
	}
}

func TestSweepRemovesOffscreenAndDead(t *testing.T) {
	bullets := []component.Projectile{
		{Pos: cp.Vector{X: -100, Y: 300}, W: 10, H: 10},
		{Pos: cp.Vector{X: -30, Y: 300}, W: 10, H: 10},
		{Pos: cp.Vector{X: 400, Y: 700}, W: 10, H: 10},
		{Pos: cp.Vector{X: 400, Y: 300}, W: 10, H: 10, Dead: true},
		{Pos: cp.Vector{X: 400, Y: 300}, W: 10, H: 10},
	}
	got := SweepProjectiles(bullets)
	if len(got) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(got))
	}
	if got[0].Pos.X != -30 || got[1].Pos.X != 400 {
		t.Fatalf("wrong survivors: %+v", got)
	}
}

func TestOffscreenBulletGoneSameFrame(t *testing.T) {
	e := newEncounter(t, nil, component.Abilities{})
	e.Bullets = []component.Projectile{{Pos: cp.Vector{X: 400, Y: -30}, Vel: cp.Vector{Y: -20}, W: 6, H: 12, Owner: component.OwnerPlayer}}
	NewDefaultScheduler().Update(e)
	if len(e.Bullets) != 0 {
		t.Fatalf("offscreen bullet survived the frame: %+v", e.Bullets)
	}
}

func TestHomingBulletPointsAtBoss(t *testing.T) {
	e := newEncounter(t, template(boss.ArchetypeStomp, 35), component.Abilities{})
	e.Bullets = SpawnPlayerBullets(nil, component.WeaponHoming, cp.Vector{X: 100, Y: 500})
	ps := NewProjectileSystem()
	for i := 0; i < 10; i++ {
		ps.Update(e)
		p := e.Bullets[0]
		target, _ := e.Boss.Target()
		to := target.Sub(p.Pos)
		cross := p.Vel.X*to.Y - p.Vel.Y*to.X
		if math.Abs(cross) > 1e-6*to.Length() || p.Vel.Dot(to) <= 0 {
			t.Fatalf("frame %d: velocity %v does not point at target %v", i, p.Vel, to)
		}
		if math.Abs(p.Vel.Length()-homingSpeed) > 1e-9 {
			t.Fatalf("homing speed %v", p.Vel.Length())
		}
	}
}

func TestReflectedBulletNeverRehomes(t *testing.T) {
	e := newEncounter(t, template(boss.ArchetypeOrbit, 60), component.Abilities{})
	s := e.Boss.State.(*boss.OrbitState)
	seg := s.Segments(e.Boss)[2]
	p := SpawnPlayerBullets(nil, component.WeaponHoming, seg)[0]
	p.Vel = cp.Vector{}
	e.Bullets = []component.Projectile{p}

	NewCollisionSystem().Update(e)
	if len(e.Bullets) != 1 {
		t.Fatalf("reflected bullet should be kept, got %d", len(e.Bullets))
	}
	r := e.Bullets[0]
	if !r.Reflected || r.Owner != component.OwnerEnemy || r.Homing() {
		t.Fatalf("expected reflected enemy bullet, got %+v", r)
	}
	if r.Vel.Length() < reflectMinSpeed-1e-9 {
		t.Fatalf("reflected speed %v below minimum", r.Vel.Length())
	}
	vel := r.Vel
	target, _ := e.Boss.Target()
	for i := 0; i < 5; i++ {
		AdvanceProjectiles(e.Bullets, &target)
		if e.Bullets[0].Vel != vel {
			t.Fatalf("reflected bullet changed heading: %v -> %v", vel, e.Bullets[0].Vel)
		}
	}
	if e.Boss.HP() != 60 {
		t.Fatalf("reflect must not damage, hp=%v", e.Boss.HP())
	}
}

func TestCancellationPrecedesDamage(t *testing.T) {
	e := newEncounter(t, template(boss.ArchetypeStomp, 35), component.Abilities{})
	at := e.Boss.Pos
	spread := SpawnPlayerBullets(nil, component.WeaponSpread, at)[1]
	spread.Vel = cp.Vector{}
	e.Bullets = []component.Projectile{spread, enemyBullet(at)}

	NewCollisionSystem().Update(e)
	if e.Boss.HP() != 35 {
		t.Fatalf("cancelled spread bullet damaged the boss: hp=%v", e.Boss.HP())
	}
	if len(e.Bullets) != 0 {
		t.Fatalf("both bullets should be removed, got %d", len(e.Bullets))
	}
}

func TestCancelMarginShrinksBox(t *testing.T) {
	spread := component.Projectile{Pos: cp.Vector{X: 100, Y: 100}, W: 6, H: 10, Owner: component.OwnerPlayer, Weapon: component.WeaponSpread}
	enemy := enemyBullet(cp.Vector{X: 107, Y: 100})
	if n := CancelSpread([]component.Projectile{spread, enemy}, 0); n != 1 {
		t.Fatalf("expected overlap at margin 0, got %d", n)
	}
	if n := CancelSpread([]component.Projectile{spread, enemy}, -3); n != 0 {
		t.Fatalf("expected no overlap at margin -3, got %d", n)
	}
}

// Scenario A: 35 unmissed hits of power 1 kill "Boss A"; the encounter is won
// once the explosion has played out.
func TestScenarioBossDefeat(t *testing.T) {
	e := newEncounter(t, template(boss.ArchetypeStomp, 35), component.Abilities{})
	e.NoDamage = true
	sched := NewDefaultScheduler()

	for i := 0; i < 35; i++ {
		if !e.Boss.Alive {
			t.Fatalf("boss died early after %d hits", i)
		}
		b := SpawnPlayerBullets(nil, component.WeaponNormal, e.Boss.Pos)[0]
		b.Vel = cp.Vector{}
		e.Bullets = append(e.Bullets[:0], b)
		sched.Update(e)
		if want := float64(35 - i - 1); e.Boss.HP() != want {
			t.Fatalf("hit %d: hp=%v want %v", i+1, e.Boss.HP(), want)
		}
	}
	if e.Boss.Alive || e.Boss.ExplodeTimer != 0 {
		t.Fatalf("expected dead boss with explosion at 0, alive=%v timer=%d", e.Boss.Alive, e.Boss.ExplodeTimer)
	}
	e.Bullets = nil
	for i := 0; i < boss.ExplosionFrames-1; i++ {
		sched.Update(e)
		if e.Result != encounter.Pending {
			t.Fatalf("resolved %v before explosion finished (frame %d)", e.Result, i)
		}
	}
	sched.Update(e)
	if e.Result != encounter.Won {
		t.Fatalf("expected win, got %v", e.Result)
	}
}

// Scenario B: one hit costs one life and opens the invincibility window.
func TestScenarioInvincibilityWindow(t *testing.T) {
	e := newEncounter(t, nil, component.Abilities{})
	sched := NewDefaultScheduler()
	inv := e.Tuning.InvincibleFrames

	e.Bullets = []component.Projectile{enemyBullet(e.Player.Pos)}
	sched.Update(e)
	if e.Player.Lives != 2 || !e.Player.Invincible || e.Player.InvTimer != 0 {
		t.Fatalf("after hit: lives=%d invincible=%v timer=%d", e.Player.Lives, e.Player.Invincible, e.Player.InvTimer)
	}

	for k := 1; k < inv; k++ {
		e.Bullets = []component.Projectile{enemyBullet(e.Player.Pos)}
		sched.Update(e)
		if e.Player.Lives != 2 {
			t.Fatalf("frame %d: life lost while invincible", k)
		}
		if !e.Player.Invincible {
			t.Fatalf("frame %d: invincibility ended early", k)
		}
	}
	e.Bullets = nil
	sched.Update(e)
	if e.Player.Invincible {
		t.Fatalf("invincibility should end at frame %d", inv)
	}
}

func TestDashInvincibilityGatesDamage(t *testing.T) {
	e := newEncounter(t, nil, component.Abilities{})
	e.Player.Dash.InvTimer = 5
	e.Bullets = []component.Projectile{enemyBullet(e.Player.Pos)}
	NewCollisionSystem().Update(e)
	if e.Player.Lives != 3 {
		t.Fatalf("dash invincibility must block damage, lives=%d", e.Player.Lives)
	}
}

// Scenario C: a double tap inside the window dashes.
func TestScenarioDash(t *testing.T) {
	cases := []struct {
		name   string
		startX float64
		gap    int
		wantX  func(tn encounter.Tuning, p component.Player) float64
		dashed bool
	}{
		{"double_tap", 400, 5, func(tn encounter.Tuning, _ component.Player) float64 { return 400 - tn.DashDistance }, true},
		{"clamped_at_edge", 50, 1, func(_ encounter.Tuning, p component.Player) float64 { return p.W / 2 }, true},
		{"outside_window", 400, 40, func(encounter.Tuning, component.Player) float64 { return 400 }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newEncounter(t, nil, component.Abilities{Dash: true})
			e.Player.Pos.X = c.startX
			sched := NewDefaultScheduler()

			e.Input = press(component.KeyLeft)
			sched.Update(e)
			e.Input = component.Input{}
			for i := 1; i < c.gap; i++ {
				sched.Update(e)
			}
			e.Input = press(component.KeyLeft)
			sched.Update(e)

			if got, want := e.Player.Pos.X, c.wantX(e.Tuning, e.Player); got != want {
				t.Fatalf("x=%v want %v", got, want)
			}
			if !c.dashed {
				return
			}
			if e.Player.Dash.Cooldown != e.Tuning.DashCooldown || e.Player.Dash.InvTimer != e.Tuning.DashInvFrames {
				t.Fatalf("dash timers not reset: %+v", e.Player.Dash)
			}
		})
	}
}

func TestDashNeedsCooldownAndUnlock(t *testing.T) {
	e := newEncounter(t, nil, component.Abilities{})
	sched := NewDefaultScheduler()
	e.Input = press(component.KeyRight)
	sched.Update(e)
	sched.Update(e)
	if e.Player.Pos.X != 400 {
		t.Fatalf("dash without unlock moved the player to %v", e.Player.Pos.X)
	}

	e = newEncounter(t, nil, component.Abilities{Dash: true})
	e.Player.Dash.Cooldown = 30
	e.Input = press(component.KeyRight)
	sched.Update(e)
	sched.Update(e)
	if e.Player.Pos.X != 400 {
		t.Fatalf("dash during cooldown moved the player to %v", e.Player.Pos.X)
	}
}

func TestShieldAbsorbsFirstHit(t *testing.T) {
	e := newEncounter(t, nil, component.Abilities{Shield: true})
	e.Bullets = []component.Projectile{enemyBullet(e.Player.Pos)}
	NewCollisionSystem().Update(e)
	if e.Player.Lives != 3 || e.Player.Shield {
		t.Fatalf("shield should absorb the hit, lives=%d shield=%v", e.Player.Lives, e.Player.Shield)
	}
	var cues []component.Cue
	for _, ev := range e.Events.Drain() {
		cues = append(cues, ev.Cue)
	}
	if len(cues) != 1 || cues[0] != component.CueShieldBreak {
		t.Fatalf("expected shield break cue, got %v", cues)
	}
}

func TestInvertedControls(t *testing.T) {
	e := newEncounter(t, nil, component.Abilities{})
	e.InvertTimer = 10
	e.Input = hold(component.KeyLeft, component.KeyFire)
	x := e.Player.Pos.X
	NewDefaultScheduler().Update(e)
	if e.Player.Pos.X <= x {
		t.Fatalf("inverted left should move right, x %v -> %v", x, e.Player.Pos.X)
	}
	if !e.Controls.Held.Has(component.KeyFire) {
		t.Fatalf("inversion must keep non-direction keys")
	}
	if e.InvertTimer != 9 {
		t.Fatalf("invert timer %d, want 9", e.InvertTimer)
	}
}

func TestWeaponSwitchCyclesEquipped(t *testing.T) {
	e := newEncounter(t, nil, component.Abilities{Spread: true})
	sys := NewPlayerSystem()
	e.Controls = press(component.KeySwitch)
	sys.Update(e)
	if e.Player.Weapon != component.WeaponSpread {
		t.Fatalf("expected spread, got %v", e.Player.Weapon)
	}
	sys.Update(e)
	if e.Player.Weapon != component.WeaponNormal {
		t.Fatalf("expected wrap to normal, got %v", e.Player.Weapon)
	}
}

func TestBossHPNeverRisesWithinPhase(t *testing.T) {
	for _, a := range []boss.Archetype{
		boss.ArchetypeStomp, boss.ArchetypeOrbit, boss.ArchetypeBounce,
		boss.ArchetypeSplitCore, boss.ArchetypeCrescent, boss.ArchetypeGrand,
	} {
		t.Run(string(a), func(t *testing.T) {
			e := newEncounter(t, template(a, 120), component.Abilities{Homing: true})
			e.NoDamage = true
			e.Player.Weapon = component.WeaponHoming
			e.Input = hold(component.KeyFire)
			sched := NewDefaultScheduler()
			hp, phase := e.Boss.HP(), e.Boss.Phase
			for f := 0; f < 900 && !e.Done(); f++ {
				sched.Update(e)
				if e.Boss.Phase == phase && e.Boss.HP() > hp {
					t.Fatalf("frame %d: hp rose from %v to %v in phase %d", f, hp, e.Boss.HP(), phase)
				}
				hp, phase = e.Boss.HP(), e.Boss.Phase
			}
		})
	}
}

// Scenario D: the crescent flips to phase 2 on the frame the threshold hit
// lands, and the pending laser aim does not survive.
func TestScenarioPhaseFlipClearsLaserAim(t *testing.T) {
	e := newEncounter(t, template(boss.ArchetypeCrescent, 150), component.Abilities{})
	e.NoDamage = true
	s := e.Boss.State.(*boss.CrescentState)
	e.Boss.Health.Current = 76
	s.LaserPending = true
	s.LaserAim = 300

	b := SpawnPlayerBullets(nil, component.WeaponNormal, e.Boss.Pos.Add(cp.Vector{X: -e.Boss.Radius * 0.8}))[0]
	b.Vel = cp.Vector{}
	e.Bullets = []component.Projectile{b}
	NewDefaultScheduler().Update(e)

	if e.Boss.Phase != 2 || !s.Split {
		t.Fatalf("expected phase 2 this frame, got phase=%d split=%v hp=%v", e.Boss.Phase, s.Split, e.Boss.HP())
	}
	if s.LaserPending || len(s.Lasers) != 0 {
		t.Fatalf("stale laser survived the phase flip")
	}
	if e.Player2 == nil || e.InvertTimer != 299 {
		t.Fatalf("phase 2 requests not applied: player2=%v invert=%d", e.Player2 != nil, e.InvertTimer)
	}
}

func TestSharedLivesShareInvincibility(t *testing.T) {
	setup := func(t *testing.T) *encounter.Encounter {
		e := newEncounter(t, nil, component.Abilities{})
		e.Player.Pos.X = 200
		e.SpawnPlayer2()
		return e
	}

	t.Run("both_ships_hit_same_frame", func(t *testing.T) {
		e := setup(t)
		e.Bullets = []component.Projectile{enemyBullet(e.Player.Pos), enemyBullet(e.Player2.Pos)}
		NewCollisionSystem().Update(e)
		if e.Player.Lives != 2 {
			t.Fatalf("one frame of hits cost %d lives", 3-e.Player.Lives)
		}
		for i, p := range e.Players() {
			if !p.Invincible || p.InvTimer != 0 {
				t.Fatalf("ship %d: invincible=%v timer=%d", i, p.Invincible, p.InvTimer)
			}
		}
	})

	t.Run("second_ship_hit_next_frame", func(t *testing.T) {
		e := setup(t)
		sched := NewDefaultScheduler()
		e.Bullets = []component.Projectile{enemyBullet(e.Player.Pos)}
		sched.Update(e)
		if e.Player.Lives != 2 {
			t.Fatalf("first hit: lives=%d", e.Player.Lives)
		}
		e.Bullets = []component.Projectile{enemyBullet(e.Player2.Pos)}
		sched.Update(e)
		if e.Player.Lives != 2 {
			t.Fatalf("hit on second ship during the window cost a life, lives=%d", e.Player.Lives)
		}
	})

	t.Run("primary_window_covers_second_ship", func(t *testing.T) {
		e := setup(t)
		e.Player.Invincible = true
		e.Player.InvTimer = 40
		e.Player2.Invincible = false
		e.Bullets = []component.Projectile{enemyBullet(e.Player2.Pos)}
		NewCollisionSystem().Update(e)
		if e.Player.Lives != 3 {
			t.Fatalf("life lost while the primary ship was invincible, lives=%d", e.Player.Lives)
		}
		if len(e.Bullets) != 1 {
			t.Fatalf("bullet consumed without a hit landing")
		}
	})

	t.Run("spawned_ship_joins_window", func(t *testing.T) {
		e := newEncounter(t, nil, component.Abilities{})
		e.Player.Invincible = true
		e.Player.InvTimer = 30
		e.SpawnPlayer2()
		if !e.Player2.Invincible || e.Player2.InvTimer != 30 {
			t.Fatalf("second ship out of sync: invincible=%v timer=%d", e.Player2.Invincible, e.Player2.InvTimer)
		}
	})
}

func TestDefaultSchedulerOrder(t *testing.T) {
	want := []string{
		"*system.InputSystem",
		"*system.PlayerSystem",
		"*system.FireSystem",
		"*system.ProjectileSystem",
		"*system.BossSystem",
		"*system.CollisionSystem",
		"*system.OutcomeSystem",
	}
	got := NewDefaultScheduler().Systems()
	if len(got) != len(want) {
		t.Fatalf("got %d systems, want %d", len(got), len(want))
	}
	for i, s := range got {
		if name := fmt.Sprintf("%T", s); name != want[i] {
			t.Fatalf("system %d is %s, want %s", i, name, want[i])
		}
	}
}

// bulletTap copies the bullet list at one point in the frame.
type bulletTap struct {
	at []component.Projectile
}

func (b *bulletTap) Update(e *encounter.Encounter) {
	b.at = append(b.at[:0], e.Bullets...)
}

func TestBossBulletsCollideAtSpawnPoint(t *testing.T) {
	e := newEncounter(t, template(boss.ArchetypeOrbit, 400), component.Abilities{})
	e.NoDamage = true

	beforeBoss, afterBoss, beforeCollision := &bulletTap{}, &bulletTap{}, &bulletTap{}
	var systems []System
	for _, s := range NewDefaultScheduler().Systems() {
		switch s.(type) {
		case *BossSystem:
			systems = append(systems, beforeBoss, s, afterBoss)
			continue
		case *CollisionSystem:
			systems = append(systems, beforeCollision)
		}
		systems = append(systems, s)
	}
	sched := NewScheduler(systems...)

	spawned := 0
	for f := 0; f < 200; f++ {
		sched.Update(e)
		for i := len(beforeBoss.at); i < len(afterBoss.at); i++ {
			want := afterBoss.at[i]
			if want.Owner != component.OwnerEnemy || want.Vel == (cp.Vector{}) {
				continue
			}
			spawned++
			if got := beforeCollision.at[i].Pos; got != want.Pos {
				t.Fatalf("frame %d: bullet moved from %v to %v before its first collision test", f, want.Pos, got)
			}
		}
	}
	if spawned == 0 {
		t.Fatalf("boss fired nothing in 200 frames")
	}
}
