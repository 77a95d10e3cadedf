package main

import (
	"testing"
)

// placeOverlap positions the players 30 units apart on the x axis,
// inside their combined radius of 40.
func placeOverlap(g *Game) {
	g.P1.X, g.P1.Y = 500, 300
	g.P2.X, g.P2.Y = 530, 300
	g.P1.VX, g.P1.VY = 0, 0
	g.P2.VX, g.P2.VY = 0, 0
}

func TestBumpSymmetricEqualMass(t *testing.T) {
	g, clock, bc := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)

	g.resolvePlayerCollision()

	if !almostEq(g.P1.VX, -BumpForce, 1e-9) {
		t.Errorf("p1.vx = %v, want %v", g.P1.VX, -BumpForce)
	}
	if !almostEq(g.P2.VX, BumpForce, 1e-9) {
		t.Errorf("p2.vx = %v, want %v", g.P2.VX, BumpForce)
	}
	// Overlap of 10 split evenly.
	if !almostEq(g.P1.X, 495, 1e-9) || !almostEq(g.P2.X, 535, 1e-9) {
		t.Errorf("separation wrong: p1.x=%v p2.x=%v", g.P1.X, g.P2.X)
	}
	if bc.count(MsgCollisionEffect) != 1 {
		t.Errorf("collision_effect count = %d, want 1", bc.count(MsgCollisionEffect))
	}
}

func TestBumpMassWeighted(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)
	g.P1.Mass = SizeMass // giant p1

	g.resolvePlayerCollision()

	wantP1 := BumpForce * PlayerMass / SizeMass
	wantP2 := BumpForce * SizeMass / PlayerMass
	if !almostEq(g.P1.VX, -wantP1, 1e-9) {
		t.Errorf("heavy p1.vx = %v, want %v", g.P1.VX, -wantP1)
	}
	if !almostEq(g.P2.VX, wantP2, 1e-9) {
		t.Errorf("light p2.vx = %v, want %v", g.P2.VX, wantP2)
	}
}

func TestCollisionBroadcastEdgeTriggered(t *testing.T) {
	g, clock, bc := newTestGame(ModeCompetitive)
	startLive(g, clock)

	placeOverlap(g)
	g.resolvePlayerCollision()
	// Sustained overlap: re-pin and resolve again.
	placeOverlap(g)
	g.resolvePlayerCollision()

	if bc.count(MsgCollisionEffect) != 1 {
		t.Errorf("sustained overlap emitted %d effects, want 1", bc.count(MsgCollisionEffect))
	}

	// Separate, then collide again: a fresh edge.
	g.P2.X = 700
	g.resolvePlayerCollision()
	placeOverlap(g)
	g.resolvePlayerCollision()
	if bc.count(MsgCollisionEffect) != 2 {
		t.Errorf("re-entry emitted %d effects, want 2", bc.count(MsgCollisionEffect))
	}
}

func TestDashClashBouncesBoth(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)

	g.P1.Dashing = true
	g.P1.DashDX, g.P1.DashDY = 1, 0
	g.P2.Dashing = true
	g.P2.DashDX, g.P2.DashDY = -1, 0

	g.resolvePlayerCollision()

	if !g.P1.Recoiling || !g.P2.Recoiling {
		t.Fatal("both clashers should recoil")
	}
	if g.P1.Dashing || g.P2.Dashing {
		t.Error("recoil should cancel the dash")
	}
	if g.P1.VX >= 0 || g.P2.VX <= 0 {
		t.Errorf("clash should reverse both: p1.vx=%v p2.vx=%v", g.P1.VX, g.P2.VX)
	}

	runTicks(g, clock, ticksFor(RecoilDuration))
	if g.P1.Recoiling || g.P2.Recoiling {
		t.Error("recoil should clear after its duration")
	}
}

func TestDashIntoBlockPunishesAttacker(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)

	g.P1.Dashing = true
	g.P1.DashDX, g.P1.DashDY = 1, 0
	g.P2.Blocking = true

	g.resolvePlayerCollision()

	if !almostEq(g.P1.VX, -2*DashImpactForce, 1e-9) {
		t.Errorf("attacker vx = %v, want %v", g.P1.VX, -2*DashImpactForce)
	}
	if !g.P1.Recoiling {
		t.Error("attacker should recoil off the block")
	}
	if !almostEq(g.P2.VX, BlockCounterPush, 1e-9) {
		t.Errorf("defender vx = %v, want %v", g.P2.VX, BlockCounterPush)
	}
	if g.P2.Recoiling {
		t.Error("defender must not recoil")
	}
}

func TestDashHitKnockback(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)

	g.P1.Dashing = true
	g.P1.DashDX, g.P1.DashDY = 1, 0
	g.P1.VX = DashSpeed

	g.resolvePlayerCollision()

	if !almostEq(g.P2.VX, DashImpactForce, 1e-9) {
		t.Errorf("victim vx = %v, want %v", g.P2.VX, DashImpactForce)
	}
	if !g.P2.Recoiling {
		t.Error("victim should recoil")
	}
	if g.P1.Dashing {
		t.Error("connecting should end the dash")
	}
	if !almostEq(g.P1.VX, DashSpeed*0.35, 1e-9) {
		t.Errorf("attacker vx = %v, want damped %v", g.P1.VX, DashSpeed*0.35)
	}
	if g.P2.AbilityCD != DashHitCDPenalty {
		t.Errorf("victim cooldown penalty = %d, want %d", g.P2.AbilityCD, DashHitCDPenalty)
	}
}

func TestDashHitPenaltyCapped(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)

	g.P2.AbilityCD = AbilityCooldownTicks - 50
	g.P1.Dashing = true
	g.P1.DashDX, g.P1.DashDY = 1, 0

	g.resolvePlayerCollision()

	if g.P2.AbilityCD != AbilityCooldownTicks {
		t.Errorf("cooldown = %d, want capped at %d", g.P2.AbilityCD, AbilityCooldownTicks)
	}
}

func TestDashIntoEchoFrozenReflects(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)

	g.P2.Mode = MoveEchoFrozen
	g.P1.Dashing = true
	g.P1.DashDX, g.P1.DashDY = 1, 0
	g.P1.VX = DashSpeed

	g.resolvePlayerCollision()

	if !almostEq(g.P1.VX, -DashSpeed, 1e-9) {
		t.Errorf("attacker vx = %v, want full reflection %v", g.P1.VX, -DashSpeed)
	}
	if g.P2.VX != 0 {
		t.Error("frozen victim must not move")
	}
	if len(g.P2.EchoHistory) != 1 {
		t.Errorf("buffered impacts = %d, want 1", len(g.P2.EchoHistory))
	}
	if g.P2.Recoiling {
		t.Error("frozen victim must not recoil")
	}
}

func TestVesselScalesDealtKnockback(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)

	g.P1.VesselActive = true
	g.P1.Dashing = true
	g.P1.DashDX, g.P1.DashDY = 1, 0

	g.resolvePlayerCollision()

	if !almostEq(g.P2.VX, 2*DashImpactForce, 1e-9) {
		t.Errorf("vessel dash knockback = %v, want %v", g.P2.VX, 2*DashImpactForce)
	}
}

func TestVesselGhostEchoOnBump(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)
	g.P1.VesselActive = true

	g.resolvePlayerCollision()
	if !almostEq(g.P2.VX, BumpForce, 1e-9) {
		t.Fatalf("initial bump vx = %v, want %v", g.P2.VX, BumpForce)
	}

	// Park the pair far apart and wait for the delayed ghost impulse.
	g.P1.X, g.P2.X = 100, 900
	g.P1.VX, g.P2.VX = 0, 0
	runTicks(g, clock, ticksFor(VesselEchoDelay)-4)
	if g.P2.VX > 1 {
		t.Error("ghost echo fired early")
	}
	runTicks(g, clock, 4)
	// Drag has already shaved a tick or two off the raw impulse.
	if g.P2.VX < BumpForce*PlayerDrag*PlayerDrag*PlayerDrag || g.P2.VX > BumpForce {
		t.Errorf("ghost echo vx = %v, want near %v", g.P2.VX, BumpForce)
	}
}

func TestVesselGhostEchoSkipsGrid(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)
	g.P1.VesselActive = true

	g.resolvePlayerCollision()

	g.P1.X, g.P2.X = 100, 900
	g.P2.Mode = MoveGrid
	g.P2.GridDX, g.P2.GridDY = 0, 0
	g.P2.VX = 0
	runTicks(g, clock, ticksFor(VesselEchoDelay))
	if g.P2.VX != 0 {
		t.Errorf("grid-locked player took the ghost impulse: vx = %v", g.P2.VX)
	}
}

func TestSeparationFavorsMobileSide(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)
	placeOverlap(g)
	g.P2.Mode = MoveEchoFrozen

	g.resolvePlayerCollision()

	if g.P2.X != 530 {
		t.Errorf("immobile side moved to x=%v", g.P2.X)
	}
	if !almostEq(g.P1.X, 490, 1e-9) {
		t.Errorf("mobile side x = %v, want 490", g.P1.X)
	}
}
