package main

import (
	"math"
	"testing"
)

func TestFreeMovementAccelAndDrag(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P1.Keys = InputKeys{Right: true}
	runTicks(g, clock, 1)

	want := PlayerAccel * PlayerDrag
	if !almostEq(g.P1.VX, want, 1e-9) {
		t.Errorf("vx after one tick = %v, want %v", g.P1.VX, want)
	}

	// Recurrence: v' = (v + a) * drag while the key is held.
	v := g.P1.VX
	for i := 0; i < 5; i++ {
		want = (v + PlayerAccel) * PlayerDrag
		runTicks(g, clock, 1)
		if !almostEq(g.P1.VX, want, 1e-9) {
			t.Fatalf("tick %d: vx = %v, want %v", i, g.P1.VX, want)
		}
		v = g.P1.VX
	}
}

func TestCoastingDecays(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P1.VX = 10
	runTicks(g, clock, 1)
	if !almostEq(g.P1.VX, 10*PlayerDrag, 1e-9) {
		t.Errorf("coasting vx = %v, want %v", g.P1.VX, 10*PlayerDrag)
	}
}

func TestFrozenAccelPenalty(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P1.Frozen = true
	g.P1.Keys = InputKeys{Right: true}
	runTicks(g, clock, 1)

	want := PlayerAccel * FreezePenalty * PlayerDrag
	if !almostEq(g.P1.VX, want, 1e-9) {
		t.Errorf("frozen vx = %v, want %v", g.P1.VX, want)
	}
}

func TestSpeedBoostScalesAccel(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P1.SpeedMul = SpeedBoostMul
	g.P1.Keys = InputKeys{Right: true}
	runTicks(g, clock, 1)

	want := PlayerAccel * SpeedBoostMul * PlayerDrag
	if !almostEq(g.P1.VX, want, 1e-9) {
		t.Errorf("boosted vx = %v, want %v", g.P1.VX, want)
	}
}

func TestGridMovementSkipsDrag(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P1.Mode = MoveGrid
	g.P1.GridDX, g.P1.GridDY = 1, 0
	x := g.P1.X
	runTicks(g, clock, 1)

	if !almostEq(g.P1.VX, GridSpeed, 1e-9) {
		t.Errorf("grid vx = %v, want %v", g.P1.VX, GridSpeed)
	}
	if !almostEq(g.P1.X, x+GridSpeed, 1e-9) {
		t.Errorf("grid x = %v, want %v", g.P1.X, x+GridSpeed)
	}

	// Same speed next tick: no drag accumulation in grid mode.
	runTicks(g, clock, 1)
	if !almostEq(g.P1.VX, GridSpeed, 1e-9) {
		t.Errorf("grid vx decayed to %v", g.P1.VX)
	}
}

func TestGridDirectionPriority(t *testing.T) {
	cases := []struct {
		name   string
		keys   InputKeys
		dx, dy float64
	}{
		{"up beats right", InputKeys{Up: true, Right: true}, 0, -1},
		{"down beats left", InputKeys{Down: true, Left: true}, 0, 1},
		{"left beats right", InputKeys{Left: true, Right: true}, -1, 0},
		{"right alone", InputKeys{Right: true}, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, clock, _ := newTestGame(ModeCompetitive)
			startLive(g, clock)
			g.P1.Mode = MoveGrid
			g.P1.Keys = tc.keys
			runTicks(g, clock, 1)
			if g.P1.GridDX != tc.dx || g.P1.GridDY != tc.dy {
				t.Errorf("dir = (%v, %v), want (%v, %v)",
					g.P1.GridDX, g.P1.GridDY, tc.dx, tc.dy)
			}
		})
	}
}

func TestGridKeepsDirectionWithoutInput(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P1.Mode = MoveGrid
	g.P1.GridDX, g.P1.GridDY = 0, 1
	runTicks(g, clock, 1)
	if g.P1.GridDX != 0 || g.P1.GridDY != 1 {
		t.Error("grid direction should persist when no key is held")
	}
}

func TestEchoFrozenImmobile(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P1.Mode = MoveEchoFrozen
	g.P1.VX = 5
	g.P1.Keys = InputKeys{Right: true}
	x := g.P1.X
	runTicks(g, clock, 1)

	if g.P1.VX != 0 || g.P1.X != x {
		t.Error("echo-frozen player moved")
	}
}

func TestShieldBouncesOffBounds(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P1.Shield = true
	g.P1.X = 25
	g.P1.VX = -10
	runTicks(g, clock, 1)

	if g.P1.X != g.P1.Radius {
		t.Errorf("x = %v, want clamp at %v", g.P1.X, g.P1.Radius)
	}
	if g.P1.VX <= 0 {
		t.Errorf("vx = %v, want reflected outward", g.P1.VX)
	}
	if g.P2.Score != 0 {
		t.Error("shielded wall contact must not end the round")
	}
}

func TestUnshieldedExitEndsRound(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P2.Y = ArenaHeight - 1
	g.P2.VY = 5
	runTicks(g, clock, 1)

	if g.P1.Score != 1 {
		t.Errorf("p1 score = %d, want 1", g.P1.Score)
	}
}

func TestIntentVectorNormalized(t *testing.T) {
	dx, dy := intentVector(InputKeys{Up: true, Right: true})
	if !almostEq(math.Hypot(dx, dy), 1, 1e-9) {
		t.Errorf("diagonal intent length = %v, want 1", math.Hypot(dx, dy))
	}
	if dx <= 0 || dy >= 0 {
		t.Errorf("intent = (%v, %v), want up-right", dx, dy)
	}

	dx, dy = intentVector(InputKeys{Left: true, Right: true})
	if dx != 0 || dy != 0 {
		t.Error("opposing keys should cancel")
	}
}

func TestBlockSuppressesSteering(t *testing.T) {
	g, clock, _ := newTestGame(ModeCompetitive)
	startLive(g, clock)

	g.P1.Blocking = true
	g.P1.Keys = InputKeys{Right: true}
	runTicks(g, clock, 1)
	if g.P1.VX != 0 {
		t.Error("blocking player must not accelerate")
	}
}
