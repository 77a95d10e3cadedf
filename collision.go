package main

import (
	"math"
	"time"
)

const (
	VesselEchoDelay = 300 * time.Millisecond

	shakeBlockCounter = 25.0
	shakeDashClash    = 30.0
	shakeDashHit      = 18.0
	shakeBump         = 8.0

	DashHitCDPenalty = 200 // competitive ability cooldown ticks
)

// resolvePlayerCollision detects and resolves the body-body collision
// between the two players for this tick. The collision broadcast is
// edge-triggered: it fires once on overlap entry, not while the overlap
// persists.
func (g *Game) resolvePlayerCollision() {
	p1, p2 := g.P1, g.P2

	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	sum := p1.Radius + p2.Radius
	if dist >= sum {
		g.touching = false
		return
	}

	nx, ny := 1.0, 0.0
	if dist > 0 {
		nx, ny = dx/dist, dy/dist
	}

	g.separate(p1, p2, nx, ny, sum-dist)

	var intensity float64
	switch {
	case p1.Dashing && p2.Blocking:
		intensity = g.resolveDashIntoBlock(p1, p2)
	case p2.Dashing && p1.Blocking:
		intensity = g.resolveDashIntoBlock(p2, p1)
	case p1.Dashing && p2.Dashing:
		intensity = g.resolveDashClash()
	case p1.Dashing:
		intensity = g.resolveDashHit(p1, p2)
	case p2.Dashing:
		intensity = g.resolveDashHit(p2, p1)
	default:
		intensity = g.resolveBump(nx, ny)
	}

	g.Shake = math.Max(g.Shake, intensity)
	g.Flash = math.Max(g.Flash, intensity/40)

	if !g.touching {
		g.touching = true
		g.emit(Envelope{T: MsgCollisionEffect, Data: CollisionEffectMsg{
			X:         (p1.X + p2.X) / 2,
			Y:         (p1.Y + p2.Y) / 2,
			Intensity: intensity,
		}})
	}
}

// separate pushes the pair apart along the collision normal. A side that
// cannot move (echo-frozen or grid-locked) absorbs none of the overlap.
func (g *Game) separate(p1, p2 *Player, nx, ny, overlap float64) {
	p1Mobile := p1.Mode == MoveFree
	p2Mobile := p2.Mode == MoveFree
	switch {
	case p1Mobile && p2Mobile:
		p1.X -= nx * overlap / 2
		p1.Y -= ny * overlap / 2
		p2.X += nx * overlap / 2
		p2.Y += ny * overlap / 2
	case p1Mobile:
		p1.X -= nx * overlap
		p1.Y -= ny * overlap
	case p2Mobile:
		p2.X += nx * overlap
		p2.Y += ny * overlap
	}
}

// resolveDashIntoBlock: the attacker bounces violently off the active
// block and is put into recoil; the defender takes a small forward push.
func (g *Game) resolveDashIntoBlock(attacker, defender *Player) float64 {
	back := math.Atan2(-attacker.DashDY, -attacker.DashDX)
	g.applyImpulse(attacker, back, 2*DashImpactForce)
	g.startRecoil(attacker)

	fwd := math.Atan2(attacker.DashDY, attacker.DashDX)
	g.applyImpulse(defender, fwd, BlockCounterPush*attacker.VesselMul())
	return shakeBlockCounter
}

// resolveDashClash: both dashing, both bounced back and put into recoil.
func (g *Game) resolveDashClash() float64 {
	p1, p2 := g.P1, g.P2
	g.applyImpulse(p1, math.Atan2(-p1.DashDY, -p1.DashDX), DashImpactForce*p2.VesselMul())
	g.applyImpulse(p2, math.Atan2(-p2.DashDY, -p2.DashDX), DashImpactForce*p1.VesselMul())
	g.startRecoil(p1)
	g.startRecoil(p2)
	return shakeDashClash
}

// resolveDashHit: exactly one side dashing into a non-blocking victim.
func (g *Game) resolveDashHit(attacker, victim *Player) float64 {
	fwd := math.Atan2(attacker.DashDY, attacker.DashDX)
	g.applyImpulse(victim, fwd, DashImpactForce*attacker.VesselMul())

	attacker.Dashing = false
	if victim.Mode == MoveEchoFrozen {
		// Hitting a frozen body reflects the attacker violently.
		attacker.VX = -attacker.DashDX * DashSpeed
		attacker.VY = -attacker.DashDY * DashSpeed
	} else {
		attacker.VX *= 0.35
		attacker.VY *= 0.35
		g.startRecoil(victim)
		if g.Mode == ModeCompetitive {
			victim.AbilityCD += DashHitCDPenalty
			if victim.AbilityCD > AbilityCooldownTicks {
				victim.AbilityCD = AbilityCooldownTicks
			}
		}
	}
	return shakeDashHit
}

// resolveBump: neither side dashing — symmetric mass-weighted impulses.
// If one side carries the vessel buff, the other side additionally takes an
// identical ghost impulse 300ms later.
func (g *Game) resolveBump(nx, ny float64) float64 {
	p1, p2 := g.P1, g.P2
	away1 := math.Atan2(-ny, -nx)
	away2 := math.Atan2(ny, nx)
	force1 := BumpForce * p2.Mass / p1.Mass
	force2 := BumpForce * p1.Mass / p2.Mass
	g.applyImpulse(p1, away1, force1)
	g.applyImpulse(p2, away2, force2)

	if p1.VesselActive && !p2.VesselActive {
		g.timers.After(VesselEchoDelay, func() {
			if p2.Mode != MoveGrid {
				g.applyImpulse(p2, away2, force2)
			}
		})
	} else if p2.VesselActive && !p1.VesselActive {
		g.timers.After(VesselEchoDelay, func() {
			if p1.Mode != MoveGrid {
				g.applyImpulse(p1, away1, force1)
			}
		})
	}
	return shakeBump
}
