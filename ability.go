package main

import (
	"math"
	"time"
)

const (
	SpeedBoostMul      = 1.8
	SpeedBoostDuration = 5 * time.Second

	SizeRadius   = 45.0
	SizeMass     = 3.0
	SizeDuration = 7 * time.Second

	ShieldDuration = 8 * time.Second

	FreezeDuration = 4500 * time.Millisecond

	WaveRadius   = 450.0
	WaveMaxForce = 45.0

	MeteorFlight = 800 * time.Millisecond
	MeteorForce  = 50.0
	MeteorRange  = 150.0
	MeteorShake  = 40.0

	GridDuration = 6 * time.Second

	EchoPullSteps      = 30
	EchoFreezeDuration = 3 * time.Second
	EchoReplayWindow   = time.Second
	EchoCompression    = 3

	BlitzLinks    = 3
	BlitzMinSpeed = 20.0
	BlitzActive   = 150 * time.Millisecond
	BlitzStun     = 120 * time.Millisecond

	InfinityDuration = 6 * time.Second
	VesselDuration   = 5 * time.Second
)

// ApplyAbility resolves one discrete-trigger effect for the actor against
// the opponent. Effects either mutate state immediately, spawn entities, or
// schedule future mutations through the room's timer registry — every timed
// reversion is tracked there so a round reset cancels it.
func (g *Game) ApplyAbility(actor, opp *Player, kind PowerUpType) {
	switch kind {
	case PowerSpeed:
		actor.SpeedMul = SpeedBoostMul
		g.timers.After(SpeedBoostDuration, func() {
			actor.SpeedMul = 1.0
		})

	case PowerSize:
		actor.Radius = SizeRadius
		actor.Mass = SizeMass
		g.timers.After(SizeDuration, func() {
			actor.Radius = PlayerRadius
			actor.Mass = PlayerMass
		})

	case PowerShield:
		actor.Shield = true
		g.timers.After(ShieldDuration, func() {
			actor.Shield = false
		})

	case PowerFreeze:
		opp.Frozen = true
		g.timers.After(FreezeDuration, func() {
			opp.Frozen = false
		})

	case PowerWave:
		dist := Distance(actor.X, actor.Y, opp.X, opp.Y)
		if dist > 0 && dist < WaveRadius {
			force := WaveMaxForce * (1 - dist/WaveRadius)
			angle := math.Atan2(opp.Y-actor.Y, opp.X-actor.X)
			g.applyImpulse(opp, angle, force)
		}
		// The visual fires even when nobody is in range.
		g.emit(Envelope{T: MsgWaveEffect, Data: WaveEffectMsg{
			X: actor.X, Y: actor.Y, PlayerID: actor.ID,
		}})

	case PowerVoid:
		g.VoidWells = append(g.VoidWells, NewVoidWell(actor.ID, actor.X, actor.Y))

	case PowerMirror:
		for i := 0; i < MirageCount; i++ {
			angle := randFloat() * 2 * math.Pi
			g.Mirages = append(g.Mirages, NewMirage(actor.ID, actor.X, actor.Y, angle))
		}

	case PowerMeteor:
		// Target locked at trigger time, not at landing.
		tx, ty := opp.X, opp.Y
		actor.Meteor = true
		g.timers.After(MeteorFlight, func() {
			actor.Meteor = false
			actor.X, actor.Y = tx, ty
			actor.VX, actor.VY = 0, 0
			if d := Distance(tx, ty, opp.X, opp.Y); d < MeteorRange {
				angle := math.Atan2(opp.Y-ty, opp.X-tx)
				g.applyImpulse(opp, angle, MeteorForce)
			}
			if g.Shake < MeteorShake {
				g.Shake = MeteorShake
			}
		})

	case PowerGrid:
		actor.Mode = MoveGrid
		if actor.ID == "p1" {
			actor.GridDX, actor.GridDY = -1, 0
		} else {
			actor.GridDX, actor.GridDY = 1, 0
		}
		g.timers.After(GridDuration, func() {
			if actor.Mode == MoveGrid {
				actor.Mode = MoveFree
			}
		})

	case PowerEcho:
		g.startEchoPull(actor, opp)

	case PowerBlitz:
		speed := math.Hypot(actor.VX, actor.VY) * 2
		if speed < BlitzMinSpeed {
			speed = BlitzMinSpeed
		}
		g.blitzLink(actor, opp, speed, BlitzLinks)

	case PowerInfinity:
		actor.InfinityActive = true
		g.timers.After(InfinityDuration, func() {
			actor.InfinityActive = false
		})

	case PowerVessel:
		actor.VesselActive = true
		g.timers.After(VesselDuration, func() {
			actor.VesselActive = false
		})
	}
}

// echoPull is the bounded pull interaction: the actor holds still while the
// opponent is dragged toward contact, one step per tick, at most
// EchoPullSteps steps. It aborts early if the opponent raises an infinity
// field mid-pull.
type echoPull struct {
	actor  *Player
	victim *Player
	steps  int
}

func (g *Game) startEchoPull(actor, victim *Player) {
	if g.pull != nil || victim.Mode == MoveEchoFrozen {
		return
	}
	actor.EchoActive = true
	actor.VX, actor.VY = 0, 0
	g.pull = &echoPull{actor: actor, victim: victim, steps: EchoPullSteps}
}

// advanceEchoPull runs one pull step. Called once per room tick.
func (g *Game) advanceEchoPull() {
	ep := g.pull
	if ep == nil {
		return
	}
	if ep.victim.InfinityActive {
		g.endEchoPull(false)
		return
	}

	dx := ep.actor.X - ep.victim.X
	dy := ep.actor.Y - ep.victim.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist <= ep.actor.Radius+ep.victim.Radius {
		g.endEchoPull(true)
		return
	}
	if ep.steps <= 0 {
		g.endEchoPull(false)
		return
	}

	step := dist / float64(ep.steps)
	ep.victim.X += dx / dist * step
	ep.victim.Y += dy / dist * step
	ep.victim.VX, ep.victim.VY = 0, 0
	ep.steps--
}

func (g *Game) endEchoPull(contact bool) {
	ep := g.pull
	g.pull = nil
	ep.actor.EchoActive = false
	if contact {
		g.freezeEcho(ep.victim)
	}
}

// freezeEcho puts the victim into the echo-frozen state. Impacts aimed at
// them during the window are buffered with timestamps instead of applied.
func (g *Game) freezeEcho(victim *Player) {
	victim.Mode = MoveEchoFrozen
	victim.VX, victim.VY = 0, 0
	victim.EchoHistory = nil
	g.timers.After(EchoFreezeDuration, func() {
		g.unfreezeEcho(victim)
	})
}

// unfreezeEcho releases the victim and replays every buffered impact.
// Relative spacing is divided by EchoCompression and the whole replay is
// squeezed into at most EchoReplayWindow.
func (g *Game) unfreezeEcho(victim *Player) {
	if victim.Mode == MoveEchoFrozen {
		victim.Mode = MoveFree
	}
	history := victim.EchoHistory
	victim.EchoHistory = nil
	if len(history) == 0 {
		return
	}

	base := history[0].At
	delays := make([]time.Duration, len(history))
	var maxDelay time.Duration
	for i, imp := range history {
		delays[i] = imp.At.Sub(base) / EchoCompression
		if delays[i] > maxDelay {
			maxDelay = delays[i]
		}
	}
	scale := 1.0
	if maxDelay > EchoReplayWindow {
		scale = float64(EchoReplayWindow) / float64(maxDelay)
	}

	for i, imp := range history {
		impact := imp
		g.timers.After(time.Duration(float64(delays[i])*scale), func() {
			// State may have moved on since the buffer was filled.
			if victim.Mode == MoveGrid {
				return
			}
			g.applyImpulse(victim, impact.Angle, impact.Force)
		})
	}
}

// blitzLink runs one link of the blitz chain: a committed dash at the
// captured speed, then a short recovery stun, then the next link.
// Direction is re-sampled from the current input at each link start.
func (g *Game) blitzLink(actor, opp *Player, speed float64, remaining int) {
	if remaining <= 0 || !g.Active {
		return
	}
	dx, dy := intentVector(actor.Keys)
	if dx == 0 && dy == 0 {
		dx, dy = Normalize(actor.VX, actor.VY)
	}
	if dx == 0 && dy == 0 {
		dx, dy = Normalize(opp.X-actor.X, opp.Y-actor.Y)
	}

	actor.Dashing = true
	actor.DashDX, actor.DashDY = dx, dy
	actor.VX, actor.VY = dx*speed, dy*speed

	g.timers.After(BlitzActive, func() {
		actor.Dashing = false
		actor.Stunned = true
		actor.VX *= 0.2
		actor.VY *= 0.2
		g.timers.After(BlitzStun, func() {
			actor.Stunned = false
			g.blitzLink(actor, opp, speed, remaining-1)
		})
	})
}
