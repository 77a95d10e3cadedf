package main

import (
	"math"
	"time"
)

const (
	VoidWellLifeTicks  = 180 // 3s at 60Hz
	VoidWellPullRadius = 800.0
	VoidWellMaxForce   = 2.5
	VoidWellStunRadius = 50.0
	VoidStunCDPenalty  = 300 // competitive ability cooldown ticks
)

// VoidWell is a static pull source spawned by the VOID effect. The pull on
// the non-owning player scales linearly with proximity; close contact stuns
// the victim for the remainder of the well's lifetime.
type VoidWell struct {
	ID     string
	Owner  string
	X, Y   float64
	Life   int // ticks remaining
	stunned bool // stun already applied (edge guard)
}

// NewVoidWell creates a well at the actor's position.
func NewVoidWell(owner string, x, y float64) *VoidWell {
	return &VoidWell{
		ID:    GenerateID(4),
		Owner: owner,
		X:     x,
		Y:     y,
		Life:  VoidWellLifeTicks,
	}
}

// Update advances the well one tick, pulling the victim toward it.
// Returns false when the well has expired.
func (w *VoidWell) Update(g *Game, victim *Player) bool {
	w.Life--
	if w.Life <= 0 {
		return false
	}

	if victim.Blocking || victim.Meteor || victim.Mode == MoveGrid {
		return true
	}

	dist := Distance(w.X, w.Y, victim.X, victim.Y)
	if dist >= VoidWellPullRadius || dist == 0 {
		return true
	}

	force := VoidWellMaxForce * (1 - dist/VoidWellPullRadius)
	angle := math.Atan2(w.Y-victim.Y, w.X-victim.X)
	g.applyImpulse(victim, angle, force)

	if dist < VoidWellStunRadius && !w.stunned {
		w.stunned = true
		victim.Stunned = true
		// One timer for the remainder of this well's life.
		g.timers.After(time.Duration(w.Life)*TickDuration, func() {
			victim.Stunned = false
		})
		if g.Mode == ModeCompetitive {
			victim.AbilityCD += VoidStunCDPenalty
			if victim.AbilityCD > AbilityCooldownTicks {
				victim.AbilityCD = AbilityCooldownTicks
			}
		}
	}
	return true
}

// ToSnapshot converts to the broadcast view.
func (w *VoidWell) ToSnapshot() VoidWellSnapshot {
	return VoidWellSnapshot{ID: w.ID, X: w.X, Y: w.Y, Owner: w.Owner, Life: w.Life}
}
