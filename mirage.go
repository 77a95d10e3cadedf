package main

import "math"

const (
	MirageLifeTicks   = 300 // 5s at 60Hz
	MirageHitRange    = 20.0
	MirageForce       = 15.0
	MirageHitCooldown = 30 // ticks between knockbacks from one mirage
	MirageMinSpeed    = 12.0
	MirageMaxSpeed    = 18.0
	MirageCount       = 4
)

// Mirage is a bouncing decoy projectile spawned by the MIRROR effect. It
// knocks the non-owning player back on proximity, throttled by a per-mirage
// hit cooldown, and persists until its lifetime expires.
type Mirage struct {
	ID      string
	Owner   string // owning player id
	X, Y    float64
	VX, VY  float64
	Life    int // ticks remaining
	HitCD   int // ticks until it can knock back again
}

// NewMirage creates a mirage at (x, y) moving at the given angle.
func NewMirage(owner string, x, y, angle float64) *Mirage {
	speed := randRange(MirageMinSpeed, MirageMaxSpeed)
	return &Mirage{
		ID:    GenerateID(4),
		Owner: owner,
		X:     x,
		Y:     y,
		VX:    math.Cos(angle) * speed,
		VY:    math.Sin(angle) * speed,
		Life:  MirageLifeTicks,
	}
}

// Update advances the mirage one tick and applies its proximity knockback
// to the victim. Returns false when the mirage has expired.
func (m *Mirage) Update(g *Game, victim *Player) bool {
	m.Life--
	if m.Life <= 0 {
		return false
	}
	if m.HitCD > 0 {
		m.HitCD--
	}

	m.X += m.VX
	m.Y += m.VY
	if m.X < 0 {
		m.X = 0
		m.VX = -m.VX
	} else if m.X > ArenaWidth {
		m.X = ArenaWidth
		m.VX = -m.VX
	}
	if m.Y < 0 {
		m.Y = 0
		m.VY = -m.VY
	} else if m.Y > ArenaHeight {
		m.Y = ArenaHeight
		m.VY = -m.VY
	}

	if m.HitCD <= 0 && !victim.Blocking && !victim.Meteor && victim.Mode != MoveGrid {
		if Distance(m.X, m.Y, victim.X, victim.Y) < MirageHitRange+victim.Radius {
			angle := math.Atan2(victim.Y-m.Y, victim.X-m.X)
			g.applyImpulse(victim, angle, MirageForce)
			m.HitCD = MirageHitCooldown
		}
	}
	return true
}

// ToSnapshot converts to the broadcast view.
func (m *Mirage) ToSnapshot() MirageSnapshot {
	return MirageSnapshot{ID: m.ID, X: m.X, Y: m.Y, Owner: m.Owner, Life: m.Life}
}
