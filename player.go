package main

import "time"

const (
	ArenaWidth  = 1000.0
	ArenaHeight = 650.0

	PlayerRadius = 20.0
	PlayerMass   = 1.0
	WinScore     = 21

	// Velocities are units per tick; position integrates with a plain
	// Euler step each tick.
	PlayerAccel   = 0.85
	PlayerDrag    = 0.94
	GridSpeed     = 9.5
	FreezePenalty = 0.3  // acceleration multiplier while frozen
	InfinitySelf  = 0.9  // acceleration multiplier while own field is up

	DashSpeed       = 16.0
	DashDuration    = 200 * time.Millisecond
	DashCooldown    = 800 * time.Millisecond
	BlockDuration   = 400 * time.Millisecond
	RecoilDuration  = 400 * time.Millisecond
	DashImpactForce = 22.0
	BumpForce       = 8.0
	BlockCounterPush = 5.0

	AbilityCooldownTicks = 600 // competitive, 10s at 60Hz
)

// MoveMode is the exclusive movement regime of a player. Stacking buffs
// (speed, shield, vessel, infinity, freeze penalty) are independent fields.
type MoveMode int

const (
	MoveFree MoveMode = iota
	MoveGrid
	MoveEchoFrozen
)

// EchoImpact is an impulse buffered while its target is echo-frozen.
type EchoImpact struct {
	Angle float64
	Force float64
	At    time.Time
}

// Player is one side of the duel. All fields are owned by the room loop.
type Player struct {
	ID     string // "p1" or "p2"
	X, Y   float64
	VX, VY float64
	Radius float64
	Mass   float64
	Score  int

	Mode           MoveMode
	GridDX, GridDY float64 // current cardinal direction in grid mode

	Keys InputKeys

	DashReady      bool
	Dashing        bool
	DashDX, DashDY float64 // committed dash direction
	Blocking       bool
	Recoiling      bool
	Frozen         bool
	Stunned        bool
	Meteor         bool
	EchoActive     bool
	InfinityActive bool
	VesselActive   bool
	Shield         bool

	SpeedMul    float64
	EchoHistory []EchoImpact

	// Competitive only
	Ability   string
	AbilityCD int // ticks remaining
}

// NewPlayer creates a player at the default spawn for its slot.
func NewPlayer(id string) *Player {
	p := &Player{ID: id}
	p.ResetForRound()
	return p
}

// SpawnX returns the round-start x position for a slot.
func SpawnX(id string) float64 {
	if id == "p1" {
		return 250
	}
	return 750
}

// ResetForRound restores everything except cumulative score and the
// competitive ability selection.
func (p *Player) ResetForRound() {
	p.X = SpawnX(p.ID)
	p.Y = ArenaHeight / 2
	p.VX, p.VY = 0, 0
	p.Radius = PlayerRadius
	p.Mass = PlayerMass
	p.Mode = MoveFree
	p.GridDX, p.GridDY = 0, 0
	p.DashReady = true
	p.Dashing = false
	p.DashDX, p.DashDY = 0, 0
	p.Blocking = false
	p.Recoiling = false
	p.Frozen = false
	p.Stunned = false
	p.Meteor = false
	p.EchoActive = false
	p.InfinityActive = false
	p.VesselActive = false
	p.Shield = false
	p.SpeedMul = 1.0
	p.EchoHistory = nil
	p.AbilityCD = 0
}

// Recoil knocks the player out of dash/block into the recovery window.
// The caller schedules the recoil-end timer.
func (p *Player) Recoil() {
	p.Dashing = false
	p.Blocking = false
	p.Recoiling = true
}

// VesselMul is the knockback multiplier this player deals.
func (p *Player) VesselMul() float64 {
	if p.VesselActive {
		return 2.0
	}
	return 1.0
}

// CanAct reports whether the player may trigger a dash or ability.
func (p *Player) CanAct() bool {
	return !p.Blocking && !p.Stunned && !p.Recoiling && !p.Meteor &&
		!p.EchoActive && p.Mode != MoveEchoFrozen
}

// ToSnapshot converts to the broadcast view.
func (p *Player) ToSnapshot() PlayerSnapshot {
	return PlayerSnapshot{
		X:               p.X,
		Y:               p.Y,
		VX:              p.VX,
		VY:              p.VY,
		Radius:          p.Radius,
		Mass:            p.Mass,
		Score:           p.Score,
		SpeedMultiplier: p.SpeedMul,
		DashReady:       p.DashReady,
		IsDashing:       p.Dashing,
		IsBlocking:      p.Blocking,
		IsRecoiling:     p.Recoiling,
		IsFrozen:        p.Frozen,
		IsStunned:       p.Stunned,
		IsMeteor:        p.Meteor,
		IsGrid:          p.Mode == MoveGrid,
		IsEchoFrozen:    p.Mode == MoveEchoFrozen,
		IsEchoActive:    p.EchoActive,
		IsInfinity:      p.InfinityActive,
		IsVessel:        p.VesselActive,
		HasShield:       p.Shield,
		Ability:         p.Ability,
		AbilityCooldown: p.AbilityCD,
	}
}
