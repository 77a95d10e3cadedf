package main

import (
	"math"
	"time"
)

const (
	TickRate     = 60 // physics ticks per second
	TickDuration = time.Second / TickRate

	CountdownDuration = 1500 * time.Millisecond
	RoundOverPause    = 1000 * time.Millisecond
	RoundReadyPause   = 1500 * time.Millisecond

	ShakeDecay = 0.9  // exponential, per tick
	FlashDecay = 0.04 // linear, per tick
)

// GameMode selects how abilities are obtained.
type GameMode string

const (
	ModeCasual      GameMode = "casual"
	ModeCompetitive GameMode = "competitive"
)

// Broadcaster delivers a message to both room members.
type Broadcaster interface {
	SendJSON(msg interface{})
}

// Game holds the authoritative state of one duel. All methods run on the
// room loop; timer callbacks fire from Tick and therefore share it.
type Game struct {
	P1, P2    *Player
	PowerUps  []*PowerUp
	Mirages   []*Mirage
	VoidWells []*VoidWell

	Shake float64
	Flash float64

	RoundPaused bool
	Active      bool
	Winner      string
	Mode        GameMode

	tick     uint64
	touching bool // players currently overlapping (edge trigger)
	pull     *echoPull

	timers    *TimerRegistry
	broadcast Broadcaster
}

// NewGame creates a fresh duel in the given mode.
func NewGame(mode GameMode, timers *TimerRegistry, b Broadcaster) *Game {
	return &Game{
		P1:        NewPlayer("p1"),
		P2:        NewPlayer("p2"),
		Mode:      mode,
		timers:    timers,
		broadcast: b,
	}
}

// Opponent returns the other player.
func (g *Game) Opponent(p *Player) *Player {
	if p == g.P1 {
		return g.P2
	}
	return g.P1
}

// PlayerByID resolves "p1"/"p2" to the player, or nil.
func (g *Game) PlayerByID(id string) *Player {
	switch id {
	case "p1":
		return g.P1
	case "p2":
		return g.P2
	}
	return nil
}

func (g *Game) emit(env Envelope) {
	if g.broadcast != nil {
		g.broadcast.SendJSON(env)
	}
}

// Start begins the match: a short paused countdown, then live physics.
func (g *Game) Start() {
	g.Active = true
	g.RoundPaused = true
	g.Winner = ""
	g.timers.After(CountdownDuration, func() {
		g.RoundPaused = false
		g.emit(Envelope{T: MsgRoundGo})
	})
	g.scheduleNextPowerUp()
}

// Tick advances the room by one fixed step. Due timer callbacks fire even
// while paused so round sequencing and effect expiry keep moving; physics
// runs only when the game is live.
func (g *Game) Tick() {
	g.timers.RunDue()
	if !g.Active || g.RoundPaused {
		return
	}
	g.tick++

	for _, pu := range g.PowerUps {
		pu.Pulse += PowerUpPulseStep
	}

	g.advanceEchoPull()

	mirages := g.Mirages[:0]
	for _, m := range g.Mirages {
		if m.Update(g, g.victimOf(m.Owner)) {
			mirages = append(mirages, m)
		}
	}
	g.Mirages = mirages

	wells := g.VoidWells[:0]
	for _, w := range g.VoidWells {
		if w.Update(g, g.victimOf(w.Owner)) {
			wells = append(wells, w)
		}
	}
	g.VoidWells = wells

	if g.P1.InfinityActive && !g.P2.Meteor {
		applyInfinityField(g.P1, g.P2)
	}
	if g.P2.InfinityActive && !g.P1.Meteor {
		applyInfinityField(g.P2, g.P1)
	}

	out1 := g.integrate(g.P1)
	out2 := g.integrate(g.P2)

	g.collectPowerUps()

	if out1 {
		g.endRound(g.P1)
		return
	}
	if out2 {
		g.endRound(g.P2)
		return
	}

	if !g.P1.Meteor && !g.P2.Meteor {
		g.resolvePlayerCollision()
	}

	g.Shake *= ShakeDecay
	if g.Shake < 0.5 {
		g.Shake = 0
	}
	g.Flash = Clamp(g.Flash-FlashDecay, 0, 1)

	if g.Mode == ModeCompetitive {
		if g.P1.AbilityCD > 0 {
			g.P1.AbilityCD--
		}
		if g.P2.AbilityCD > 0 {
			g.P2.AbilityCD--
		}
	}

	g.emit(Envelope{T: MsgStateUpdate, Data: StateUpdateMsg{State: g.Snapshot()}})
}

// victimOf returns the player a field entity acts on (the non-owner),
// or an untargetable stand-in check via Meteor handled by callers.
func (g *Game) victimOf(owner string) *Player {
	if owner == "p1" {
		return g.P2
	}
	return g.P1
}

// applyImpulse adds a radial impulse to a player. Impacts aimed at an
// echo-frozen player are buffered with a timestamp instead of applied;
// untargetable (meteor-in-flight) players ignore impulses entirely.
func (g *Game) applyImpulse(p *Player, angle, force float64) {
	if p.Meteor {
		return
	}
	if p.Mode == MoveEchoFrozen {
		p.EchoHistory = append(p.EchoHistory, EchoImpact{
			Angle: angle,
			Force: force,
			At:    g.timers.Now(),
		})
		return
	}
	p.VX += math.Cos(angle) * force
	p.VY += math.Sin(angle) * force
}

// startRecoil clears dash/block and opens the recovery window.
func (g *Game) startRecoil(p *Player) {
	p.Recoil()
	g.timers.After(RecoilDuration, func() {
		p.Recoiling = false
	})
}

// HandleInput stores the held keys; they take effect on the next tick.
func (g *Game) HandleInput(p *Player, keys InputKeys) {
	p.Keys = keys
}

// HandleDash triggers a dash, or a block when no direction is held.
// Rejected during the round-start/goal countdowns.
func (g *Game) HandleDash(p *Player) {
	if !g.Active || g.RoundPaused {
		return
	}
	if p.Dashing || !p.CanAct() {
		return
	}

	dx, dy := intentVector(p.Keys)
	if dx == 0 && dy == 0 {
		p.Blocking = true
		p.VX, p.VY = 0, 0
		g.timers.After(BlockDuration, func() {
			p.Blocking = false
		})
		return
	}

	if !p.DashReady {
		return
	}
	p.DashReady = false
	p.Dashing = true
	p.DashDX, p.DashDY = dx, dy
	p.VX, p.VY = dx*DashSpeed, dy*DashSpeed
	g.timers.After(DashDuration, func() {
		p.Dashing = false
	})
	g.timers.After(DashCooldown, func() {
		p.DashReady = true
	})
}

// HandleAbilityTrigger fires the player's selected ability (competitive
// mode only). Casual abilities come exclusively from power-up pickups.
func (g *Game) HandleAbilityTrigger(p *Player) {
	if g.Mode != ModeCompetitive || !g.Active || g.RoundPaused {
		return
	}
	if p.Ability == "" || p.AbilityCD > 0 || !p.CanAct() {
		return
	}
	p.AbilityCD = AbilityCooldownTicks
	g.ApplyAbility(p, g.Opponent(p), PowerUpType(p.Ability))
}

// scheduleNextPowerUp arms the room-level random spawn timer (casual only).
func (g *Game) scheduleNextPowerUp() {
	if g.Mode != ModeCasual {
		return
	}
	g.timers.After(powerUpSpawnDelay(), func() {
		if g.Active && !g.RoundPaused && len(g.PowerUps) < PowerUpMax {
			pu := NewPowerUp()
			g.PowerUps = append(g.PowerUps, pu)
			g.emit(Envelope{T: MsgPowerUpSpawned, Data: PowerUpSpawnedMsg{PowerUp: pu.ToSnapshot()}})
		}
		g.scheduleNextPowerUp()
	})
}

// collectPowerUps consumes pickups a player is overlapping and applies
// their effects immediately.
func (g *Game) collectPowerUps() {
	if len(g.PowerUps) == 0 {
		return
	}
	remaining := g.PowerUps[:0]
	for _, pu := range g.PowerUps {
		collector := g.powerUpCollector(pu)
		if collector == nil {
			remaining = append(remaining, pu)
			continue
		}
		g.emit(Envelope{T: MsgPowerUpCollected, Data: PowerUpCollectedMsg{
			ID:     pu.ID,
			Player: collector.ID,
		}})
		g.ApplyAbility(collector, g.Opponent(collector), pu.Type)
	}
	g.PowerUps = remaining
}

func (g *Game) powerUpCollector(pu *PowerUp) *Player {
	for _, p := range [2]*Player{g.P1, g.P2} {
		if p.Meteor || p.Mode == MoveEchoFrozen {
			continue
		}
		if Distance(pu.X, pu.Y, p.X, p.Y) < p.Radius+PowerUpRadius {
			return p
		}
	}
	return nil
}

// endRound handles an out-of-bounds exit by the loser. Exactly one of
// round_over / game_over is emitted per boundary exit.
func (g *Game) endRound(loser *Player) {
	winner := g.Opponent(loser)
	winner.Score++

	g.timers.CancelAll()
	g.pull = nil
	g.RoundPaused = true

	if winner.Score >= WinScore {
		g.Active = false
		g.Winner = winner.ID
		// Selections reset so a rematch starts from ability select.
		g.P1.Ability = ""
		g.P2.Ability = ""
		g.emit(Envelope{T: MsgGameOver, Data: GameOverMsg{
			Winner: winner.ID,
			State:  g.Snapshot(),
		}})
		return
	}

	g.resetRound()
	g.emit(Envelope{T: MsgRoundOver, Data: RoundOverMsg{
		Winner: winner.ID,
		State:  g.Snapshot(),
	}})
	g.timers.After(RoundOverPause, func() {
		g.emit(Envelope{T: MsgRoundReady})
		g.timers.After(RoundReadyPause, func() {
			g.emit(Envelope{T: MsgRoundGo})
			g.RoundPaused = false
			g.scheduleNextPowerUp()
		})
	})
}

// resetRound rebuilds the round state wholesale; only cumulative score and
// competitive ability selections carry across.
func (g *Game) resetRound() {
	g.P1.ResetForRound()
	g.P2.ResetForRound()
	g.PowerUps = nil
	g.Mirages = nil
	g.VoidWells = nil
	g.Shake = 0
	g.Flash = 0
	g.touching = false
	g.pull = nil
}

// Snapshot builds the full broadcast view of the room state.
func (g *Game) Snapshot() *StateSnapshot {
	s := &StateSnapshot{
		P1:          g.P1.ToSnapshot(),
		P2:          g.P2.ToSnapshot(),
		PowerUps:    make([]PowerUpSnapshot, 0, len(g.PowerUps)),
		Mirages:     make([]MirageSnapshot, 0, len(g.Mirages)),
		VoidWells:   make([]VoidWellSnapshot, 0, len(g.VoidWells)),
		Shake:       g.Shake,
		Flash:       g.Flash,
		RoundPaused: g.RoundPaused,
		GameActive:  g.Active,
		Mode:        string(g.Mode),
		Tick:        g.tick,
	}
	if g.Winner != "" {
		w := g.Winner
		s.Winner = &w
	}
	for _, pu := range g.PowerUps {
		s.PowerUps = append(s.PowerUps, pu.ToSnapshot())
	}
	for _, m := range g.Mirages {
		s.Mirages = append(s.Mirages, m.ToSnapshot())
	}
	for _, w := range g.VoidWells {
		s.VoidWells = append(s.VoidWells, w.ToSnapshot())
	}
	return s
}
