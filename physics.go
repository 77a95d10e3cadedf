package main

// integrate advances one player's motion by one tick and reports whether an
// unshielded player left the arena (round-loss condition).
func (g *Game) integrate(p *Player) bool {
	if p.Mode == MoveEchoFrozen {
		// Frozen victims cannot move or be displaced; impacts aimed at
		// them are buffered elsewhere.
		p.VX, p.VY = 0, 0
		return false
	}

	intentAllowed := !p.Blocking && !p.Stunned && !p.Recoiling && !p.Meteor && !p.EchoActive

	switch p.Mode {
	case MoveGrid:
		if intentAllowed {
			g.updateGridDirection(p)
		}
		speed := GridSpeed
		if p.InfinityActive {
			speed *= InfinitySelf
		}
		// Grid movement sets velocity directly and skips drag.
		p.VX = p.GridDX * speed
		p.VY = p.GridDY * speed

	default:
		if intentAllowed {
			dx, dy := intentVector(p.Keys)
			if dx != 0 || dy != 0 {
				accel := PlayerAccel * p.SpeedMul
				if p.Frozen {
					accel *= FreezePenalty
				}
				if p.InfinityActive {
					accel *= InfinitySelf
				}
				p.VX += dx * accel
				p.VY += dy * accel
			}
		}
		p.VX *= PlayerDrag
		p.VY *= PlayerDrag
	}

	p.X += p.VX
	p.Y += p.VY

	if p.Shield {
		// Elastic bounce off the arena bounds.
		if p.X < p.Radius {
			p.X = p.Radius
			p.VX = -p.VX
		} else if p.X > ArenaWidth-p.Radius {
			p.X = ArenaWidth - p.Radius
			p.VX = -p.VX
		}
		if p.Y < p.Radius {
			p.Y = p.Radius
			p.VY = -p.VY
		} else if p.Y > ArenaHeight-p.Radius {
			p.Y = ArenaHeight - p.Radius
			p.VY = -p.VY
		}
		return false
	}

	return p.X < 0 || p.X > ArenaWidth || p.Y < 0 || p.Y > ArenaHeight
}

// intentVector combines held directional keys into a unit vector.
func intentVector(k InputKeys) (float64, float64) {
	var dx, dy float64
	if k.Up {
		dy -= 1
	}
	if k.Down {
		dy += 1
	}
	if k.Left {
		dx -= 1
	}
	if k.Right {
		dx += 1
	}
	return Normalize(dx, dy)
}

// updateGridDirection picks the cardinal direction for grid movement,
// first held key wins in up/down/left/right priority order. Direction is
// kept when no key is held.
func (g *Game) updateGridDirection(p *Player) {
	switch {
	case p.Keys.Up:
		p.GridDX, p.GridDY = 0, -1
	case p.Keys.Down:
		p.GridDX, p.GridDY = 0, 1
	case p.Keys.Left:
		p.GridDX, p.GridDY = -1, 0
	case p.Keys.Right:
		p.GridDX, p.GridDY = 1, 0
	}
}
