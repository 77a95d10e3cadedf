package main

import "math"

const (
	InfinityRadius    = 150.0
	InfinityShellGap  = 20.0 // added to sum of radii for the contact shell
	InfinityMaxSlow   = 0.95 // 5% speed at field center
	InfinityOwnerDrag = 0.35 // victim velocity coupling to owner velocity
	InfinityCenterPull = 0.25
	InfinityDashDrag  = 1.1 // dash-vector coupling strength
)

// applyInfinityField applies the owner's repelling field to the victim for
// one tick. Grid-locked and echo-frozen victims are immune entirely.
func applyInfinityField(owner, victim *Player) {
	if victim.Mode != MoveFree {
		return
	}

	dx := victim.X - owner.X
	dy := victim.Y - owner.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist >= InfinityRadius {
		return
	}

	// Quadratic falloff: strongest at the owner's center, zero at the edge.
	prox := 1 - dist/InfinityRadius
	quad := prox * prox

	if !victim.Dashing {
		slow := 1 - InfinityMaxSlow*quad
		victim.VX *= slow
		victim.VY *= slow

		// Dragged along with the owner's motion.
		victim.VX += owner.VX * quad * InfinityOwnerDrag
		victim.VY += owner.VY * quad * InfinityOwnerDrag

		// Small centering pull toward the owner.
		nx, ny := Normalize(-dx, -dy)
		victim.VX += nx * prox * InfinityCenterPull
		victim.VY += ny * prox * InfinityCenterPull
	}

	if owner.Dashing {
		// Couple the victim toward the owner's dash vector, scaled by how
		// well the victim's offset aligns with the dash direction.
		vx, vy := Normalize(dx, dy)
		align := owner.DashDX*vx + owner.DashDY*vy
		if align > 0 {
			victim.VX += owner.DashDX * align * quad * InfinityDashDrag
			victim.VY += owner.DashDY * align * quad * InfinityDashDrag
		}
	}

	// Minimum-distance shell: the pair can never visually touch while the
	// field is active.
	minDist := owner.Radius + victim.Radius + InfinityShellGap
	if dist < minDist && dist > 0 {
		nx := dx / dist
		ny := dy / dist
		victim.X = owner.X + nx*minDist
		victim.Y = owner.Y + ny*minDist
		// Cancel any velocity component driving the victim inward.
		inward := victim.VX*nx + victim.VY*ny
		if inward < 0 {
			victim.VX -= inward * nx
			victim.VY -= inward * ny
		}
	}
}
