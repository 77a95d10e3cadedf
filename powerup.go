package main

import "time"

const (
	PowerUpRadius     = 15.0
	PowerUpMax        = 3
	PowerUpMargin     = 60.0
	PowerUpPulseStep  = 0.1
	PowerUpSpawnMinMs = 4000
	PowerUpSpawnMaxMs = 7000
)

// PowerUpType identifies a pickup/ability effect.
type PowerUpType string

const (
	PowerSpeed    PowerUpType = "speed"
	PowerSize     PowerUpType = "size"
	PowerShield   PowerUpType = "shield"
	PowerFreeze   PowerUpType = "freeze"
	PowerWave     PowerUpType = "wave"
	PowerVoid     PowerUpType = "void"
	PowerMirror   PowerUpType = "mirror"
	PowerMeteor   PowerUpType = "meteor"
	PowerGrid     PowerUpType = "grid"
	PowerEcho     PowerUpType = "echo"
	PowerBlitz    PowerUpType = "blitz"
	PowerInfinity PowerUpType = "infinity"
	PowerVessel   PowerUpType = "vessel"
)

// PowerUpTypes is the spawn pool.
var PowerUpTypes = []PowerUpType{
	PowerSpeed, PowerSize, PowerShield, PowerFreeze, PowerWave, PowerVoid,
	PowerMirror, PowerMeteor, PowerGrid, PowerEcho, PowerBlitz,
	PowerInfinity, PowerVessel,
}

// PowerUp is a pickup item waiting on the arena floor.
type PowerUp struct {
	ID    string
	Type  PowerUpType
	X, Y  float64
	Pulse float64
}

// NewPowerUp spawns a random pickup away from the walls.
func NewPowerUp() *PowerUp {
	return &PowerUp{
		ID:   GenerateID(4),
		Type: PowerUpTypes[int(randFloat()*float64(len(PowerUpTypes)))%len(PowerUpTypes)],
		X:    randRange(PowerUpMargin, ArenaWidth-PowerUpMargin),
		Y:    randRange(PowerUpMargin, ArenaHeight-PowerUpMargin),
	}
}

// ToSnapshot converts to the broadcast view.
func (pu *PowerUp) ToSnapshot() PowerUpSnapshot {
	return PowerUpSnapshot{
		ID:    pu.ID,
		Type:  string(pu.Type),
		X:     pu.X,
		Y:     pu.Y,
		Pulse: pu.Pulse,
	}
}

// powerUpSpawnDelay returns the random interval to the next spawn attempt.
func powerUpSpawnDelay() time.Duration {
	return time.Duration(randRange(PowerUpSpawnMinMs, PowerUpSpawnMaxMs)) * time.Millisecond
}
