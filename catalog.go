package main

// AbilityDef describes one selectable ability for competitive mode.
type AbilityDef struct {
	ID          PowerUpType
	Name        string
	Description string
}

// AbilityCatalog is the full list a competitive player can select from.
// The same effects drop as random power-ups in casual mode.
var AbilityCatalog = []AbilityDef{
	{PowerSpeed, "Overdrive", "1.8x speed for 5 seconds"},
	{PowerSize, "Colossus", "Radius 45 and triple mass for 7 seconds"},
	{PowerShield, "Barrier", "Bounce off the arena walls for 8 seconds"},
	{PowerFreeze, "Cryo Lock", "Slows the opponent's acceleration for 4.5 seconds"},
	{PowerWave, "Shockwave", "Instant radial knockback up to 450 units"},
	{PowerVoid, "Void Well", "Drops a pulling well that stuns on contact"},
	{PowerMirror, "Mirror Image", "Releases four bouncing mirages"},
	{PowerMeteor, "Meteor Drop", "Vanish, then crash down on the opponent"},
	{PowerGrid, "Grid Lock", "Fixed-speed cardinal movement for 6 seconds"},
	{PowerEcho, "Echo Pull", "Drag the opponent in and freeze them in time"},
	{PowerBlitz, "Blitz Rush", "Three chained dashes at double speed"},
	{PowerInfinity, "Infinity Field", "A repelling zone nothing can touch"},
	{PowerVessel, "Vessel", "Double all knockback you deal for 5 seconds"},
}

var abilityByID map[PowerUpType]AbilityDef

func init() {
	abilityByID = make(map[PowerUpType]AbilityDef, len(AbilityCatalog))
	for _, def := range AbilityCatalog {
		abilityByID[def.ID] = def
	}
}

// ValidAbility reports whether id names a selectable ability.
func ValidAbility(id string) bool {
	_, ok := abilityByID[PowerUpType(id)]
	return ok
}
