package main

import "encoding/json"

// Client -> Server message types
const (
	MsgCreateRoom      = "create_room"
	MsgJoinRoom        = "join_room"
	MsgQuickPlay       = "quick_play"
	MsgCancelQuickPlay = "cancel_quick_play"
	MsgSelectMode      = "select_mode"
	MsgSelectAbility   = "select_ability"
	MsgStartGame       = "start_game"
	MsgInput           = "input"
	MsgDash            = "dash"
	MsgAbility         = "ability"
	MsgLeaveRoom       = "leave_room"
)

// Server -> Client message types
const (
	MsgRoomCreated      = "room_created"
	MsgRoomJoined       = "room_joined"
	MsgOpponentJoined   = "opponent_joined"
	MsgError            = "error"
	MsgQuickSearching   = "quick_searching"
	MsgQuickMatched     = "quick_matched"
	MsgModeSelected     = "mode_selected"
	MsgOpponentAbility  = "opponent_ability_selected"
	MsgAbilitiesReady   = "abilities_ready"
	MsgGameStarted      = "game_started"
	MsgStateUpdate      = "state_update"
	MsgPowerUpSpawned   = "powerup_spawned"
	MsgPowerUpCollected = "powerup_collected"
	MsgWaveEffect       = "wave_effect"
	MsgCollisionEffect  = "collision_effect"
	MsgRoundOver        = "round_over"
	MsgRoundReady       = "round_ready"
	MsgRoundGo          = "round_go"
	MsgGameOver         = "game_over"
	MsgOpponentLeft     = "opponent_left"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"type"`
	D json.RawMessage `json:"data,omitempty"`
}

// JoinRoomMsg asks to join an existing room by code
type JoinRoomMsg struct {
	Code    string `json:"code"`
	Compact bool   `json:"compact,omitempty"`
}

// CreateRoomMsg asks to create a new room
type CreateRoomMsg struct {
	Compact bool `json:"compact,omitempty"`
}

// QuickPlayMsg enters the quick-match queue
type QuickPlayMsg struct {
	Compact bool `json:"compact,omitempty"`
}

// SelectModeMsg picks the game mode for the room
type SelectModeMsg struct {
	Mode string `json:"mode"`
}

// SelectAbilityMsg picks the competitive ability for this player
type SelectAbilityMsg struct {
	Ability string `json:"ability"`
}

// InputKeys are the held directional inputs
type InputKeys struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// InputMsg carries the current key state
type InputMsg struct {
	Keys InputKeys `json:"keys"`
}

// RoomCreatedMsg confirms room creation
type RoomCreatedMsg struct {
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
}

// RoomJoinedMsg confirms a successful join
type RoomJoinedMsg struct {
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
}

// QuickMatchedMsg tells a queued player they were paired
type QuickMatchedMsg struct {
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
}

// ErrorMsg sends an error message to the client
type ErrorMsg struct {
	Message string `json:"message"`
}

// ModeSelectedMsg broadcasts the chosen mode
type ModeSelectedMsg struct {
	Mode string `json:"mode"`
}

// GameStartedMsg carries the initial snapshot
type GameStartedMsg struct {
	State *StateSnapshot `json:"state"`
	Mode  string         `json:"mode"`
}

// StateUpdateMsg is the per-broadcast snapshot
type StateUpdateMsg struct {
	State *StateSnapshot `json:"state"`
}

// PowerUpSpawnedMsg announces a new pickup
type PowerUpSpawnedMsg struct {
	PowerUp PowerUpSnapshot `json:"powerUp"`
}

// PowerUpCollectedMsg announces a consumed pickup
type PowerUpCollectedMsg struct {
	ID     string `json:"id"`
	Player string `json:"player"`
}

// WaveEffectMsg marks a wave blast origin
type WaveEffectMsg struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	PlayerID string  `json:"playerId"`
}

// CollisionEffectMsg fires once per overlap entry
type CollisionEffectMsg struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Intensity float64 `json:"intensity"`
}

// RoundOverMsg reports a finished round
type RoundOverMsg struct {
	Winner string         `json:"winner"`
	State  *StateSnapshot `json:"state"`
}

// GameOverMsg reports the finished game
type GameOverMsg struct {
	Winner string         `json:"winner"`
	State  *StateSnapshot `json:"state"`
}

// PlayerSnapshot is the broadcast view of one player
type PlayerSnapshot struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	VX              float64 `json:"vx"`
	VY              float64 `json:"vy"`
	Radius          float64 `json:"radius"`
	Mass            float64 `json:"mass"`
	Score           int     `json:"score"`
	SpeedMultiplier float64 `json:"speedMultiplier"`
	DashReady       bool    `json:"dashReady"`
	IsDashing       bool    `json:"isDashing"`
	IsBlocking      bool    `json:"isBlocking"`
	IsRecoiling     bool    `json:"isRecoiling"`
	IsFrozen        bool    `json:"isFrozen"`
	IsStunned       bool    `json:"isStunned"`
	IsMeteor        bool    `json:"isMeteor"`
	IsGrid          bool    `json:"isGrid"`
	IsEchoFrozen    bool    `json:"isEchoFrozen"`
	IsEchoActive    bool    `json:"isEchoActive"`
	IsInfinity      bool    `json:"isInfinityActive"`
	IsVessel        bool    `json:"isVesselActive"`
	HasShield       bool    `json:"hasShield"`
	Ability         string  `json:"ability,omitempty"`
	AbilityCooldown int     `json:"abilityCooldown"`
}

// PowerUpSnapshot is the broadcast view of one pickup
type PowerUpSnapshot struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Pulse float64 `json:"pulse"`
}

// MirageSnapshot is the broadcast view of one mirage projectile
type MirageSnapshot struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Owner string  `json:"owner"`
	Life  int     `json:"life"`
}

// VoidWellSnapshot is the broadcast view of one void well
type VoidWellSnapshot struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Owner string  `json:"owner"`
	Life  int     `json:"life"`
}

// StateSnapshot is the full room state broadcast each tick
type StateSnapshot struct {
	P1          PlayerSnapshot     `json:"p1"`
	P2          PlayerSnapshot     `json:"p2"`
	PowerUps    []PowerUpSnapshot  `json:"powerUps"`
	Mirages     []MirageSnapshot   `json:"mirages"`
	VoidWells   []VoidWellSnapshot `json:"voidWells"`
	Shake       float64            `json:"shake"`
	Flash       float64            `json:"flash"`
	RoundPaused bool               `json:"roundPaused"`
	GameActive  bool               `json:"gameActive"`
	Winner      *string            `json:"winner"`
	Mode        string             `json:"mode"`
	Tick        uint64             `json:"tick"`
}
