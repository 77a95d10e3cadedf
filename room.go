package main

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	errRoomFull     = errors.New("room is full")
	errRoomNotFound = errors.New("room not found")
	errTooManyRooms = errors.New("too many active rooms")
)

// Room is the unit of isolation: two player slots, one optional live Game,
// and the timer registry every delayed effect for this room runs through.
// A mutex serializes the tick loop, message handlers, and timer callbacks.
type Room struct {
	Code string

	mu        sync.Mutex
	mode      GameMode
	game      *Game
	timers    *TimerRegistry
	clients   map[string]*Client // playerID -> client
	abilities map[string]string  // playerID -> competitive selection

	stop     chan struct{}
	stopOnce sync.Once
	manager  *RoomManager
}

// NewRoom creates an empty room with the given code.
func NewRoom(code string, manager *RoomManager) *Room {
	return &Room{
		Code:      code,
		mode:      ModeCasual,
		timers:    NewTimerRegistry(nil),
		clients:   make(map[string]*Client),
		abilities: make(map[string]string),
		stop:      make(chan struct{}),
		manager:   manager,
	}
}

// Run drives the fixed-rate tick loop until the room is torn down.
func (r *Room) Run() {
	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			if r.game != nil {
				r.game.Tick()
			} else {
				r.timers.RunDue()
			}
			r.mu.Unlock()
		case <-r.stop:
			return
		}
	}
}

// SendJSON broadcasts a message to both room members. State updates go out
// as compact msgpack binary frames to clients that asked for them. Called
// by the Game with the room lock held.
func (r *Room) SendJSON(msg interface{}) {
	env, ok := msg.(Envelope)
	if !ok {
		return
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return
	}
	if env.T == MsgGameOver && r.manager != nil {
		r.manager.tel.Track(EvtMatchFinished)
	}
	var packed []byte
	if env.T == MsgStateUpdate {
		if upd, ok := env.Data.(StateUpdateMsg); ok {
			packed, _ = msgpack.Marshal(upd.State)
		}
	}
	for _, c := range r.clients {
		if packed != nil && c.compact {
			c.SendBinary(packed)
		} else {
			c.SendRaw(raw)
		}
	}
}

// AddPlayer claims the next free slot. Callers hold no room lock.
func (r *Room) AddPlayer(c *Client) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var id string
	switch {
	case r.clients["p1"] == nil:
		id = "p1"
	case r.clients["p2"] == nil:
		id = "p2"
	default:
		return "", errRoomFull
	}
	r.clients[id] = c
	return id, nil
}

// PlayerCount returns the number of occupied slots.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// opponentOf returns the other occupant, or nil.
func (r *Room) opponentOf(playerID string) *Client {
	for id, c := range r.clients {
		if id != playerID {
			return c
		}
	}
	return nil
}

// NotifyOpponentJoined tells the first occupant their opponent arrived.
func (r *Room) NotifyOpponentJoined(joinedID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if opp := r.opponentOf(joinedID); opp != nil {
		opp.SendJSON(Envelope{T: MsgOpponentJoined})
	}
}

// SelectMode switches the room's game mode before a match starts.
func (r *Room) SelectMode(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game != nil && r.game.Active {
		return
	}
	m := GameMode(mode)
	if m != ModeCasual && m != ModeCompetitive {
		return
	}
	r.mode = m
	r.SendJSONLocked(Envelope{T: MsgModeSelected, Data: ModeSelectedMsg{Mode: mode}})
}

// SendJSONLocked broadcasts while the room lock is already held.
func (r *Room) SendJSONLocked(env Envelope) {
	raw, err := json.Marshal(env)
	if err != nil {
		return
	}
	for _, c := range r.clients {
		c.SendRaw(raw)
	}
}

// SelectAbility records a player's competitive pick; when both players have
// picked, the room announces readiness.
func (r *Room) SelectAbility(playerID, ability string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mode != ModeCompetitive || !ValidAbility(ability) {
		return
	}
	if r.game != nil && r.game.Active {
		return
	}
	r.abilities[playerID] = ability
	if opp := r.opponentOf(playerID); opp != nil {
		opp.SendJSON(Envelope{T: MsgOpponentAbility})
	}
	if len(r.abilities) == 2 {
		r.SendJSONLocked(Envelope{T: MsgAbilitiesReady})
	}
}

// StartGame builds a fresh Game and runs the start countdown. Also serves
// as the rematch path once a previous game has finished.
func (r *Room) StartGame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.clients) < 2 {
		return errors.New("waiting for opponent")
	}
	if r.game != nil && r.game.Active {
		return errors.New("game already running")
	}
	if r.mode == ModeCompetitive && len(r.abilities) < 2 {
		return errors.New("both players must select an ability")
	}

	r.timers.CancelAll()
	r.game = NewGame(r.mode, r.timers, r)
	r.game.P1.Ability = r.abilities["p1"]
	r.game.P2.Ability = r.abilities["p2"]
	// Selections are one-shot; a rematch picks again.
	r.abilities = make(map[string]string)

	r.game.Start()
	r.SendJSONLocked(Envelope{T: MsgGameStarted, Data: GameStartedMsg{
		State: r.game.Snapshot(),
		Mode:  string(r.mode),
	}})
	return nil
}

// HandleInput updates a player's held keys.
func (r *Room) HandleInput(playerID string, keys InputKeys) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game == nil {
		return
	}
	if p := r.game.PlayerByID(playerID); p != nil {
		r.game.HandleInput(p, keys)
	}
}

// HandleDash routes a dash/block action.
func (r *Room) HandleDash(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game == nil {
		return
	}
	if p := r.game.PlayerByID(playerID); p != nil {
		r.game.HandleDash(p)
	}
}

// HandleAbility routes a competitive ability trigger.
func (r *Room) HandleAbility(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.game == nil {
		return
	}
	if p := r.game.PlayerByID(playerID); p != nil {
		r.game.HandleAbilityTrigger(p)
	}
}

// Drop removes a participant and tears the room down: the tick timer and
// every pending ability timer are cancelled, the remaining occupant is
// notified, and the room is deleted.
func (r *Room) Drop(playerID string) {
	r.mu.Lock()
	delete(r.clients, playerID)
	r.timers.CancelAll()
	if r.game != nil {
		r.game.Active = false
	}
	remaining := r.opponentOf(playerID)
	r.mu.Unlock()

	if remaining != nil {
		remaining.SendJSON(Envelope{T: MsgOpponentLeft})
		remaining.clearRoom()
	}
	r.stopOnce.Do(func() { close(r.stop) })
	if r.manager != nil {
		r.manager.Remove(r.Code)
	}
}

// RoomManager owns the room registry and the quick-match queue.
type RoomManager struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	queue    []*Client
	maxRooms int
	tel      *Telemetry
}

// NewRoomManager creates an empty registry.
func NewRoomManager(maxRooms int, tel *Telemetry) *RoomManager {
	return &RoomManager{
		rooms:    make(map[string]*Room),
		maxRooms: maxRooms,
		tel:      tel,
	}
}

// Create makes a new room with a unique code and starts its loop.
func (m *RoomManager) Create() (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rooms) >= m.maxRooms {
		return nil, errTooManyRooms
	}
	code := GenerateRoomCode()
	for m.rooms[code] != nil {
		code = GenerateRoomCode()
	}
	r := NewRoom(code, m)
	m.rooms[code] = r
	go r.Run()
	m.tel.Track(EvtRoomCreated)
	return r, nil
}

// Get returns a room by code, or nil.
func (m *RoomManager) Get(code string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[code]
}

// Remove deletes a room from the registry.
func (m *RoomManager) Remove(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

// RoomCount returns the number of live rooms.
func (m *RoomManager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

// QuickPlay pairs the client with a waiting player, or queues them.
// Returns the created room and both clients when a pairing happened.
func (m *RoomManager) QuickPlay(c *Client) (*Room, *Client, error) {
	m.mu.Lock()
	for _, waiting := range m.queue {
		if waiting == c {
			m.mu.Unlock()
			return nil, nil, nil // already queued
		}
	}
	if len(m.queue) == 0 {
		m.queue = append(m.queue, c)
		m.mu.Unlock()
		return nil, nil, nil
	}
	waiter := m.queue[0]
	m.queue = m.queue[1:]
	m.mu.Unlock()

	room, err := m.Create()
	if err != nil {
		// Put the waiter back rather than dropping them.
		m.mu.Lock()
		m.queue = append([]*Client{waiter}, m.queue...)
		m.mu.Unlock()
		return nil, nil, err
	}
	m.tel.Track(EvtQuickMatched)
	return room, waiter, nil
}

// Dequeue removes a client from the quick-match queue.
func (m *RoomManager) Dequeue(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, waiting := range m.queue {
		if waiting == c {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}
