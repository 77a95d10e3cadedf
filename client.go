package main

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 50
)

// Client represents one WebSocket connection.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	id         string // connection id
	remoteAddr string
	compact    bool // wants msgpack binary state frames

	msgCount   int
	msgResetAt time.Time

	// Room membership is written by the quick-match pairing from another
	// client's goroutine, so it needs its own lock.
	roomMu   sync.Mutex
	room     *Room
	playerID string
}

// NewClient creates a new Client.
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		id:         uuid.NewString(),
		remoteAddr: remoteAddr,
	}
}

func (c *Client) setRoom(room *Room, playerID string) {
	c.roomMu.Lock()
	c.room = room
	c.playerID = playerID
	c.roomMu.Unlock()
}

func (c *Client) clearRoom() {
	c.setRoom(nil, "")
}

func (c *Client) currentRoom() (*Room, string) {
	c.roomMu.Lock()
	defer c.roomMu.Unlock()
	return c.room, c.playerID
}

// ReadPump reads messages from the WebSocket connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("client %s: ws error: %v", c.id, err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("client %s (%s): rate limit exceeded, disconnecting", c.id, c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// 0xFF prefix marks binary frames queued by SendBinary
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON marshals and queues a message (non-blocking, drops when full).
func (c *Client) SendJSON(msg interface{}) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.SendRaw(raw)
}

// SendRaw queues a pre-encoded text frame.
func (c *Client) SendRaw(raw []byte) {
	defer func() { recover() }() // send channel may be closed by the hub
	select {
	case c.send <- raw:
	default:
	}
}

// SendBinary queues a binary frame.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) sendError(message string) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Message: message}})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgCreateRoom:
		c.handleCreateRoom(env.D)
	case MsgJoinRoom:
		c.handleJoinRoom(env.D)
	case MsgQuickPlay:
		c.handleQuickPlay(env.D)
	case MsgCancelQuickPlay:
		c.hub.rooms.Dequeue(c)
	case MsgSelectMode:
		c.handleSelectMode(env.D)
	case MsgSelectAbility:
		c.handleSelectAbility(env.D)
	case MsgStartGame:
		c.handleStartGame()
	case MsgInput:
		c.handleInput(env.D)
	case MsgDash:
		if room, pid := c.currentRoom(); room != nil {
			room.HandleDash(pid)
		}
	case MsgAbility:
		if room, pid := c.currentRoom(); room != nil {
			room.HandleAbility(pid)
		}
	case MsgLeaveRoom:
		c.handleLeaveRoom()
	default:
		log.Printf("client %s: unknown message type %q", c.id, env.T)
	}
}

func (c *Client) handleCreateRoom(data json.RawMessage) {
	if room, _ := c.currentRoom(); room != nil {
		c.sendError("already in a room")
		return
	}
	var msg CreateRoomMsg
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
	}
	c.compact = msg.Compact

	room, err := c.hub.rooms.Create()
	if err != nil {
		c.sendError(err.Error())
		return
	}
	playerID, err := room.AddPlayer(c)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.setRoom(room, playerID)
	c.SendJSON(Envelope{T: MsgRoomCreated, Data: RoomCreatedMsg{
		Code:     room.Code,
		PlayerID: playerID,
	}})
}

func (c *Client) handleJoinRoom(data json.RawMessage) {
	if room, _ := c.currentRoom(); room != nil {
		c.sendError("already in a room")
		return
	}
	var msg JoinRoomMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	c.compact = msg.Compact

	room := c.hub.rooms.Get(msg.Code)
	if room == nil {
		c.sendError(errRoomNotFound.Error())
		return
	}
	playerID, err := room.AddPlayer(c)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.setRoom(room, playerID)
	c.SendJSON(Envelope{T: MsgRoomJoined, Data: RoomJoinedMsg{
		Code:     room.Code,
		PlayerID: playerID,
	}})
	room.NotifyOpponentJoined(playerID)
}

func (c *Client) handleQuickPlay(data json.RawMessage) {
	if room, _ := c.currentRoom(); room != nil {
		c.sendError("already in a room")
		return
	}
	var msg QuickPlayMsg
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
	}
	c.compact = msg.Compact

	room, waiter, err := c.hub.rooms.QuickPlay(c)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	if room == nil {
		c.SendJSON(Envelope{T: MsgQuickSearching})
		return
	}

	// Paired: the earlier waiter takes p1, this client p2.
	waiterID, err := room.AddPlayer(waiter)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	playerID, err := room.AddPlayer(c)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	waiter.setRoom(room, waiterID)
	c.setRoom(room, playerID)
	waiter.SendJSON(Envelope{T: MsgQuickMatched, Data: QuickMatchedMsg{
		Code:     room.Code,
		PlayerID: waiterID,
	}})
	c.SendJSON(Envelope{T: MsgQuickMatched, Data: QuickMatchedMsg{
		Code:     room.Code,
		PlayerID: playerID,
	}})
}

func (c *Client) handleSelectMode(data json.RawMessage) {
	room, _ := c.currentRoom()
	if room == nil {
		return
	}
	var msg SelectModeMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	room.SelectMode(msg.Mode)
}

func (c *Client) handleSelectAbility(data json.RawMessage) {
	room, pid := c.currentRoom()
	if room == nil {
		return
	}
	var msg SelectAbilityMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	room.SelectAbility(pid, msg.Ability)
}

func (c *Client) handleStartGame() {
	room, _ := c.currentRoom()
	if room == nil {
		return
	}
	if err := room.StartGame(); err != nil {
		c.sendError(err.Error())
		return
	}
	c.hub.tel.Track(EvtMatchStarted)
}

func (c *Client) handleInput(data json.RawMessage) {
	room, pid := c.currentRoom()
	if room == nil {
		return
	}
	var msg InputMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	room.HandleInput(pid, msg.Keys)
}

func (c *Client) handleLeaveRoom() {
	room, pid := c.currentRoom()
	if room == nil {
		return
	}
	c.clearRoom()
	room.Drop(pid)
}
