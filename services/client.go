package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/lucasmeira/pirata-backend/models"
	"go.uber.org/zap"
)

// Client is one player's websocket session. The write pump is the only
// goroutine touching the connection for writes; everything else goes
// through the buffered send channel.
type Client struct {
	sessionID string
	nickname  string

	conn        *websocket.Conn
	registry    *Registry
	coordinator *Coordinator
	log         *zap.SugaredLogger

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func NewClient(sessionID, nickname string, conn *websocket.Conn, registry *Registry, coordinator *Coordinator, log *zap.SugaredLogger) *Client {
	return &Client{
		sessionID:   sessionID,
		nickname:    nickname,
		conn:        conn,
		registry:    registry,
		coordinator: coordinator,
		log:         log,
		send:        make(chan []byte, 32),
	}
}

// Send enqueues a frame for the write pump. It never blocks; a full buffer
// counts as a delivery failure so one slow client cannot stall a broadcast.
// The closed check and the enqueue share one critical section, so Send never
// races a concurrent Close onto a closed channel.
func (c *Client) Send(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("session %s is closed", c.sessionID)
	}
	select {
	case c.send <- message:
		return nil
	default:
		return fmt.Errorf("send buffer full for session %s", c.sessionID)
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()
	c.conn.Close()
}

// sendJSON marshals and enqueues a personal message for this session only.
func (c *Client) sendJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Errorf("[client %s] marshal: %v", c.sessionID, err)
		return
	}
	if err := c.Send(b); err != nil {
		c.log.Errorf("[client %s] %v", c.sessionID, err)
	}
}

// ReadPump consumes inbound guesses until the connection dies, then
// deregisters the session. Other sessions are unaffected by the exit.
// DisconnectTransport (not Disconnect) so that a reconnect which already
// replaced this transport is not torn down by the old pump's exit.
func (c *Client) ReadPump() {
	defer c.registry.DisconnectTransport(c.sessionID, c)

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Infof("[client %s] disconnected normally", c.sessionID)
			} else {
				c.log.Infof("[client %s] read error: %v", c.sessionID, err)
			}
			return
		}
		c.handleMessage(message)
	}
}

func (c *Client) handleMessage(raw []byte) {
	var msg models.GuessMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendJSON(models.NewError("Invalid message."))
		return
	}

	var guess string
	switch msg.Action {
	case "approve":
		guess = models.LabelAuthentic
	case "denounce":
		guess = models.LabelCounterfeit
	default:
		c.sendJSON(models.NewError("Invalid message."))
		return
	}
	if msg.CardID == "" {
		c.sendJSON(models.NewError("Invalid message."))
		return
	}

	if !c.registry.CheckAndStampCooldown(c.sessionID) {
		c.sendJSON(models.NewError("Cooldown active."))
		return
	}

	feedback, err := c.coordinator.GradeGuess(context.Background(), c.sessionID, c.nickname, msg.CardID, guess)
	switch {
	case errors.Is(err, ErrRoundInactive):
		c.sendJSON(models.NewError("Round not active."))
	case errors.Is(err, ErrUnknownCard):
		// Stale or bogus card ids are dropped without a reply.
	case err != nil:
		c.log.Errorf("[client %s] grade guess: %v", c.sessionID, err)
		c.sendJSON(models.NewError("Could not record your guess."))
	default:
		c.sendJSON(feedback)
	}
}

// WritePump drains the send channel onto the wire.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.log.Infof("[client %s] write error: %v", c.sessionID, err)
			return
		}
	}
}
