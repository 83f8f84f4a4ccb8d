package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"go.uber.org/zap"
)

type Client struct {
	hub       *Hub
	attemptID string
	session   *game.Session
	mute      *game.Mutable
	conn      *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func (c *Client) trySend(b []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) sendJSON(env Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		c.hub.log.Error("ws send marshal failed",
			zap.String("attempt_id", c.attemptID),
			zap.String("type", env.Type),
			zap.Error(err),
		)
		return
	}
	if !c.trySend(b) {
		c.hub.log.Warn("ws send queue full, dropping attempt", zap.String("attempt_id", c.attemptID))
		c.hub.remove(c)
	}
}

// sendCue never blocks the session; a full queue drops the cue.
func (c *Client) sendCue(kind game.CueKind) {
	b, err := json.Marshal(Envelope{Type: TypeCue, Payload: CuePayload{Sound: kind}})
	if err != nil {
		return
	}
	if !c.trySend(b) {
		c.hub.log.Debug("ws cue dropped", zap.String("attempt_id", c.attemptID), zap.String("sound", string(kind)))
	}
}

func (c *Client) statePayload() StatePayload {
	st := c.session.State()
	p := StatePayload{State: st, Muted: c.mute.Muted()}
	if q, ok := c.session.Current(); ok {
		v := &QuestionView{Text: q.Text, Options: q.Options}
		if st.RevealAnswer {
			correct := q.Correct
			v.Correct = &correct
		}
		p.Question = v
	}
	return p
}

func (c *Client) sendState() {
	c.sendJSON(Envelope{Type: TypeState, Payload: c.statePayload()})
}

func (c *Client) sendError(msg string) {
	c.sendJSON(Envelope{Type: TypeError, Payload: ErrorPayload{Message: msg}})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()

		st := c.session.State()
		c.hub.log.Info("ws attempt closed",
			zap.String("attempt_id", c.attemptID),
			zap.Bool("finished", st.Finished),
			zap.Int("score", st.Score),
			zap.Int("total", st.Total),
		)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg clientMsg
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.hub.log.Warn("ws read failed", zap.String("attempt_id", c.attemptID), zap.Error(err))
			}
			return
		}

		c.hub.log.Debug("ws message received",
			zap.String("attempt_id", c.attemptID),
			zap.String("type", msg.Type),
		)

		switch msg.Type {
		case TypeSelectAnswer:
			var p SelectAnswerPayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				c.sendError("bad payload")
				continue
			}
			c.session.SelectAnswer(p.Index)
			c.sendState()

		case TypeAdvance:
			moved := c.session.Advance()
			c.sendState()
			if !moved {
				continue
			}
			if res, ok := c.session.Result(); ok {
				c.sendJSON(Envelope{Type: TypeFinished, Payload: res})
			}

		case TypeMute:
			var p MutePayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				c.sendError("bad payload")
				continue
			}
			c.mute.SetMuted(p.Muted)
			c.sendState()

		case TypeExit:
			return

		default:
			c.hub.log.Warn("unknown ws message type",
				zap.String("attempt_id", c.attemptID),
				zap.String("type", msg.Type),
			)
			c.sendError("unknown message type")
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.log.Warn("ws write failed", zap.String("attempt_id", c.attemptID), zap.Error(err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.log.Warn("ws ping failed", zap.String("attempt_id", c.attemptID), zap.Error(err))
				return
			}
		}
	}
}
