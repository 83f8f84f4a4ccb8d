package ws

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"go.uber.org/zap"
)

// ServeWS upgrades the request and runs one attempt at part partIndex of
// subject until the learner exits or disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, subject string, partIndex int) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	c := &Client{
		hub:       h,
		attemptID: uuid.NewString(),
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
	}
	c.mute = game.NewMutable(game.CueFunc(c.sendCue))

	sess, err := h.svc.StartAttempt(subject, partIndex, c.mute)
	if err != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if errors.Is(err, game.ErrEmptyPart) {
			_ = conn.WriteJSON(Envelope{Type: TypeEmptyPart, Payload: EmptyPartPayload{Subject: subject, Part: partIndex}})
		} else {
			h.log.Error("ws attempt failed", zap.String("subject", subject), zap.Error(err))
			_ = conn.WriteJSON(Envelope{Type: TypeError, Payload: ErrorPayload{Message: err.Error()}})
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
		return
	}
	c.session = sess

	if !h.add(c) {
		_ = conn.Close()
		return
	}
	go c.writePump()

	c.sendJSON(Envelope{Type: TypeAttempt, Payload: AttemptPayload{
		AttemptID: c.attemptID,
		Subject:   subject,
		Part:      partIndex,
		Total:     sess.Total(),
	}})
	c.sendState()

	c.readPump()
}
