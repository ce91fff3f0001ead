package dashboard

import (
	"encoding/json"
	"html/template"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/paperdesk/internal/router"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// navigateRequest is the incoming WebSocket message format.
type navigateRequest struct {
	Type string `json:"type"` // "navigate"
	Hash string `json:"hash"`
}

// pushMessage is the outgoing WebSocket message format.
type pushMessage struct {
	Type      string `json:"type"` // "content" or "error"
	SessionID string `json:"session_id"`
	HTML      string `json:"html,omitempty"`
	Error     string `json:"error,omitempty"`
}

// session is the content container of one browser tab. gorilla connections
// support a single concurrent writer, so every write goes through mu.
type session struct {
	id   string
	conn *websocket.Conn
	log  logrus.FieldLogger

	mu sync.Mutex
}

func newSession(conn *websocket.Conn, log logrus.FieldLogger) *session {
	id := uuid.NewString()
	return &session{id: id, conn: conn, log: log.WithField("session", id)}
}

// SetContent pushes html to the browser's content container.
func (s *session) SetContent(html template.HTML) error {
	return s.send(pushMessage{Type: "content", SessionID: s.id, HTML: string(html)})
}

func (s *session) sendError(message string) {
	if err := s.send(pushMessage{Type: "error", SessionID: s.id, Error: message}); err != nil {
		s.log.WithError(err).Warn("websocket write error")
	}
}

func (s *session) send(msg pushMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.log.WithError(err).Warn("websocket upgrade")
		return
	}
	defer conn.Close()

	v, base := d.viewsFor(r)
	sess := newSession(conn, d.log)
	sess.log.WithField("api_base", base).Info("navigation session opened")

	rt := router.New(NewRegistry(v), sess, sess.log)
	ctx := r.Context()

	defer func() {
		rt.Close()
		sess.log.Info("navigation session closed")
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.log.WithError(err).Warn("websocket read")
			}
			return
		}

		var req navigateRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			sess.sendError("invalid message format")
			continue
		}
		if req.Type != "navigate" {
			sess.sendError("unknown message type: " + req.Type)
			continue
		}

		rt.Go(ctx, req.Hash)
	}
}
