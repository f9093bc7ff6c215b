package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/buffos/go-datadash/internal/anim"
	"github.com/buffos/go-datadash/internal/chart"
	"github.com/buffos/go-datadash/internal/dashboard"
	"github.com/buffos/go-datadash/internal/tooltip"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
	Widget  string `json:"widget,omitempty"`

	// frame
	Progress float64        `json:"progress,omitempty"`
	Markup   string         `json:"markup,omitempty"`
	Overlay  *chart.Overlay `json:"overlay,omitempty"`

	// tooltip
	Tooltip *tooltip.State `json:"tooltip,omitempty"`

	// pointer input
	Index    int               `json:"index,omitempty"`
	X        float64           `json:"x,omitempty"`
	Y        float64           `json:"y,omitempty"`
	PageX    float64           `json:"pageX,omitempty"`
	PageY    float64           `json:"pageY,omitempty"`
	Viewport *tooltip.Viewport `json:"viewport,omitempty"`
	Widgets  []dashboard.Info  `json:"widgets,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// session is one connected browser with its own animated copy of the page.
type session struct {
	id     string
	page   *dashboard.Page
	send   chan Message
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger

	// passes counts render passes; only the latest may report settled.
	passes atomic.Uint64
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	page, err := dashboard.Load(bytes.NewReader(s.source), s.cfg.PageOptions(s.logger)...)
	if err != nil {
		log.Printf("WebSocket page error: %v", err)
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		id:     uuid.NewString(),
		page:   page,
		send:   make(chan Message, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
		logger: s.logger,
	}
	for _, wd := range page.Widgets() {
		id := wd.ID
		wd.OnFrame(func(f chart.Frame) {
			ov := f.Overlay
			sess.push(Message{Type: "frame", Widget: id, Progress: f.Progress, Markup: f.Markup, Overlay: &ov})
		})
	}
	page.Tooltip().OnChange(func(st tooltip.State) {
		sess.push(Message{Type: "tooltip", Tooltip: &st})
	})

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	sess.push(Message{Type: "hello", Session: sess.id})
	go s.writePump(conn, sess)
	go s.readPump(conn, sess)
	sess.render(s.cfg.Driver())
}

// push queues a message for the client. Frames are dropped rather than
// stalling the animation when the client falls behind.
func (sess *session) push(m Message) {
	select {
	case <-sess.ctx.Done():
	case sess.send <- m:
	default:
		sess.logger.Printf("Warning: session %s is slow, dropped a %s message", sess.id[:8], m.Type)
	}
}

// render starts a new animated pass; any pass in flight is superseded and
// ends without a settled message.
func (sess *session) render(drv *anim.Driver) {
	pass := sess.passes.Add(1)
	go func() {
		if err := sess.page.Render(sess.ctx, drv); err != nil && sess.ctx.Err() == nil {
			sess.push(Message{Type: "error", Error: err.Error()})
			return
		}
		if sess.ctx.Err() != nil {
			return
		}
		if sess.passes.Load() != pass {
			return
		}
		var infos []dashboard.Info
		for _, wd := range sess.page.Widgets() {
			infos = append(infos, wd.Info())
		}
		sess.push(Message{Type: "settled", Widgets: infos})
	}()
}

func (s *Server) removeSession(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	sess.cancel()
	sess.page.Close()
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	list := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		list = append(list, sess)
	}
	s.mu.Unlock()
	for _, sess := range list {
		s.removeSession(sess)
	}
}

func (s *Server) readPump(conn *websocket.Conn, sess *session) {
	defer func() {
		s.removeSession(sess)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		s.handleMessage(sess, msg)
	}
}

func (s *Server) handleMessage(sess *session, msg Message) {
	page := sess.page
	var err error
	switch msg.Type {
	case "move":
		_, _, err = page.PointerMove(msg.Widget, msg.X, msg.Y, msg.PageX, msg.PageY)
	case "leave":
		err = page.PointerLeave(msg.Widget)
	case "enter-static", "move-static", "leave-static":
		st, ok := page.Static(msg.Index)
		if !ok {
			sess.push(Message{Type: "error", Error: "no such tooltip target"})
			return
		}
		switch msg.Type {
		case "enter-static":
			st.Enter(msg.PageX, msg.PageY)
		case "move-static":
			st.Move(msg.PageX, msg.PageY)
		default:
			st.Leave()
		}
	case "viewport":
		if msg.Viewport != nil {
			page.SetViewport(*msg.Viewport)
		}
	case "render":
		sess.render(s.cfg.Driver())
	case "ping":
		sess.push(Message{Type: "pong"})
	}
	if err != nil {
		sess.push(Message{Type: "error", Widget: msg.Widget, Error: err.Error()})
	}
}

func (s *Server) writePump(conn *websocket.Conn, sess *session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-sess.ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-sess.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
