package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/pantry"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

const snapshotInterval = 5 * time.Second

// streamConn maintains one UI client's inventory stream
type streamConn struct {
	conn *websocket.Conn
	svc  *pantry.Service
}

// handleStream upgrades the connection and pushes inventory snapshots to
// the UI collaborator until the client goes away.
func (p *PantryAPI) handleStream(c *gin.Context) {
	svc, ok := p.service(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	stream := &streamConn{conn: conn, svc: svc}
	go stream.writePump()
	go stream.readPump()
}

// readPump drains client messages so close frames and pongs are processed
func (s *streamConn) readPump() {
	defer s.conn.Close()

	s.conn.SetReadLimit(4 * 1024)
	s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump sends an immediate snapshot, then fresh ones on a fixed
// interval, with pings to keep the connection alive.
func (s *streamConn) writePump() {
	snapshots := time.NewTicker(snapshotInterval)
	pings := time.NewTicker(30 * time.Second)
	defer func() {
		snapshots.Stop()
		pings.Stop()
		s.conn.Close()
	}()

	if err := s.writeSnapshot(); err != nil {
		return
	}
	for {
		select {
		case <-snapshots.C:
			if err := s.writeSnapshot(); err != nil {
				return
			}
		case <-pings.C:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// writeSnapshot serializes and sends the current inventory
func (s *streamConn) writeSnapshot() error {
	items := s.svc.Items()
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, viewOf(s.svc, item))
	}

	data, err := json.Marshal(gin.H{"type": "inventory", "items": views})
	if err != nil {
		log.Printf("Error marshaling snapshot: %v", err)
		return err
	}

	s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
