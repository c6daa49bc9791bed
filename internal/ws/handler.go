package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/domain/workspace"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/logging"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/infrastructure/monitoring"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/shared/id"
	"github.com/lilrickyuk-netizen/myco-ai-dev-platform-sub000/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// client is one live websocket connection inside a project room.
type client struct {
	id   id.ConnectionID
	conn *websocket.Conn
	mu   sync.Mutex // Serializes writes to conn
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Handler manages WebSocket collaboration sessions. Connections join a room
// per project; edit and cursor events broadcast to everyone else in the room.
type Handler struct {
	workspace *workspace.Manager
	metrics   *monitoring.Registry
	logger    *logging.Logger

	mu    sync.RWMutex
	rooms map[string]map[id.ConnectionID]*client // project ID -> connections
}

// NewHandler creates a new WebSocket handler.
func NewHandler(ws *workspace.Manager, metrics *monitoring.Registry, logger *logging.Logger) *Handler {
	return &Handler{
		workspace: ws,
		metrics:   metrics,
		logger:    logger,
		rooms:     make(map[string]map[id.ConnectionID]*client),
	}
}

// RoomSize reports how many connections a project room currently holds.
func (h *Handler) RoomSize(projectID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[projectID])
}

// HandleConnection handles WebSocket upgrade and the message loop for one
// connection.
func (h *Handler) HandleConnection(c *gin.Context) {
	projectID := c.Param("id")
	if _, err := h.workspace.GetProject(projectID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{id: id.NewConnectionID(), conn: conn}
	h.join(projectID, cl)
	h.metrics.WSConnectionOpened()

	defer func() {
		h.leave(projectID, cl)
		h.metrics.WSConnectionClosed()
		conn.Close()
	}()

	if err := cl.send(types.WSMessage{
		Type:      "connected",
		ProjectID: projectID,
		Payload:   map[string]interface{}{"connection_id": cl.id.String()},
	}); err != nil {
		return
	}
	h.metrics.RecordWSMessage("out", "connected")

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error",
					zap.String("connection_id", cl.id.String()),
					zap.Error(err),
				)
			}
			return
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		switch msg.Type {
		case "edit", "cursor":
			msg.ProjectID = projectID
			h.broadcast(projectID, cl.id, msg)
		case "ping":
			if err := cl.send(types.WSMessage{Type: "pong"}); err != nil {
				return
			}
			h.metrics.RecordWSMessage("out", "pong")
		default:
			if err := cl.send(types.WSMessage{
				Type:    "error",
				Payload: map[string]interface{}{"error": "unknown message type"},
			}); err != nil {
				return
			}
			h.metrics.RecordWSMessage("out", "error")
		}
	}
}

func (h *Handler) join(projectID string, cl *client) {
	h.mu.Lock()
	room, exists := h.rooms[projectID]
	if !exists {
		room = make(map[id.ConnectionID]*client)
		h.rooms[projectID] = room
	}
	room[cl.id] = cl
	h.mu.Unlock()

	h.broadcast(projectID, cl.id, types.WSMessage{
		Type:      "peer_joined",
		ProjectID: projectID,
		Payload:   map[string]interface{}{"connection_id": cl.id.String()},
	})
}

func (h *Handler) leave(projectID string, cl *client) {
	h.mu.Lock()
	if room, exists := h.rooms[projectID]; exists {
		delete(room, cl.id)
		if len(room) == 0 {
			delete(h.rooms, projectID)
		}
	}
	h.mu.Unlock()

	h.broadcast(projectID, cl.id, types.WSMessage{
		Type:      "peer_left",
		ProjectID: projectID,
		Payload:   map[string]interface{}{"connection_id": cl.id.String()},
	})
}

// broadcast sends msg to every room member except the sender.
func (h *Handler) broadcast(projectID string, sender id.ConnectionID, msg types.WSMessage) {
	h.mu.RLock()
	peers := make([]*client, 0, len(h.rooms[projectID]))
	for _, peer := range h.rooms[projectID] {
		if peer.id != sender {
			peers = append(peers, peer)
		}
	}
	h.mu.RUnlock()

	for _, peer := range peers {
		if err := peer.send(msg); err != nil {
			h.logger.Warn("websocket broadcast failed",
				zap.String("connection_id", peer.id.String()),
				zap.Error(err),
			)
			continue
		}
		h.metrics.RecordWSMessage("out", msg.Type)
	}
}
