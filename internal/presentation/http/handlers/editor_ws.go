// Package handlers provides the editor websocket endpoint
package handlers

import (
	"net/http"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/application/services"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/messaging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	editorWriteWait = 10 * time.Second
	editorPongWait  = 60 * time.Second
)

var editorUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the HTTP layer before the upgrade.
		return true
	},
}

// EditorWSHandlers contains the websocket handler for editor save events
type EditorWSHandlers struct {
	broadcaster *messaging.EditorBroadcaster
	authService *services.AuthService
	logger      *logging.ChanneledLogger
}

// NewEditorWSHandlers creates editor websocket handlers with injected dependencies
func NewEditorWSHandlers(broadcaster *messaging.EditorBroadcaster, authService *services.AuthService, logger *logging.ChanneledLogger) *EditorWSHandlers {
	return &EditorWSHandlers{
		broadcaster: broadcaster,
		authService: authService,
		logger:      logger,
	}
}

// GetEditorWS handles GET /api/v1/editor/ws - upgrades the connection and
// streams save events to the editor session. Browsers cannot set headers on
// websocket requests, so the token may also arrive as a query parameter.
func (h *EditorWSHandlers) GetEditorWS(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		token = c.Query("token")
	}
	if !h.authService.ValidateAdminOrEditorToken(token) {
		h.logger.Editor().Warn("Unauthorized editor websocket attempt", "remoteAddr", c.Request.RemoteAddr)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	conn, err := editorUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Editor().Error("Editor websocket upgrade failed", "error", err.Error())
		return
	}

	client := &messaging.EditorClient{
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	h.broadcaster.Register(client)
	h.logger.Editor().Info("Editor websocket session opened", "remoteAddr", c.Request.RemoteAddr)

	go h.writePump(client)
	h.readPump(client)
}

// writePump drains the client's send channel onto the wire. It exits when the
// broadcaster closes the channel on unregistration.
func (h *EditorWSHandlers) writePump(client *messaging.EditorClient) {
	for message := range client.Send {
		client.Conn.SetWriteDeadline(time.Now().Add(editorWriteWait))
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Editor().Debug("Editor websocket write failed", "error", err.Error())
			return
		}
	}
	client.Conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(editorWriteWait))
}

// readPump discards inbound frames, keeping the connection's read side alive
// for pong handling, and unregisters the client when the peer goes away.
func (h *EditorWSHandlers) readPump(client *messaging.EditorClient) {
	defer func() {
		h.broadcaster.Unregister(client)
		client.Conn.Close()
		h.logger.Editor().Info("Editor websocket session closed")
	}()

	client.Conn.SetReadLimit(512)
	client.Conn.SetReadDeadline(time.Now().Add(editorPongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(editorPongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
