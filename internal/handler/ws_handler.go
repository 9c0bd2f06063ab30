package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conceptlens/conceptlens-backend/internal/config"
	"github.com/conceptlens/conceptlens-backend/internal/middleware"
	"github.com/conceptlens/conceptlens-backend/internal/service"
	ws "github.com/conceptlens/conceptlens-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live notifications over WebSocket.
type WSHandler struct {
	rdb          *redis.Client
	notifService *service.NotificationService
	logger       zerolog.Logger
	upgrader     websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, notifService *service.NotificationService, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:          rdb,
		notifService: notifService,
		logger:       log.With().Str("component", "ws_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
	}
}

// NotificationStream godoc
// WS /ws/v1/notifications
// Upgrades to WebSocket and forwards the caller's Redis notification channel
// until either side closes.
func (h *WSHandler) NotificationStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID, err := claims.UUID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	wsLog := h.logger.With().Str("user_id", userID.String()).Logger()

	// The forwarding goroutine and the read loop both push frames; the shared
	// writer keeps them off the connection at the same time.
	writer := ws.NewWriter(conn)

	unread, err := h.notifService.UnreadCount(ctx, userID)
	if err != nil {
		wsLog.Warn().Err(err).Msg("unread count lookup failed")
	}
	writer.WriteTyped(ws.ConnectedResponse{Event: ws.EventConnected, UnreadCount: unread})

	sub := h.rdb.Subscribe(ctx, config.CacheKey.NotificationChannel(userID.String()))
	defer sub.Close()

	wsLog.Info().Msg("notification stream connected")

	// Forward published notifications until the subscription channel closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.Channel() {
			if err := writer.WriteTyped(ws.NotificationEvent{
				Event:   ws.EventNotification,
				Payload: []byte(msg.Payload),
			}); err != nil {
				wsLog.Debug().Err(err).Msg("stream write failed")
				return
			}
		}
	}()

	// Read loop: answers pings and detects the client going away.
	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("unexpected close")
			} else {
				wsLog.Debug().Msg("connection closed")
			}
			break
		}
		if msg.Action == ws.ActionPing {
			writer.WriteTyped(ws.PongResponse{Event: ws.EventPong})
		}
	}

	sub.Close()
	<-done
}
