package handler

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/wealthlog/wealthlog-backend/internal/auth"
	"github.com/wealthlog/wealthlog-backend/internal/middleware"
	"github.com/wealthlog/wealthlog-backend/internal/websocket"
)

// WebSocketHandler upgrades connections onto the change feed
type WebSocketHandler struct {
	hub      *websocket.Hub
	tokens   *auth.TokenService
	users    middleware.UserProvider
	upgrader gorilla.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, tokens *auth.TokenService, users middleware.UserProvider, allowedOrigins []string) *WebSocketHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &WebSocketHandler{
		hub:    hub,
		tokens: tokens,
		users:  users,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins[origin] || origins["*"]
			},
		},
	}
}

// Serve handles GET /ws?token=
// Browsers cannot set headers on WebSocket dials, so the token rides
// in the query string
func (h *WebSocketHandler) Serve(c echo.Context) error {
	tokenString := c.QueryParam("token")
	if tokenString == "" {
		return respondError(c, http.StatusUnauthorized, KindAuthentication, "missing token", nil)
	}

	claims, err := h.tokens.Validate(tokenString)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, KindAuthentication, "invalid or expired token", nil)
	}

	user, err := h.users.GetByID(claims.UserID)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, KindAuthentication, "invalid or expired token", nil)
	}
	if !user.IsActive {
		return respondError(c, http.StatusForbidden, KindAuthorization, "account is inactive", nil)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the handshake failure
		return nil
	}

	client := websocket.NewClient(conn, user.ID, h.hub)
	h.hub.Register(client)

	log.Info().
		Str("client_id", client.ID()).
		Str("user_id", user.ID.String()).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
