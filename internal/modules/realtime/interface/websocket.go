package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	guard "canteenWeb/internal/modules/guard/interface"
	"canteenWeb/internal/modules/realtime/domain"
	"canteenWeb/internal/modules/realtime/infrastructure"
	session "canteenWeb/internal/modules/session/domain"
	standsport "canteenWeb/internal/modules/stands/application/port"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebsocketHandler serves /ws/orders. The connection listens on the caller's order topic and,
// for stand owners, on their stand's topic.
type WebsocketHandler struct {
	Hub        *infrastructure.Hub
	Sessions   guard.SessionResolver
	Stands     standsport.StandLookup
	SendBuffer int
}

func NewWebsocketHandler(hub *infrastructure.Hub, sessions guard.SessionResolver, stands standsport.StandLookup, sendBuffer int) *WebsocketHandler {
	return &WebsocketHandler{Hub: hub, Sessions: sessions, Stands: stands, SendBuffer: sendBuffer}
}

func (h *WebsocketHandler) Register(e *echo.Echo) {
	e.GET("/ws/orders", h.Connect)
}

func (h *WebsocketHandler) Connect(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	token := guard.TokenFrom(c)
	if token == "" {
		token = strings.TrimSpace(c.QueryParam("token"))
	}
	user, ok := guard.UserFrom(c)
	if !ok {
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		resolved, err := h.Sessions.Resolve(ctx, token)
		if err != nil {
			slog.Warn("ws session rejected", slog.String("ip", c.RealIP()), slog.Any("error", err))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		user = resolved
	}

	standID := 0
	if user.Role == session.RoleStandAdmin && h.Stands != nil {
		stand, err := h.Stands.MyStand(ctx, token)
		if err != nil {
			slog.Info("ws stand owner without stand", slog.String("userId", user.ID), slog.Any("error", err))
		} else {
			standID = stand.ID
		}
	}
	topics := domain.ConnectionTopics(user.ID, standID)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("ws upgrade failed", slog.String("userId", user.ID), slog.Any("error", err))
		return err
	}

	sessionID := uuid.NewString()
	client := infrastructure.NewClient(h.Hub, conn, user.ID, sessionID, topics, h.SendBuffer)
	h.Hub.AttachClient(client, topics)

	go client.WritePump()
	go client.ReadPump()

	client.SendDomainMessage(&domain.Message{
		Topic:  domain.TopicSystemConnected,
		Entity: domain.SystemEntity,
		Action: domain.ActionConnected,
		Metadata: map[string]string{
			"userId":    user.ID,
			"sessionId": sessionID,
		},
		Data: map[string]any{
			"role":   user.Role,
			"topics": topics,
		},
		Timestamp: time.Now().UTC(),
	})
	slog.Info("ws connected", slog.String("userId", user.ID), slog.String("role", string(user.Role)), slog.String("sessionId", sessionID), slog.Any("topics", topics), slog.String("ip", c.RealIP()))
	return nil
}
