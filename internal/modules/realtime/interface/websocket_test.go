package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	orders "canteenWeb/internal/modules/orders/domain"
	"canteenWeb/internal/modules/realtime/application/usecase"
	"canteenWeb/internal/modules/realtime/domain"
	"canteenWeb/internal/modules/realtime/infrastructure"
	session "canteenWeb/internal/modules/session/domain"
	stands "canteenWeb/internal/modules/stands/domain"
)

type tokenUsers map[string]session.User

func (u tokenUsers) Resolve(ctx context.Context, token string) (session.User, error) {
	user, ok := u[token]
	if !ok {
		return session.User{}, errors.New("unknown token")
	}
	return user, nil
}

type standOf int

func (s standOf) MyStand(ctx context.Context, token string) (stands.Stand, error) {
	return stands.Stand{ID: int(s)}, nil
}

func startServer(t *testing.T) (*httptest.Server, *infrastructure.Hub) {
	t.Helper()
	hub := infrastructure.NewHub()
	e := echo.New()
	users := tokenUsers{
		"student": {ID: "u-1", Role: session.RoleStudent},
		"owner":   {ID: "u-2", Role: session.RoleStandAdmin},
	}
	NewWebsocketHandler(hub, users, standOf(3), 4).Register(e)
	server := httptest.NewServer(e)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return server, hub
}

func dial(t *testing.T, server *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/orders?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) domain.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg domain.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebsocketDeliversOrderUpdates(t *testing.T) {
	t.Parallel()

	server, hub := startServer(t)
	student := dial(t, server, "student")
	owner := dial(t, server, "owner")

	require.Equal(t, domain.TopicSystemConnected, read(t, student).Topic)
	connected := read(t, owner)
	require.Equal(t, domain.TopicSystemConnected, connected.Topic)
	require.Equal(t, "u-2", connected.Metadata["userId"])

	event := orders.NewStatusChangedEvent(orders.Order{ID: 5, StandID: 3, UserID: "u-1", Status: orders.StatusCooking}, orders.StatusPending, time.Now())
	require.NoError(t, usecase.NewBroadcastUseCase(hub).Publish(context.Background(), event))

	got := read(t, student)
	require.Equal(t, "orders.u-1", got.Topic)
	require.Equal(t, "status_changed", got.Action)
	require.Equal(t, "5", got.ResourceID)

	got = read(t, owner)
	require.Equal(t, "stands.3", got.Topic)
	require.Equal(t, "COOKING", got.Metadata["status"])
}

func TestWebsocketAnswersPing(t *testing.T) {
	t.Parallel()

	server, _ := startServer(t)
	conn := dial(t, server, "student")
	read(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "ping"}))
	require.Equal(t, domain.TopicSystemPong, read(t, conn).Topic)
}

func TestWebsocketRejectsUnknownToken(t *testing.T) {
	t.Parallel()

	server, _ := startServer(t)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/orders?token=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
