package ticker

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/prices"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestHubShutdownReleasesClients(t *testing.T) {
	// Interval long enough that no refresh fires during the test, so no
	// provider is needed.
	hub := NewHub(nil, nil, time.Hour, 1)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	e := echo.New()
	e.GET("/ws/prices", hub.HandleWS)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("hub did not stop on context cancellation")
	}

	// The server side closes the connection; the client read must not hang.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("connection stayed open after hub shutdown")
	}

	// A connection arriving after shutdown is closed instead of blocking the
	// handler on a registration nobody will receive.
	late := make(chan struct{})
	go func() {
		defer close(late)
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/prices"
		c, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			_ = c.Close()
		}
	}()
	select {
	case <-late:
	case <-time.After(2 * time.Second):
		t.Fatalf("post-shutdown connect hung in the handler")
	}
}

func TestHubRegisterAndDisconnect(t *testing.T) {
	hub := NewHub(nil, nil, time.Hour, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	e := echo.New()
	e.GET("/ws/prices", hub.HandleWS)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn := dialHub(t, srv)

	// A frame pushed through the hub reaches the client.
	hub.broadcast <- []byte(`{"type":"prices"}`)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if !strings.Contains(string(msg), "prices") {
		t.Fatalf("unexpected frame: %s", msg)
	}

	// Client-initiated close unregisters without wedging the hub loop: the
	// loop keeps draining broadcasts afterwards.
	_ = conn.Close()
	for i := 0; i < 3; i++ {
		select {
		case hub.broadcast <- []byte(`{"type":"prices"}`):
		case <-time.After(2 * time.Second):
			t.Fatalf("hub loop wedged after client disconnect")
		}
	}
}
