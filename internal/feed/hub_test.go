package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stayledger/backend/internal/models"
)

func dialFeed(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial feed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connected clients, have %d", want, h.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubBroadcastsCommittedEvents(t *testing.T) {
	h := NewHub(slog.Default())
	conn := dialFeed(t, h)
	waitForClients(t, h, 1)

	h.EventsCommitted(context.Background(), []models.Event{
		models.AccommodationListed{AccommodationID: 0, Details: "Beach House", Price: 100},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg feedMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read feed message: %v", err)
	}
	if msg.Kind != models.EventAccommodationListed {
		t.Errorf("expected %q, got %q", models.EventAccommodationListed, msg.Kind)
	}
	var ev models.AccommodationListed
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if ev.Details != "Beach House" {
		t.Errorf("unexpected payload: %+v", ev)
	}
}

func TestHubReachesAllClients(t *testing.T) {
	h := NewHub(slog.Default())
	connA := dialFeed(t, h)
	connB := dialFeed(t, h)
	waitForClients(t, h, 2)

	h.EventsCommitted(context.Background(), []models.Event{
		models.BookingCanceled{BookingID: 3, Refund: 50},
	})

	for _, conn := range []*websocket.Conn{connA, connB} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg feedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read feed message: %v", err)
		}
		if msg.Kind != models.EventBookingCanceled {
			t.Errorf("expected %q, got %q", models.EventBookingCanceled, msg.Kind)
		}
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	h := NewHub(slog.Default())
	conn := dialFeed(t, h)
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)
}
