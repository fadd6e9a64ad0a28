package kds

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger(utils.LogConfig{Quiet: true})
	os.Exit(m.Run())
}

func startHubServer(t *testing.T, hub *Hub) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn, "kitchen")
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestOrderRecordedReachesEveryDisplay(t *testing.T) {
	hub := NewHub()
	url := startHubServer(t, hub)
	a := dial(t, url)
	b := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.OrderRecorded(&models.Order{
		ID:            "O-1",
		Total:         decimal.NewFromInt(90),
		PaymentMethod: models.PaymentCash,
		Items:         []models.OrderItem{{Name: "Pizza Calabresa", Quantity: 2, UnitPrice: decimal.NewFromInt(45)}},
	})

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Event string `json:"event"`
			Data  struct {
				ID    string `json:"id"`
				Items []struct {
					Name string `json:"name"`
				} `json:"items"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, EventOrderRecorded, msg.Event)
		assert.Equal(t, "O-1", msg.Data.ID)
		require.Len(t, msg.Data.Items, 1)
		assert.Equal(t, "Pizza Calabresa", msg.Data.Items[0].Name)
	}
}

func TestDisconnectedDisplayIsDropped(t *testing.T) {
	hub := NewHub()
	url := startHubServer(t, hub)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	hub.NotifyStaff("oven 2 is down")
	assert.Zero(t, hub.ClientCount())
}

func TestNotifyStaffReachesDisplay(t *testing.T) {
	hub := NewHub()
	conn := dial(t, startHubServer(t, hub))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.NotifyStaff("Low rating from Ana: 1/5")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, EventStaffNotif, msg.Event)
	assert.Equal(t, "Low rating from Ana: 1/5", msg.Data)
}

func TestBroadcastDoesNotWaitOnStalledDisplay(t *testing.T) {
	hub := NewHub()
	// no writer drains this queue
	stalled := &client{role: "kitchen", send: make(chan []byte)}
	hub.mutex.Lock()
	hub.clients[stalled.conn] = stalled
	hub.mutex.Unlock()

	done := make(chan struct{})
	go func() {
		hub.NotifyStaff("oven 2 is down")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a stalled display")
	}

	assert.Zero(t, hub.ClientCount())
	_, open := <-stalled.send
	assert.False(t, open)
}
