package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// Event types
const (
	EventOrderRecorded = "order_recorded"
	EventStaffNotif    = "staff_notification"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client owns one display connection. Only its writer goroutine writes to
// conn; send is closed once the client leaves the hub.
type client struct {
	conn *websocket.Conn
	role string
	send chan []byte
}

// Hub keeps the kitchen display connections and fans events out to them.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	c := &client{conn: conn, role: role, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = c
	h.mutex.Unlock()

	go h.writePump(c)
	utils.InfoLogger.WithField("role", role).Info("Kitchen display connected")
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if c, ok := h.clients[conn]; ok {
		h.drop(c)
	}
}

// drop must be called with the mutex held.
func (h *Hub) drop(c *client) {
	delete(h.clients, c.conn)
	close(c.send)
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// OrderRecorded sends a freshly recorded order to every kitchen display.
func (h *Hub) OrderRecorded(order *models.Order) {
	h.Broadcast(Message{Event: EventOrderRecorded, Data: order})
}

// NotifyStaff sends a short text alert to every connected screen.
func (h *Hub) NotifyStaff(message string) {
	h.Broadcast(Message{Event: EventStaffNotif, Data: message})
}

// Broadcast queues msg for every client without waiting on the network. A
// client whose queue is full is dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	utils.InfoLogger.WithFields(logrus.Fields{
		"event":   msg.Event,
		"clients": len(h.clients),
	}).Debug("Broadcasting message")

	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.WithField("role", c.role).Error("Kitchen display is not keeping up, dropping it")
			h.drop(c)
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithField("role", c.role).Errorf("Error sending message to client: %v", err)
			h.Unregister(c.conn)
			return
		}
	}
}
