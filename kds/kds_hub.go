package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/pos-till/utils"
)

// Topics yang bisa di-subscribe layar till
const (
	TopicKitchen   = "kitchen"
	TopicWarehouse = "warehouse"
	TopicDashboard = "dashboard"
)

// Event types
const (
	EventKitchenUpdate   = "kitchen_update"
	EventWarehouseUpdate = "warehouse_update"
	EventDashboardUpdate = "dashboard_update"
	EventNewOrder        = "new_order"
	EventShiftUpdate     = "shift_update"
)

func ValidTopic(topic string) bool {
	switch topic {
	case TopicKitchen, TopicWarehouse, TopicDashboard:
		return true
	}
	return false
}

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub menampung semua client websocket per topic
type Hub struct {
	clients map[Conn]string // conn -> topic
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[Conn]string)}
}

// RegisterClient -> menambahkan connection ke topic
func (h *Hub) RegisterClient(conn Conn, topic string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = topic
}

// UnregisterClient -> melepaskan connection
func (h *Hub) UnregisterClient(conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) ClientCount(topic string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	n := 0
	for _, t := range h.clients {
		if t == topic {
			n++
		}
	}
	return n
}

func (h *Hub) BroadcastKitchenUpdate(data interface{}) {
	h.Broadcast(TopicKitchen, Message{Event: EventKitchenUpdate, Data: data})
}

func (h *Hub) BroadcastWarehouseUpdate(data interface{}) {
	h.Broadcast(TopicWarehouse, Message{Event: EventWarehouseUpdate, Data: data})
}

func (h *Hub) BroadcastDashboardUpdate(data interface{}) {
	h.Broadcast(TopicDashboard, Message{Event: EventDashboardUpdate, Data: data})
}

// BroadcastNewOrder -> bunyi notifikasi di layar topic tersebut
func (h *Hub) BroadcastNewOrder(topic string, count int) {
	h.Broadcast(topic, Message{Event: EventNewOrder, Data: map[string]int{"count": count}})
}

// BroadcastShiftUpdate goes to every connected screen.
func (h *Hub) BroadcastShiftUpdate(data interface{}) {
	h.Broadcast("", Message{Event: EventShiftUpdate, Data: data})
}

// Broadcast sends msg to clients of topic; an empty topic means all clients.
// A client that fails a write is dropped.
func (h *Hub) Broadcast(topic string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, t := range h.clients {
		if topic != "" && t != topic {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Warnf("Error sending %s to %s client: %v", msg.Event, t, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
