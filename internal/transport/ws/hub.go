package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks WebSocket connections and their room membership, and fans
// broadcasts out to every connection in a room. It implements
// service.Broadcaster.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Connection            // connection id -> conn
	rooms map[string]map[string]*Connection // room id -> connection id -> conn
}

// Connection represents one WebSocket client.
type Connection struct {
	ID     string
	RoomID string // set when the connection enters a room
	Send   chan []byte
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Connection),
		rooms: make(map[string]map[string]*Connection),
	}
}

// Add registers a freshly upgraded connection.
func (h *Hub) Add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID] = conn
}

// Remove unregisters a connection and closes its send channel.
func (h *Hub) Remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn.ID]; !ok {
		return
	}
	delete(h.conns, conn.ID)
	if conn.RoomID != "" {
		if room, ok := h.rooms[conn.RoomID]; ok {
			delete(room, conn.ID)
			if len(room) == 0 {
				delete(h.rooms, conn.RoomID)
			}
		}
	}
	close(conn.Send)
}

// JoinRoom enters the connection into a room's broadcast set.
func (h *Hub) JoinRoom(conn *Connection, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn.RoomID != "" && conn.RoomID != roomID {
		if room, ok := h.rooms[conn.RoomID]; ok {
			delete(room, conn.ID)
		}
	}
	conn.RoomID = roomID
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]*Connection)
	}
	h.rooms[roomID][conn.ID] = conn
}

// BroadcastToRoom sends a message to every connection in the room.
// Slow consumers whose buffers are full have the message dropped.
func (h *Hub) BroadcastToRoom(roomID string, msgType string, payload interface{}) {
	data, err := marshalMessage(MessageType(msgType), payload)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.rooms[roomID] {
		select {
		case conn.Send <- data:
		default:
		}
	}
}

// SendTo sends a message to a single connection.
func (h *Hub) SendTo(conn *Connection, msgType MessageType, payload interface{}) {
	data, err := marshalMessage(msgType, payload)
	if err != nil {
		log.Printf("send marshal error: %v", err)
		return
	}
	select {
	case conn.Send <- data:
	default:
	}
}

// DisconnectRoom drops every connection in a room. The engine calls
// this on teardown; the write pumps observe the closed send channels
// and close the sockets.
func (h *Hub) DisconnectRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.rooms[roomID] {
		delete(h.conns, id)
		close(conn.Send)
	}
	delete(h.rooms, roomID)
}

func marshalMessage(msgType MessageType, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: raw})
}
