package service

// Broadcaster pushes engine-initiated events to connected clients
// (avoids an import cycle with the ws package). The hub implements it.
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgType string, payload interface{})
	DisconnectRoom(roomID string)
}
