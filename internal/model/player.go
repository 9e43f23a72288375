package model

// Player is a participant in a game room.
//
// ID is the transport connection id and changes on every reconnect.
// Name is the durable identity a reconnecting player is matched by;
// the score follows the name, not the connection.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Score     int    `json:"score"`
	IsHost    bool   `json:"isHost"`
	IsActive  bool   `json:"isActive"`
}
