package ws

import (
	"encoding/json"

	"buzzroom/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Client actions
const (
	MsgEcho             MessageType = "echo"
	MsgCreateGame       MessageType = "create_game"
	MsgJoinGame         MessageType = "join_game"
	MsgLoadPackage      MessageType = "load_package"
	MsgStartGame        MessageType = "start_game"
	MsgSelectQuestion   MessageType = "select_question"
	MsgActivateQuestion MessageType = "activate_question"
	MsgBuzzIn           MessageType = "buzz_in"
	MsgWrongAnswer      MessageType = "wrong_answer"
	MsgCorrectAnswer    MessageType = "correct_answer"
	MsgSkipQuestion     MessageType = "skip_question"
	MsgNextQuestion     MessageType = "next_question"
	MsgClearQueue       MessageType = "clear_queue"
)

// Server events
const (
	MsgStateUpdate  MessageType = "state_update"
	MsgGameCreated  MessageType = "game_created"
	MsgJoined       MessageType = "joined"
	MsgGameNotFound MessageType = "game_not_found"
	MsgError        MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type createGamePayload struct {
	PlayerName string `json:"playerName"`
	AvatarURL  string `json:"avatarUrl"`
	Password   string `json:"password"`
}

type joinGamePayload struct {
	GameID      string `json:"gameId"`
	PlayerName  string `json:"playerName"`
	AvatarURL   string `json:"avatarUrl"`
	Password    string `json:"password"`
	ResumeToken string `json:"resumeToken"`
}

type roomPayload struct {
	GameID string `json:"gameId"`
}

type selectQuestionPayload struct {
	GameID        string `json:"gameId"`
	CategoryIndex int    `json:"categoryIndex"`
	QuestionIndex int    `json:"questionIndex"`
}

type loadPackagePayload struct {
	GameID  string          `json:"gameId"`
	Package json.RawMessage `json:"package"`
}

type ackPayload struct {
	GameID      string `json:"gameId"`
	ResumeToken string `json:"resumeToken,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type notFoundPayload struct {
	GameID string `json:"gameId"`
}

// decodePackage coerces the raw package payload into categories.
// Anything that is not an array of categories becomes an empty board.
func decodePackage(raw json.RawMessage) []model.Category {
	var categories []model.Category
	if len(raw) == 0 || json.Unmarshal(raw, &categories) != nil || categories == nil {
		return []model.Category{}
	}
	return categories
}
