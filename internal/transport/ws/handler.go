package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"buzzroom/internal/model"
	"buzzroom/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // packages carry media URLs, not media
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler upgrades WebSocket connections and maps the client protocol
// onto the session engine.
type Handler struct {
	hub     *Hub
	gameSvc *service.GameService
	authSvc *service.AuthService
}

func NewHandler(hub *Hub, gameSvc *service.GameService, authSvc *service.AuthService) *Handler {
	return &Handler{
		hub:     hub,
		gameSvc: gameSvc,
		authSvc: authSvc,
	}
}

// ServeWS handles GET /v1/ws
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &Connection{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 256),
	}
	h.hub.Add(conn)
	log.Printf("client connected: %s", conn.ID)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Remove(conn)
		wsConn.Close()
		h.disconnect(conn)
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.hub.SendTo(conn, MsgError, errorPayload{Message: "malformed message"})
			continue
		}
		h.dispatch(conn, &msg)
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// disconnect runs after the socket is gone: the engine marks the player
// inactive and the remaining players see the updated roster. A nil
// state means the room was torn down with this departure.
func (h *Handler) disconnect(conn *Connection) {
	log.Printf("client disconnected: %s", conn.ID)
	roomID, state, err := h.gameSvc.HandleDisconnect(conn.ID)
	if err != nil || state == nil {
		return
	}
	h.hub.BroadcastToRoom(roomID, string(MsgStateUpdate), state)
}

func (h *Handler) dispatch(conn *Connection, msg *Message) {
	switch msg.Type {
	case MsgEcho:
		h.hub.SendTo(conn, MsgEcho, map[string]interface{}{
			"received":  msg.Payload,
			"timestamp": time.Now(),
		})

	case MsgCreateGame:
		var p createGamePayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, roomID, err := h.gameSvc.CreateGame(conn.ID, p.PlayerName, p.AvatarURL, p.Password)
		if err != nil {
			h.sendError(conn, err, "")
			return
		}
		h.hub.JoinRoom(conn, roomID)
		h.hub.SendTo(conn, MsgGameCreated, ackPayload{
			GameID:      roomID,
			ResumeToken: h.resumeToken(roomID, p.PlayerName),
		})
		h.hub.BroadcastToRoom(roomID, string(MsgStateUpdate), state)

	case MsgJoinGame:
		var p joinGamePayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.JoinGame(p.GameID, conn.ID, p.PlayerName, p.AvatarURL, p.Password, p.ResumeToken)
		if err != nil {
			h.sendError(conn, err, p.GameID)
			return
		}
		h.hub.JoinRoom(conn, p.GameID)
		h.hub.SendTo(conn, MsgJoined, ackPayload{
			GameID:      p.GameID,
			ResumeToken: h.resumeToken(p.GameID, p.PlayerName),
		})
		h.hub.BroadcastToRoom(p.GameID, string(MsgStateUpdate), state)

	case MsgLoadPackage:
		var p loadPackagePayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.SetPackage(p.GameID, decodePackage(p.Package))
		h.reply(conn, p.GameID, state, err)

	case MsgStartGame:
		var p roomPayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.StartGame(p.GameID)
		h.reply(conn, p.GameID, state, err)

	case MsgSelectQuestion:
		var p selectQuestionPayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.SelectQuestion(p.GameID, p.CategoryIndex, p.QuestionIndex)
		h.reply(conn, p.GameID, state, err)

	case MsgActivateQuestion:
		var p roomPayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.ActivateQuestion(p.GameID)
		h.reply(conn, p.GameID, state, err)

	case MsgBuzzIn:
		var p roomPayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.BuzzIn(p.GameID, conn.ID)
		h.reply(conn, p.GameID, state, err)

	case MsgWrongAnswer:
		var p roomPayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		// Penalty first: it reads the answerer that WrongAnswer clears.
		if _, err := h.gameSvc.MinusScore(p.GameID); err != nil {
			h.sendError(conn, err, p.GameID)
			return
		}
		state, err := h.gameSvc.WrongAnswer(p.GameID)
		h.reply(conn, p.GameID, state, err)

	case MsgCorrectAnswer:
		var p roomPayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.CorrectAnswer(p.GameID)
		h.reply(conn, p.GameID, state, err)

	case MsgSkipQuestion:
		var p roomPayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.SkipQuestion(p.GameID)
		h.reply(conn, p.GameID, state, err)

	case MsgNextQuestion:
		var p roomPayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.NextQuestion(p.GameID)
		h.reply(conn, p.GameID, state, err)

	case MsgClearQueue:
		var p roomPayload
		if !h.decode(conn, msg.Payload, &p) {
			return
		}
		state, err := h.gameSvc.ClearQuestion(p.GameID)
		h.reply(conn, p.GameID, state, err)

	default:
		h.hub.SendTo(conn, MsgError, errorPayload{Message: "unknown message type"})
	}
}

func (h *Handler) decode(conn *Connection, raw json.RawMessage, dst interface{}) bool {
	if len(raw) == 0 {
		h.hub.SendTo(conn, MsgError, errorPayload{Message: "payload missing"})
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		h.hub.SendTo(conn, MsgError, errorPayload{Message: "malformed payload"})
		return false
	}
	return true
}

// reply broadcasts the new state to the room, or reports the failure to
// the requesting connection only.
func (h *Handler) reply(conn *Connection, roomID string, state *model.ClientState, err error) {
	if err != nil {
		h.sendError(conn, err, roomID)
		return
	}
	h.hub.BroadcastToRoom(roomID, string(MsgStateUpdate), state)
}

func (h *Handler) sendError(conn *Connection, err error, roomID string) {
	if errors.Is(err, service.ErrRoomNotFound) {
		h.hub.SendTo(conn, MsgGameNotFound, notFoundPayload{GameID: roomID})
		return
	}
	h.hub.SendTo(conn, MsgError, errorPayload{Message: err.Error()})
}

func (h *Handler) resumeToken(roomID, playerName string) string {
	token, err := h.authSvc.IssueResumeToken(roomID, playerName)
	if err != nil {
		log.Printf("resume token for %s in %s: %v", playerName, roomID, err)
		return ""
	}
	return token
}
