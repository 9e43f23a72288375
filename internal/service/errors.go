package service

import "errors"

// Not-found errors resolve to a game_not_found event at the transport;
// everything else is reported back to the requesting connection only.
// None of these ever tears a game down.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrPlayerNotFound   = errors.New("player not found")

	ErrWrongPassword = errors.New("invalid password")
	ErrInvalidToken  = errors.New("invalid or expired token")

	ErrNotInLobby        = errors.New("game is not in lobby")
	ErrQuestionNotActive = errors.New("no active question")
	ErrBanned            = errors.New("player already answered this question")
	ErrNoAnswerer        = errors.New("no player has buzzed in")
)
