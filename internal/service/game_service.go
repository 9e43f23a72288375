package service

import (
	"log"

	"github.com/google/uuid"

	"buzzroom/internal/model"
	"buzzroom/internal/store"
)

// GameService is the session engine. It owns every state transition of
// a running game; the transport layer maps inbound client actions onto
// these methods and broadcasts whatever state they return. Each method
// runs entirely under the target game's lock, so a transition is
// all-or-nothing and never interleaves with another action or with a
// grace-timer callback on the same game.
type GameService struct {
	store       store.GameStore
	grace       *GraceSupervisor
	authSvc     *AuthService
	broadcaster Broadcaster
}

func NewGameService(st store.GameStore, grace *GraceSupervisor, authSvc *AuthService) *GameService {
	s := &GameService{
		store:   st,
		grace:   grace,
		authSvc: authSvc,
	}
	grace.OnExpire(s.handleGraceExpiry)
	return s
}

// SetBroadcaster sets the sink for engine-initiated state pushes
// (grace-timer expiries, room teardown).
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateGame opens a new room with the creator as host and returns the
// room id alongside the initial state.
func (s *GameService) CreateGame(connID, playerName, avatarURL, password string) (*model.ClientState, string, error) {
	roomID := uuid.New().String()
	host := &model.Player{
		ID:        connID,
		Name:      playerName,
		AvatarURL: avatarURL,
		IsHost:    true,
		IsActive:  true,
	}
	game := model.NewGame(roomID, password, host)
	s.store.Create(game)
	s.store.BindConn(connID, roomID)
	log.Printf("game %s created by %s", roomID, playerName)

	game.Lock()
	defer game.Unlock()
	return game.ClientView(), roomID, nil
}

// JoinGame adds a player to a room, or reconnects one whose name
// matches an existing record. A reconnect reuses the record (keeping
// its score), remaps the connection id, re-keys every role reference
// that pointed at the stale id, and cancels pending grace timers. A
// valid resume token for the room and name replaces the password
// check.
func (s *GameService) JoinGame(roomID, connID, playerName, avatarURL, password, resumeToken string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	authorized := password == game.Password
	if !authorized && resumeToken != "" {
		claims, err := s.authSvc.ValidateResumeToken(resumeToken)
		if err == nil && claims.RoomID == roomID && claims.PlayerName == playerName {
			authorized = true
		}
	}
	if !authorized {
		return nil, ErrWrongPassword
	}

	if p := game.PlayerByName(playerName); p != nil {
		oldID := p.ID
		p.ID = connID
		p.IsActive = true
		if avatarURL != "" {
			p.AvatarURL = avatarURL
		}
		game.RekeyIdentity(oldID, connID)
		s.store.UnbindConn(oldID)
		s.store.BindConn(connID, roomID)
		s.grace.CancelPlayer(roomID, playerName)
		log.Printf("player %s reconnected to game %s", playerName, roomID)
		return game.ClientView(), nil
	}

	game.Players = append(game.Players, &model.Player{
		ID:        connID,
		Name:      playerName,
		AvatarURL: avatarURL,
		IsActive:  true,
	})
	s.store.BindConn(connID, roomID)
	log.Printf("player %s joined game %s", playerName, roomID)
	return game.ClientView(), nil
}

// SetPackage replaces the board wholesale.
func (s *GameService) SetPackage(roomID string, categories []model.Category) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	if categories == nil {
		categories = []model.Category{}
	}
	game.Package = categories
	return game.ClientView(), nil
}

// StartGame moves a lobby into play. If no selector was ever set, the
// first player (the host) selects first.
func (s *GameService) StartGame(roomID string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	if game.Status != model.StatusLobby {
		return nil, ErrNotInLobby
	}
	game.Status = model.StatusPlaying
	if game.CurrentSelector == "" && len(game.Players) > 0 {
		game.CurrentSelector = game.Players[0].ID
	}
	return game.ClientView(), nil
}

// SelectQuestion snapshots the question at the given indices and opens
// it for buzzing.
func (s *GameService) SelectQuestion(roomID string, categoryIndex, questionIndex int) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	q, ok := game.QuestionAt(categoryIndex, questionIndex)
	if !ok {
		return nil, ErrQuestionNotFound
	}
	game.Status = model.StatusQuestionActive
	game.CurrentQuestion = &model.ActiveQuestion{
		CategoryIndex: categoryIndex,
		QuestionIndex: questionIndex,
		Question:      q,
	}
	game.CurrentAnswerer = ""
	return game.ClientView(), nil
}

// ActivateQuestion reopens the current question: the ban list and the
// answerer slot are cleared so everyone may buzz again.
func (s *GameService) ActivateQuestion(roomID string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	game.Status = model.StatusQuestionActive
	game.Banned = make(map[string]bool)
	game.CurrentAnswerer = ""
	return game.ClientView(), nil
}

// BuzzIn locks in the first caller while the answerer slot is empty.
// A buzz while the slot is taken is silently ignored; a buzz from a
// banned player or outside an active question is rejected.
func (s *GameService) BuzzIn(roomID, connID string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	if game.Status != model.StatusQuestionActive {
		return nil, ErrQuestionNotActive
	}
	if game.Banned[connID] {
		return nil, ErrBanned
	}
	if game.CurrentAnswerer != "" {
		return game.ClientView(), nil
	}
	if game.PlayerByID(connID) == nil {
		return nil, ErrPlayerNotFound
	}
	game.CurrentAnswerer = connID
	return game.ClientView(), nil
}

// MinusScore applies the wrong-answer penalty: the current answerer
// loses the snapshotted question's points. Must run before WrongAnswer,
// which clears the answerer this reads.
func (s *GameService) MinusScore(roomID string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	if game.Status != model.StatusQuestionActive || game.CurrentQuestion == nil {
		return nil, ErrQuestionNotActive
	}
	if game.CurrentAnswerer == "" {
		return nil, ErrNoAnswerer
	}
	p := game.PlayerByID(game.CurrentAnswerer)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	p.Score -= game.CurrentQuestion.Question.Points
	return game.ClientView(), nil
}

// WrongAnswer bans the current answerer for this question and reopens
// buzzing for everyone else.
func (s *GameService) WrongAnswer(roomID string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	if game.Status != model.StatusQuestionActive {
		return nil, ErrQuestionNotActive
	}
	if game.CurrentAnswerer == "" {
		return nil, ErrNoAnswerer
	}
	game.Banned[game.CurrentAnswerer] = true
	game.CurrentAnswerer = ""
	return game.ClientView(), nil
}

// CorrectAnswer awards the snapshotted points to the current answerer,
// who becomes the next selector.
func (s *GameService) CorrectAnswer(roomID string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	if game.CurrentAnswerer == "" {
		return nil, ErrNoAnswerer
	}
	if game.CurrentQuestion == nil {
		return nil, ErrQuestionNotActive
	}
	p := game.PlayerByID(game.CurrentAnswerer)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	p.Score += game.CurrentQuestion.Question.Points
	game.Status = model.StatusAnswer
	game.CurrentSelector = game.CurrentAnswerer
	return game.ClientView(), nil
}

// SkipQuestion resolves the question without scoring and hands the
// selector to the active player with the lowest score.
func (s *GameService) SkipQuestion(roomID string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	game.Status = model.StatusAnswer
	if p := game.LowestScoredActive(""); p != nil {
		game.CurrentSelector = p.ID
	} else {
		game.CurrentSelector = ""
	}
	return game.ClientView(), nil
}

// NextQuestion removes the played question from the board and either
// returns to the selection phase or finishes the game when the board
// is exhausted.
func (s *GameService) NextQuestion(roomID string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	game.RemoveCurrentQuestion()
	if !game.HasQuestions() {
		game.ClearQuestionState()
		game.CurrentSelector = ""
		game.Status = model.StatusFinished
		log.Printf("game %s finished", roomID)
		return game.ClientView(), nil
	}
	selector := game.CurrentSelector
	game.ClearQuestionState()
	game.CurrentAnswerer = selector
	game.Status = model.StatusPlaying
	return game.ClientView(), nil
}

// ClearQuestion resets the per-question state. Idempotent.
func (s *GameService) ClearQuestion(roomID string) (*model.ClientState, error) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	game.ClearQuestionState()
	return game.ClientView(), nil
}

// HandleDisconnect marks the connection's player inactive, never
// removing the record: the score and seat survive for a grace period
// so the player can reconnect under a new connection id. If the player
// held the selector or answerer seat, a grace timer is scheduled per
// role. When the last active player drops, the game is torn down
// immediately and a nil state is returned.
func (s *GameService) HandleDisconnect(connID string) (string, *model.ClientState, error) {
	roomID, ok := s.store.RoomForConn(connID)
	if !ok {
		return "", nil, ErrRoomNotFound
	}
	game, ok := s.store.Get(roomID)
	if !ok {
		s.store.UnbindConn(connID)
		return "", nil, ErrRoomNotFound
	}
	game.Lock()
	defer game.Unlock()

	s.store.UnbindConn(connID)
	p := game.PlayerByID(connID)
	if p == nil {
		return roomID, game.ClientView(), nil
	}
	p.IsActive = false
	log.Printf("player %s disconnected from game %s", p.Name, roomID)

	if game.ActiveCount() == 0 {
		s.grace.CancelRoom(roomID)
		s.store.Delete(roomID)
		log.Printf("game %s torn down, no players left", roomID)
		if s.broadcaster != nil {
			s.broadcaster.DisconnectRoom(roomID)
		}
		return roomID, nil, nil
	}

	if game.CurrentSelector == p.ID {
		s.grace.Schedule(roomID, p.Name, RoleSelector)
	}
	if game.CurrentAnswerer == p.ID {
		s.grace.Schedule(roomID, p.Name, RoleAnswerer)
	}
	return roomID, game.ClientView(), nil
}

// handleGraceExpiry runs when a grace timer fires. Everything captured
// at schedule time is re-validated against the live game: the player
// must still exist, still be inactive, and still occupy the role. A
// stale timer does nothing.
func (s *GameService) handleGraceExpiry(roomID, name string, role Role) {
	game, ok := s.store.Get(roomID)
	if !ok {
		return
	}
	game.Lock()

	p := game.PlayerByName(name)
	if p == nil || p.IsActive {
		game.Unlock()
		return
	}

	changed := false
	switch role {
	case RoleSelector:
		if game.CurrentSelector == p.ID {
			if next := game.LowestScoredActive(name); next != nil {
				game.CurrentSelector = next.ID
				log.Printf("game %s: selector passed from %s to %s after grace period", roomID, name, next.Name)
			} else {
				game.CurrentSelector = ""
				log.Printf("game %s: selector %s timed out, no active player to take over", roomID, name)
			}
			changed = true
		}
	case RoleAnswerer:
		if game.CurrentAnswerer == p.ID {
			game.CurrentAnswerer = ""
			log.Printf("game %s: answerer %s timed out, buzzing reopened", roomID, name)
			changed = true
		}
	}

	var view *model.ClientState
	if changed {
		view = game.ClientView()
	}
	game.Unlock()

	if changed && s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(roomID, "state_update", view)
	}
}
