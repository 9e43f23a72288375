package model

import "sync"

// Status is the phase a game is in.
type Status string

const (
	StatusLobby          Status = "LOBBY"
	StatusPlaying        Status = "PLAYING"
	StatusQuestionActive Status = "QUESTION_ACTIVE"
	StatusAnswer         Status = "ANSWER"
	StatusFinished       Status = "FINISHED"
)

// ActiveQuestion is the snapshot taken when a question is selected.
// Scoring reads the snapshot, not the package, so removing the question
// from the board later does not change the points in play.
type ActiveQuestion struct {
	CategoryIndex int      `json:"categoryIndex"`
	QuestionIndex int      `json:"questionIndex"`
	Question      Question `json:"question"`
}

// Game is one running room. Every field is guarded by the game's own
// mutex; engine operations and grace-timer callbacks run entirely
// under it.
//
// CurrentSelector, CurrentAnswerer and Banned hold connection ids, so
// a reconnect must re-key them along with the player record.
// CurrentAnswerer and Banned only carry meaning while the status is
// QUESTION_ACTIVE.
type Game struct {
	mu sync.Mutex

	RoomID          string
	Password        string
	Status          Status
	Players         []*Player
	Package         []Category
	CurrentSelector string
	CurrentAnswerer string
	Banned          map[string]bool
	CurrentQuestion *ActiveQuestion
}

func NewGame(roomID, password string, host *Player) *Game {
	return &Game{
		RoomID:   roomID,
		Password: password,
		Status:   StatusLobby,
		Players:  []*Player{host},
		Banned:   make(map[string]bool),
	}
}

func (g *Game) Lock()   { g.mu.Lock() }
func (g *Game) Unlock() { g.mu.Unlock() }

// PlayerByID finds a player by connection id.
func (g *Game) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByName finds a player by durable name.
func (g *Game) PlayerByName(name string) *Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ActiveCount counts connected players.
func (g *Game) ActiveCount() int {
	n := 0
	for _, p := range g.Players {
		if p.IsActive {
			n++
		}
	}
	return n
}

// LowestScoredActive returns the active player with the strictly lowest
// score, ties broken by earliest position in the player list. Players
// named excludeName are skipped. Returns nil if no active player
// qualifies.
func (g *Game) LowestScoredActive(excludeName string) *Player {
	var best *Player
	for _, p := range g.Players {
		if !p.IsActive || p.Name == excludeName {
			continue
		}
		if best == nil || p.Score < best.Score {
			best = p
		}
	}
	return best
}

// QuestionAt resolves a category/question index pair against the board.
func (g *Game) QuestionAt(categoryIndex, questionIndex int) (Question, bool) {
	if categoryIndex < 0 || categoryIndex >= len(g.Package) {
		return Question{}, false
	}
	cat := g.Package[categoryIndex]
	if questionIndex < 0 || questionIndex >= len(cat.Questions) {
		return Question{}, false
	}
	return cat.Questions[questionIndex], true
}

// RemoveCurrentQuestion deletes the snapshotted question from the
// board. A snapshot whose indices no longer resolve (the package was
// replaced mid-question) removes nothing.
func (g *Game) RemoveCurrentQuestion() {
	cq := g.CurrentQuestion
	if cq == nil {
		return
	}
	if cq.CategoryIndex < 0 || cq.CategoryIndex >= len(g.Package) {
		return
	}
	cat := &g.Package[cq.CategoryIndex]
	if cq.QuestionIndex < 0 || cq.QuestionIndex >= len(cat.Questions) {
		return
	}
	cat.Questions = append(cat.Questions[:cq.QuestionIndex], cat.Questions[cq.QuestionIndex+1:]...)
}

// HasQuestions reports whether any category still has a question left.
func (g *Game) HasQuestions() bool {
	for _, cat := range g.Package {
		if len(cat.Questions) > 0 {
			return true
		}
	}
	return false
}

// ClearQuestionState resets the per-question fields. Idempotent.
func (g *Game) ClearQuestionState() {
	g.Banned = make(map[string]bool)
	g.CurrentAnswerer = ""
	g.CurrentQuestion = nil
}

// RekeyIdentity moves every role reference from a stale connection id
// to the one a reconnecting player came back with.
func (g *Game) RekeyIdentity(oldID, newID string) {
	if g.CurrentSelector == oldID {
		g.CurrentSelector = newID
	}
	if g.CurrentAnswerer == oldID {
		g.CurrentAnswerer = newID
	}
	if g.Banned[oldID] {
		delete(g.Banned, oldID)
		g.Banned[newID] = true
	}
}
