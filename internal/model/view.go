package model

// ClientState is the snapshot broadcast to clients. Inactive players
// and the room password are withheld, and the board is redacted to
// category titles and point values; answers and prompts are only
// revealed through the current-question snapshot once a question has
// been selected.
type ClientState struct {
	RoomID          string             `json:"roomId"`
	Status          Status             `json:"status"`
	Players         []Player           `json:"players"`
	Package         []RedactedCategory `json:"package"`
	CurrentSelector string             `json:"currentSelector,omitempty"`
	CurrentAnswerer string             `json:"currentAnswerer,omitempty"`
	CurrentQuestion *ActiveQuestion    `json:"currentQuestion,omitempty"`
}

type RedactedCategory struct {
	Title     string             `json:"title"`
	Questions []RedactedQuestion `json:"questions"`
}

type RedactedQuestion struct {
	Points int `json:"points"`
}

// ClientView builds the redacted snapshot. The caller must hold the
// game lock; the returned value shares nothing with the game, so it is
// safe to marshal after the lock is released.
func (g *Game) ClientView() *ClientState {
	view := &ClientState{
		RoomID:          g.RoomID,
		Status:          g.Status,
		Players:         make([]Player, 0, len(g.Players)),
		Package:         make([]RedactedCategory, 0, len(g.Package)),
		CurrentSelector: g.CurrentSelector,
		CurrentAnswerer: g.CurrentAnswerer,
	}
	for _, p := range g.Players {
		if p.IsActive {
			view.Players = append(view.Players, *p)
		}
	}
	for _, cat := range g.Package {
		rc := RedactedCategory{
			Title:     cat.Title,
			Questions: make([]RedactedQuestion, 0, len(cat.Questions)),
		}
		for _, q := range cat.Questions {
			rc.Questions = append(rc.Questions, RedactedQuestion{Points: q.Points})
		}
		view.Package = append(view.Package, rc)
	}
	if g.CurrentQuestion != nil {
		cq := *g.CurrentQuestion
		view.CurrentQuestion = &cq
	}
	return view
}
