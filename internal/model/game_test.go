package model

import "testing"

func testGame() *Game {
	g := NewGame("room-1", "pw", &Player{ID: "c1", Name: "Alice", IsHost: true, IsActive: true})
	g.Players = append(g.Players,
		&Player{ID: "c2", Name: "Bob", IsActive: true},
		&Player{ID: "c3", Name: "Carol", IsActive: true},
	)
	return g
}

func TestLowestScoredActive(t *testing.T) {
	g := testGame()
	g.Players[0].Score = 100
	g.Players[1].Score = -50
	g.Players[2].Score = 0

	if p := g.LowestScoredActive(""); p == nil || p.Name != "Bob" {
		t.Errorf("lowest = %v, want Bob", p)
	}
	if p := g.LowestScoredActive("Bob"); p == nil || p.Name != "Carol" {
		t.Errorf("lowest excluding Bob = %v, want Carol", p)
	}

	g.Players[1].IsActive = false
	if p := g.LowestScoredActive(""); p == nil || p.Name != "Carol" {
		t.Errorf("lowest with Bob inactive = %v, want Carol", p)
	}
}

func TestLowestScoredActiveTie(t *testing.T) {
	g := testGame()
	// All tied: earliest position in the player list wins.
	if p := g.LowestScoredActive(""); p == nil || p.Name != "Alice" {
		t.Errorf("tie lowest = %v, want Alice", p)
	}
}

func TestLowestScoredActiveNone(t *testing.T) {
	g := testGame()
	for _, p := range g.Players {
		p.IsActive = false
	}
	if p := g.LowestScoredActive(""); p != nil {
		t.Errorf("lowest = %v, want nil with nobody active", p)
	}
}

func TestQuestionAt(t *testing.T) {
	g := testGame()
	g.Package = []Category{{
		Title:     "Science",
		Questions: []Question{{Points: 100}, {Points: 200}},
	}}

	if q, ok := g.QuestionAt(0, 1); !ok || q.Points != 200 {
		t.Errorf("QuestionAt(0,1) = %v, %v", q, ok)
	}
	for _, idx := range [][2]int{{0, 2}, {1, 0}, {-1, 0}, {0, -1}} {
		if _, ok := g.QuestionAt(idx[0], idx[1]); ok {
			t.Errorf("QuestionAt(%d,%d) should not resolve", idx[0], idx[1])
		}
	}
}

func TestRemoveCurrentQuestion(t *testing.T) {
	g := testGame()
	g.Package = []Category{{
		Title:     "Science",
		Questions: []Question{{Points: 100}, {Points: 200}, {Points: 300}},
	}}
	g.CurrentQuestion = &ActiveQuestion{CategoryIndex: 0, QuestionIndex: 1, Question: Question{Points: 200}}

	g.RemoveCurrentQuestion()
	qs := g.Package[0].Questions
	if len(qs) != 2 || qs[0].Points != 100 || qs[1].Points != 300 {
		t.Errorf("questions after removal: %v", qs)
	}
}

func TestRemoveCurrentQuestionStaleIndices(t *testing.T) {
	g := testGame()
	g.Package = []Category{{Title: "Science", Questions: []Question{{Points: 100}}}}
	g.CurrentQuestion = &ActiveQuestion{CategoryIndex: 0, QuestionIndex: 5}

	g.RemoveCurrentQuestion() // board was replaced under the snapshot
	if len(g.Package[0].Questions) != 1 {
		t.Error("stale snapshot indices must remove nothing")
	}

	g.CurrentQuestion = nil
	g.RemoveCurrentQuestion()
	if len(g.Package[0].Questions) != 1 {
		t.Error("nil snapshot must remove nothing")
	}
}

func TestHasQuestions(t *testing.T) {
	g := testGame()
	if g.HasQuestions() {
		t.Error("empty board should report no questions")
	}
	g.Package = []Category{{Title: "Empty"}, {Title: "Full", Questions: []Question{{Points: 100}}}}
	if !g.HasQuestions() {
		t.Error("board with a question should report true")
	}
}

func TestRekeyIdentity(t *testing.T) {
	g := testGame()
	g.CurrentSelector = "c2"
	g.CurrentAnswerer = "c2"
	g.Banned["c2"] = true
	g.Banned["c3"] = true

	g.RekeyIdentity("c2", "c2-new")

	if g.CurrentSelector != "c2-new" || g.CurrentAnswerer != "c2-new" {
		t.Errorf("selector %q answerer %q, want c2-new", g.CurrentSelector, g.CurrentAnswerer)
	}
	if g.Banned["c2"] || !g.Banned["c2-new"] || !g.Banned["c3"] {
		t.Errorf("banned set after rekey: %v", g.Banned)
	}
}

func TestClearQuestionStateIdempotent(t *testing.T) {
	g := testGame()
	g.CurrentAnswerer = "c2"
	g.Banned["c2"] = true
	g.CurrentQuestion = &ActiveQuestion{}

	g.ClearQuestionState()
	g.ClearQuestionState()

	if g.CurrentAnswerer != "" || len(g.Banned) != 0 || g.CurrentQuestion != nil {
		t.Errorf("state not cleared: answerer=%q banned=%v snapshot=%v",
			g.CurrentAnswerer, g.Banned, g.CurrentQuestion)
	}
}
