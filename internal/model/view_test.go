package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestClientViewFiltersAndRedacts(t *testing.T) {
	g := testGame()
	g.Players[2].IsActive = false
	g.Package = []Category{{
		Title: "Science",
		Questions: []Question{{
			Text:    "What is entropy?",
			Points:  400,
			Type:    ContentText,
			Content: "What is entropy?",
			Answer:  Answer{Type: ContentText, Content: "disorder", Text: "disorder"},
		}},
	}}

	view := g.ClientView()

	if len(view.Players) != 2 {
		t.Errorf("view players %d, want 2 active", len(view.Players))
	}
	for _, p := range view.Players {
		if p.Name == "Carol" {
			t.Error("inactive player must not appear in the view")
		}
	}
	if len(view.Package) != 1 || view.Package[0].Title != "Science" {
		t.Fatalf("view package: %+v", view.Package)
	}
	if view.Package[0].Questions[0].Points != 400 {
		t.Errorf("points %d, want 400", view.Package[0].Questions[0].Points)
	}

	data, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, secret := range []string{"entropy", "disorder", "pw"} {
		if strings.Contains(string(data), secret) {
			t.Errorf("redacted view leaks %q", secret)
		}
	}
}

func TestClientViewRevealsCurrentQuestion(t *testing.T) {
	g := testGame()
	g.Status = StatusQuestionActive
	g.CurrentQuestion = &ActiveQuestion{
		CategoryIndex: 0,
		QuestionIndex: 0,
		Question: Question{
			Text:   "Capital of France?",
			Points: 100,
			Answer: Answer{Text: "Paris"},
		},
	}

	view := g.ClientView()
	if view.CurrentQuestion == nil {
		t.Fatal("selected question must be revealed")
	}
	if view.CurrentQuestion.Question.Text != "Capital of France?" {
		t.Errorf("question text %q", view.CurrentQuestion.Question.Text)
	}

	// The view owns a copy of the snapshot.
	view.CurrentQuestion.Question.Points = 999
	if g.CurrentQuestion.Question.Points != 100 {
		t.Error("mutating the view changed the game")
	}
}

func TestClientViewSharesNothing(t *testing.T) {
	g := testGame()
	view := g.ClientView()

	view.Players[0].Score = 12345
	if g.Players[0].Score != 0 {
		t.Error("mutating a view player changed the game")
	}
}
