package model

// ContentType describes how a prompt or answer payload should be rendered.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentAudio ContentType = "audio"
)

// Answer is the reveal shown after a question is resolved.
type Answer struct {
	Type            ContentType `json:"type"`
	Content         string      `json:"content"`
	Text            string      `json:"text"`
	BackgroundMusic string      `json:"backgroundMusic,omitempty"`
}

// Question is one cell of the board. The engine only interprets Points;
// everything else is an opaque payload forwarded to clients.
type Question struct {
	Text    string      `json:"text"`
	Points  int         `json:"points"`
	Type    ContentType `json:"type"`
	Content string      `json:"content"`
	Hint    string      `json:"hint,omitempty"`
	Answer  Answer      `json:"answer"`
}

// Category is a titled column of questions.
type Category struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}
