package gemini

import "google.golang.org/genai"

// promptData represents the data passed to the prompt template
type promptData struct {
	Title             string
	Kind              string
	FlashcardCount    int
	QuizQuestionCount int
}

// ResponseSchema represents the expected structure of the Gemini JSON output
type ResponseSchema struct {
	Flashcards []FlashcardSchema `json:"flashcards"`
	QuizTitle  string            `json:"quiz_title"`
	Questions  []QuestionSchema  `json:"questions"`
}

// FlashcardSchema represents a single flashcard in the API response
type FlashcardSchema struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic"`
}

// QuestionSchema represents a single multiple-choice question in the API response
type QuestionSchema struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// responseSchema describes ResponseSchema to the model.
func responseSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"flashcards": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"front": str("question side"),
						"back":  str("answer side"),
						"difficulty": {
							Type: genai.TypeString,
							Enum: []string{"easy", "medium", "hard"},
						},
						"topic": str("subject area"),
					},
					Required: []string{"front", "back", "difficulty", "topic"},
				},
			},
			"quiz_title": str("short quiz title"),
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question":       str("question text"),
						"options":        {Type: genai.TypeArray, Items: str("answer option")},
						"correct_answer": str("must equal one of the options"),
					},
					Required: []string{"question", "options", "correct_answer"},
				},
			},
		},
		Required: []string{"flashcards", "quiz_title", "questions"},
	}
}
