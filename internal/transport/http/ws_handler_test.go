package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ailearn-quiz-service/internal/app"
	"ailearn-quiz-service/internal/domain"
	"ailearn-quiz-service/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.ProgressService) {
	t.Helper()
	pool := []domain.QuizQuestion{
		{
			ID:            "q-ai",
			Term:          "ai",
			Question:      "Which option defines ai?",
			Options:       []string{"right", "wrong"},
			CorrectAnswer: "right",
			GlossaryLink:  "ai",
		},
	}
	progress := app.NewProgressService(memory.NewKVStore())
	catalog := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(nil, pool), time.Minute)
	quiz := app.NewQuizService(memory.NewSessionStore(), catalog, progress, app.QuizConfig{QuestionsPerQuiz: 1})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", NewWSHandler(quiz, progress).ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, progress
}

func TestWebSocketQuizFlow(t *testing.T) {
	server, _ := newTestServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws?userId=u1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// First push is the active question.
	msgType, payload := readNext(t, conn)
	if msgType != "question" {
		t.Fatalf("expected question, got %s", msgType)
	}
	var question struct {
		QuestionID string   `json:"questionId"`
		Options    []string `json:"options"`
	}
	if err := json.Unmarshal(payload, &question); err != nil {
		t.Fatalf("decode question: %v", err)
	}
	if question.QuestionID != "q-ai" {
		t.Fatalf("unexpected question %+v", question)
	}
	for _, option := range question.Options {
		if option == "" {
			t.Fatalf("empty option in %v", question.Options)
		}
	}

	answer := map[string]any{
		"type": "answer",
		"payload": map[string]any{
			"questionId": "q-ai",
			"answer":     "right",
		},
	}
	if err := conn.WriteJSON(answer); err != nil {
		t.Fatalf("write answer: %v", err)
	}

	// Expect answerResult and completed in either order (feedback comes from
	// the read loop, completion from the snapshot forwarder).
	answerSeen := false
	completedSeen := false
	for i := 0; i < 2; i++ {
		typ, raw := readNext(t, conn)
		switch typ {
		case "answerResult":
			answerSeen = true
			var feedback app.AnswerFeedback
			if err := json.Unmarshal(raw, &feedback); err != nil {
				t.Fatalf("decode feedback: %v", err)
			}
			if !feedback.Correct || feedback.CorrectAnswer != "right" {
				t.Fatalf("unexpected feedback %+v", feedback)
			}
		case "completed":
			completedSeen = true
			var result app.QuizResult
			if err := json.Unmarshal(raw, &result); err != nil {
				t.Fatalf("decode result: %v", err)
			}
			if result.Score != 1 || result.TotalQuestions != 1 {
				t.Fatalf("unexpected result %+v", result)
			}
		default:
			t.Fatalf("unexpected message type %s", typ)
		}
	}
	if !answerSeen || !completedSeen {
		t.Fatalf("expected both answerResult and completed, got answer=%v completed=%v", answerSeen, completedSeen)
	}

	// Progress now reflects the recorded attempt.
	if err := conn.WriteJSON(map[string]any{"type": "progress"}); err != nil {
		t.Fatalf("write progress request: %v", err)
	}
	typ, raw := readNext(t, conn)
	if typ != "progress" {
		t.Fatalf("expected progress, got %s", typ)
	}
	var overview app.ProgressOverview
	if err := json.Unmarshal(raw, &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.BestScore != 1 || overview.TotalAttempts != 1 {
		t.Fatalf("unexpected overview %+v", overview)
	}
}

func TestWebSocketRequiresUserID(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/ws")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without userId, got %d", resp.StatusCode)
	}
}

func readNext(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read message: %v", err)
	}
	return msg.Type, msg.Payload
}
