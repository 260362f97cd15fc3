package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ailearn-quiz-service/internal/app"
	"ailearn-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler drives interactive quiz sessions over a websocket: the server
// pushes questions (including deferred advancement) and the client pushes
// answers.
type WSHandler struct {
	quiz     *app.QuizService
	progress *app.ProgressService
	upgrader websocket.Upgrader
}

func NewWSHandler(quiz *app.QuizService, progress *app.ProgressService) *WSHandler {
	return &WSHandler{
		quiz:     quiz,
		progress: progress,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// questionView is the client-facing question shape; it deliberately omits
// the correct answer.
type questionView struct {
	QuestionID     string   `json:"questionId"`
	Term           string   `json:"term"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	QuestionIndex  int      `json:"questionIndex"`
	TotalQuestions int      `json:"totalQuestions"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs one quiz session for its lifetime.
// Closing the connection tears the session down, cancelling any pending
// deferred advancement.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	_, _ = h.quiz.StartSession(r.Context(), userID)
	defer h.quiz.EndSession(userID)

	updates, cancel, err := h.quiz.Subscribe(r.Context(), userID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snapshot, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- snapshotMessage(snapshot):
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			feedback, err := h.quiz.SubmitAnswer(r.Context(), userID, payload.QuestionID, payload.Answer)
			if errors.Is(err, domain.ErrStaleQuestion) {
				// Stale or duplicate UI event: ignored, no state change.
				continue
			}
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: feedback}
		case "restart":
			_, _ = h.quiz.StartSession(r.Context(), userID)
		case "progress":
			overview := app.BuildOverview(h.progress.GetProgress(r.Context(), userID))
			send <- outboundMessage[any]{Type: "progress", Payload: overview}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// snapshotMessage maps a session snapshot to its wire representation.
func snapshotMessage(snapshot app.SessionSnapshot) outboundMessage[any] {
	switch snapshot.State {
	case app.StateActive:
		question := snapshot.Question
		return outboundMessage[any]{Type: "question", Payload: questionView{
			QuestionID:     question.ID,
			Term:           question.Term,
			Question:       question.Question,
			Options:        question.Options,
			QuestionIndex:  snapshot.QuestionIndex,
			TotalQuestions: snapshot.TotalQuestions,
		}}
	case app.StateCompleted:
		return outboundMessage[any]{Type: "completed", Payload: snapshot.Result}
	case app.StateError:
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: snapshot.ErrorMessage}}
	default:
		return outboundMessage[any]{Type: "loading", Payload: struct{}{}}
	}
}
