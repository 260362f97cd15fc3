package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ailearn-quiz-service/internal/app"
	"ailearn-quiz-service/internal/domain"
	"ailearn-quiz-service/internal/infra/memory"
)

func newAPIServer(t *testing.T) (*httptest.Server, *app.ProgressService) {
	t.Helper()
	progress := app.NewProgressService(memory.NewKVStore())
	catalog := memory.NewCatalogRepository(memory.NewDefaultCatalogLoader(), time.Minute)

	mux := http.NewServeMux()
	NewAPIHandler(progress, catalog).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, progress
}

func TestProgressEndpoint(t *testing.T) {
	server, progress := newAPIServer(t)

	resp, err := http.Get(server.URL + "/api/progress?userId=u1")
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	var overview app.ProgressOverview
	decodeBody(t, resp, &overview)
	if overview.CompletionPercent != 0 || overview.TotalAttempts != 0 {
		t.Fatalf("expected empty overview, got %+v", overview)
	}

	progress.RecordQuizAttempt(context.Background(), "u1", domain.QuizAttempt{
		Timestamp:         1700000000000,
		Score:             2,
		TotalQuestions:    3,
		QuestionsAnswered: []string{"ai", "ml"},
	})

	resp, err = http.Get(server.URL + "/api/progress?userId=u1")
	if err != nil {
		t.Fatalf("get progress 2: %v", err)
	}
	decodeBody(t, resp, &overview)
	if overview.BestScore != 2 || overview.CompletionPercent != 13 { // 2/16 rounds to 13
		t.Fatalf("unexpected overview %+v", overview)
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/progress?userId=u1", nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete progress: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", delResp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/api/progress?userId=u1")
	if err != nil {
		t.Fatalf("get progress 3: %v", err)
	}
	decodeBody(t, resp, &overview)
	if overview.TotalAttempts != 0 {
		t.Fatalf("expected cleared progress, got %+v", overview)
	}
}

func TestProgressEndpointRequiresUserID(t *testing.T) {
	server, _ := newAPIServer(t)
	resp, err := http.Get(server.URL + "/api/progress")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPreferencesEndpoint(t *testing.T) {
	server, _ := newAPIServer(t)

	body, _ := json.Marshal(map[string]string{"selectedRole": "product"})
	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/preferences?userId=u1", bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put preferences: %v", err)
	}
	var prefs domain.Preferences
	decodeBody(t, resp, &prefs)
	if prefs.SelectedRole != "product" {
		t.Fatalf("expected selectedRole product, got %+v", prefs)
	}

	resp, err = http.Get(server.URL + "/api/preferences?userId=u1")
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	decodeBody(t, resp, &prefs)
	if prefs.SelectedRole != "product" {
		t.Fatalf("expected stored role, got %+v", prefs)
	}
}

func TestGlossaryEndpoint(t *testing.T) {
	server, _ := newAPIServer(t)

	resp, err := http.Get(server.URL + "/api/glossary")
	if err != nil {
		t.Fatalf("get glossary: %v", err)
	}
	var terms []glossaryTermView
	decodeBody(t, resp, &terms)
	if len(terms) != 16 {
		t.Fatalf("expected full 16-term glossary, got %d", len(terms))
	}

	resp, err = http.Get(server.URL + "/api/glossary?q=retrieval&role=engineer")
	if err != nil {
		t.Fatalf("search glossary: %v", err)
	}
	decodeBody(t, resp, &terms)
	if len(terms) != 1 || terms[0].ID != "rag" {
		t.Fatalf("expected rag match, got %+v", terms)
	}
	if terms[0].RoleContext == "" {
		t.Fatalf("expected engineer role context, got %+v", terms[0])
	}
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}
