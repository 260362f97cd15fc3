package http

import (
	"encoding/json"
	"log"
	"net/http"

	"ailearn-quiz-service/internal/app"
	"ailearn-quiz-service/internal/domain"
)

// APIHandler serves the non-realtime surface: progress statistics,
// preferences, and the glossary browser.
type APIHandler struct {
	progress *app.ProgressService
	catalog  app.CatalogRepository
}

func NewAPIHandler(progress *app.ProgressService, catalog app.CatalogRepository) *APIHandler {
	return &APIHandler{progress: progress, catalog: catalog}
}

// Register mounts the API routes on the mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/progress", h.handleProgress)
	mux.HandleFunc("/api/preferences", h.handlePreferences)
	mux.HandleFunc("/api/glossary", h.handleGlossary)
}

func (h *APIHandler) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		overview := app.BuildOverview(h.progress.GetProgress(r.Context(), userID))
		writeJSON(w, http.StatusOK, overview)
	case http.MethodDelete:
		h.progress.ClearAllData(r.Context(), userID)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type preferencesBody struct {
	SelectedRole *string `json:"selectedRole"`
}

func (h *APIHandler) handlePreferences(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.progress.GetPreferences(r.Context(), userID))
	case http.MethodPut:
		var body preferencesBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid preferences payload", http.StatusBadRequest)
			return
		}
		h.progress.UpdatePreferences(r.Context(), userID, app.PreferencesPatch{SelectedRole: body.SelectedRole})
		writeJSON(w, http.StatusOK, h.progress.GetPreferences(r.Context(), userID))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// glossaryTermView narrows RoleContext to the requested role when one is
// given.
type glossaryTermView struct {
	ID           string `json:"id"`
	Term         string `json:"term"`
	Definition   string `json:"definition"`
	ExternalLink string `json:"externalLink,omitempty"`
	RoleContext  string `json:"roleContext,omitempty"`
}

func (h *APIHandler) handleGlossary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	terms, err := h.catalog.Glossary(r.Context())
	if err != nil {
		log.Printf("load glossary: %v", err)
		http.Error(w, "glossary unavailable", http.StatusServiceUnavailable)
		return
	}

	terms = app.FilterGlossary(terms, r.URL.Query().Get("q"))
	role := domain.Role(r.URL.Query().Get("role"))

	views := make([]glossaryTermView, 0, len(terms))
	for _, term := range terms {
		view := glossaryTermView{
			ID:           term.ID,
			Term:         term.Term,
			Definition:   term.Definition,
			ExternalLink: term.ExternalLink,
		}
		if role != "" {
			view.RoleContext = term.RoleContext[role]
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
