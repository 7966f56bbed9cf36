package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Abdul234Malik/NELFUND/internal/db"
)

// noQueryAnswer is returned when a chat request carries neither a query nor
// a message field. Kept as a 200 answer payload so CORS headers still reach
// the browser.
const noQueryAnswer = "Error: No query or message provided"

type chatRequest struct {
	Query     string `json:"query"`
	Message   string `json:"message"` // legacy field name
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	Citations []string `json:"citations"` // mirrors sources, the field older frontends read
	SessionID string   `json:"session_id,omitempty"`
}

func (s *Server) registerRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/chat", s.handleChat) // kept for older frontends
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Get("/chat/ws", s.handleChatWS)
		r.Post("/sessions", s.handleCreateSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Get("/sessions/{id}/history", s.handleHistory)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "NELFUND Policy Assistant",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	query := req.Query
	if query == "" {
		query = req.Message
	}

	resp := s.answer(r.Context(), query, req.SessionID)
	writeJSON(w, http.StatusOK, resp)
}

// errorAnswer wraps a failure message in the same shape as a normal answer.
func errorAnswer(msg string) chatResponse {
	return chatResponse{Answer: msg, Sources: []string{}, Citations: []string{}}
}

// answer runs the pipeline and optionally records the exchange in a session.
// A blank query never reaches the pipeline.
func (s *Server) answer(ctx context.Context, query, sessionID string) chatResponse {
	if strings.TrimSpace(query) == "" {
		return errorAnswer(noQueryAnswer)
	}

	start := time.Now()
	result := s.pipeline.Handle(ctx, query)
	chatDuration.Observe(time.Since(start).Seconds())
	chatRequests.WithLabelValues(string(result.Intent)).Inc()

	resp := chatResponse{Answer: result.Answer, Sources: result.Sources, Citations: result.Sources}
	if sessionID != "" && s.sessions != nil {
		if _, err := s.sessions.AppendMessage(ctx, sessionID, query, result.Answer, result.Sources); err != nil {
			log.Printf("[SERVER] recording message in session %s: %v", sessionID, err)
		} else {
			resp.SessionID = sessionID
		}
	}
	return resp
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeError(w, http.StatusNotImplemented, "session history is disabled")
		return
	}
	sess, err := s.sessions.Create(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "creating session")
		return
	}
	sessionOps.WithLabelValues("create").Inc()
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeError(w, http.StatusNotImplemented, "session history is disabled")
		return
	}
	id := chi.URLParam(r, "id")
	err := s.sessions.Delete(r.Context(), id)
	if errors.Is(err, db.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "deleting session")
		return
	}
	sessionOps.WithLabelValues("delete").Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeError(w, http.StatusNotImplemented, "session history is disabled")
		return
	}
	id := chi.URLParam(r, "id")
	history, err := s.sessions.History(r.Context(), id)
	if errors.Is(err, db.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"messages":   history,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[SERVER] encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": strings.TrimSpace(msg)})
}
