package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/drflex-app/drflex-proxy/internal/search"
)

type searchLearningRequest struct {
	Topics []string `json:"topics"`
}

func (s *Server) handleSearchLearning(w http.ResponseWriter, r *http.Request) {
	if !s.ensureSearchConfigured(w) {
		return
	}

	var req searchLearningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topics == nil {
		writeError(w, http.StatusBadRequest, "Invalid topics")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestCeiling)
	defer cancel()

	requests := make([]search.Request, 0, len(req.Topics))
	for _, topic := range req.Topics {
		requests = append(requests, search.Request{Topic: topic})
	}
	items := s.resolver.Resolve(ctx, search.ModeLearning, requests, s.cfg.ResolveTarget)
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type searchEventsRequest struct {
	Events []struct {
		Topic    string `json:"topic"`
		Location string `json:"location"`
	} `json:"events"`
}

func (s *Server) handleSearchEvents(w http.ResponseWriter, r *http.Request) {
	if !s.ensureSearchConfigured(w) {
		return
	}

	var req searchEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Events == nil {
		writeError(w, http.StatusBadRequest, "Invalid events format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestCeiling)
	defer cancel()

	requests := make([]search.Request, 0, len(req.Events))
	for _, event := range req.Events {
		requests = append(requests, search.Request{Topic: event.Topic, Location: event.Location})
	}
	items := s.resolver.Resolve(ctx, search.ModeEvents, requests, s.cfg.ResolveTarget)
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) ensureSearchConfigured(w http.ResponseWriter) bool {
	if s.cfg.BraveAPIKey == "" {
		writeError(w, http.StatusInternalServerError, "Missing search API key")
		return false
	}
	return true
}
