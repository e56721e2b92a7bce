package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// upstreamStatus maps a Google client error onto the status code to pass
// through to the caller.
func upstreamStatus(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return apiErr.Code
	}
	var tokenErr *oauth2.RetrieveError
	if errors.As(err, &tokenErr) && tokenErr.Response != nil {
		return tokenErr.Response.StatusCode
	}
	return http.StatusInternalServerError
}

func (s *Server) handleCalendarEvents(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestCeiling)
	defer cancel()

	events, err := s.google.ListCalendarEvents(ctx, token)
	if err != nil {
		s.logger.Error("calendar list failed", zap.Error(err))
		writeErrorDetails(w, upstreamStatus(err), "Failed to fetch events", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) handleCalendarRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token required")
		return
	}
	if !s.google.Configured() {
		writeError(w, http.StatusInternalServerError, "Server configuration error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestCeiling)
	defer cancel()

	token, err := s.google.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		s.logger.Error("token refresh failed", zap.Error(err))
		writeErrorDetails(w, upstreamStatus(err), "Failed to refresh token", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleKeepNotes(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestCeiling)
	defer cancel()

	notes, err := s.google.ListNotes(ctx, token)
	if err != nil {
		s.logger.Error("keep list failed", zap.Error(err))
		writeErrorDetails(w, upstreamStatus(err), "Failed to fetch notes", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

type keepCreateRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *Server) handleKeepCreate(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var req keepCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestCeiling)
	defer cancel()

	note, err := s.google.CreateNote(ctx, token, req.Title, req.Body)
	if err != nil {
		s.logger.Error("keep create failed", zap.Error(err))
		writeErrorDetails(w, upstreamStatus(err), "Failed to create note", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, note)
}
