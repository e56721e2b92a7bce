package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/drflex-app/drflex-proxy/internal/llm"
)

type chatRequest struct {
	Personality string        `json:"personality"`
	History     []llm.Message `json:"history"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !s.ensureLLMConfigured(w) {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestCeiling)
	defer cancel()

	result, err := s.orchestrator.Handle(ctx, req.Personality, req.History)
	if err != nil {
		s.logger.Error("chat turn failed", zap.Error(err))
		var upstream *llm.UpstreamError
		if errors.As(err, &upstream) {
			writeErrorDetails(w, http.StatusInternalServerError, "OpenAI error", upstream.Detail)
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
