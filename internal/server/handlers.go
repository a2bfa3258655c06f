package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rafael/resume-match/internal/types"
)

// statusResponse is the body of GET /api/status.
type statusResponse struct {
	AI aiStatus `json:"ai"`
}

type aiStatus struct {
	OpenAIConfigured bool `json:"openaiConfigured"`
}

// handleCreateMatch runs a match analysis and returns its summary.
func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var payload types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.validationResponse(w, &types.ValidationError{Issues: []types.Issue{
			{Path: "(body)", Message: err.Error()},
		}})
		return
	}

	result, err := s.matches.CreateMatch(r.Context(), &payload)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.validationResponse(w, verr)
			return
		}
		s.logger.Error("unexpected error while creating match", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Unexpected error while processing match")
		return
	}

	s.jsonResponse(w, http.StatusCreated, result.Summary())
}

// handleListMatches returns stored match summaries, most recent first.
func (s *Server) handleListMatches(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.matches.ListMatchSummaries())
}

// handleMatchReport returns the full match record for {id}.
func (s *Server) handleMatchReport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.matches.GetMatchReport(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Match result not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleStatus reports whether the remote analyzer has a credential.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, statusResponse{
		AI: aiStatus{OpenAIConfigured: s.openAIConfigured},
	})
}

// handleDefaultJob serves the default job description.
func (s *Server) handleDefaultJob(w http.ResponseWriter, _ *http.Request) {
	job, err := s.presets.DefaultJob()
	if err != nil {
		s.logger.Error("failed to load default job description", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Não foi possível carregar a vaga padrão.")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handlePresetResumes serves the preset résumé list.
func (s *Server) handlePresetResumes(w http.ResponseWriter, _ *http.Request) {
	resumes, err := s.presets.Resumes()
	if err != nil {
		s.logger.Error("failed to load preset resumes", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load preset resumes")
		return
	}
	s.jsonResponse(w, http.StatusOK, resumes)
}
