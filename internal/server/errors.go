package server

import (
	"net/http"

	"github.com/rafael/resume-match/internal/types"
)

// errorBody is the JSON shape of every error response. Issues is populated
// only for validation failures.
type errorBody struct {
	Message string        `json:"message"`
	Issues  []types.Issue `json:"issues,omitempty"`
}

// errorResponse writes a generic error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, errorBody{Message: message})
}

// validationResponse writes a 400 with structured issue details.
func (s *Server) validationResponse(w http.ResponseWriter, verr *types.ValidationError) {
	s.jsonResponse(w, http.StatusBadRequest, errorBody{
		Message: "Invalid request payload",
		Issues:  verr.Issues,
	})
}
