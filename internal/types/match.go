package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Analysis sources reported on match results.
const (
	SourceOpenAI   = "openai"
	SourceFallback = "fallback"
)

// Candidate carries the optional candidate identity supplied with a request.
type Candidate struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// MatchRequest is the payload of POST /api/match. The job is kept raw until
// it is parsed and validated as a Job.
type MatchRequest struct {
	Job            json.RawMessage `json:"job" validate:"required"`
	ResumeMarkdown string          `json:"resumeMarkdown" validate:"required,min=1"`
	Candidate      *Candidate      `json:"candidate,omitempty"`
	Source         string          `json:"source,omitempty" validate:"omitempty,oneof=upload preset manual"`
}

// Validate checks the request shape using the validator. Job structure is
// validated separately via ParseJob.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			verr := &ValidationError{}
			for _, fe := range fieldErrs {
				verr.Issues = append(verr.Issues, Issue{
					Path:    lowerFirst(fe.Field()),
					Message: fmt.Sprintf("failed %q validation", fe.Tag()),
				})
			}
			return verr
		}
		return err
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// Analysis is the score + skills + narrative payload produced by either
// analyzer. OverallScore is kept as a float until the orchestrator rounds it.
type Analysis struct {
	OverallScore       float64  `json:"overallScore"`
	MatchedSkills      []string `json:"matchedSkills"`
	MissingSkills      []string `json:"missingSkills"`
	Insights           string   `json:"insights"`
	Strengths          []string `json:"strengths"`
	Gaps               []string `json:"gaps"`
	SuggestedQuestions []string `json:"suggestedQuestions,omitempty"`
}

// MatchResult is one computed compatibility record between a résumé and a
// job. Immutable once created and uniquely keyed by ID.
type MatchResult struct {
	ID                 string    `json:"id"`
	CandidateID        string    `json:"candidateId"`
	CandidateName      string    `json:"candidateName,omitempty"`
	JobID              string    `json:"jobId"`
	OverallScore       int       `json:"overallScore"`
	MatchedSkills      []string  `json:"matchedSkills"`
	MissingSkills      []string  `json:"missingSkills"`
	Insights           string    `json:"insights"`
	Strengths          []string  `json:"strengths"`
	Gaps               []string  `json:"gaps"`
	SuggestedQuestions []string  `json:"suggestedQuestions,omitempty"`
	AnalysisSource     string    `json:"analysisSource"`
	Job                *Job      `json:"job"`
	ResumeMarkdown     string    `json:"resumeMarkdown"`
	CreatedAt          time.Time `json:"createdAt"`
}

// MatchSummary is the reduced projection of a MatchResult used in listings.
type MatchSummary struct {
	ID             string    `json:"id"`
	CandidateID    string    `json:"candidateId"`
	CandidateName  string    `json:"candidateName,omitempty"`
	JobID          string    `json:"jobId"`
	OverallScore   int       `json:"overallScore"`
	AnalysisSource string    `json:"analysisSource"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Summary builds the listing projection of the result.
func (r *MatchResult) Summary() MatchSummary {
	return MatchSummary{
		ID:             r.ID,
		CandidateID:    r.CandidateID,
		CandidateName:  r.CandidateName,
		JobID:          r.JobID,
		OverallScore:   r.OverallScore,
		AnalysisSource: r.AnalysisSource,
		CreatedAt:      r.CreatedAt,
	}
}

// Issue is a single structured validation problem reported to API callers.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError aggregates request validation issues. It maps to HTTP 400.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid request payload")
	for _, issue := range e.Issues {
		sb.WriteString(fmt.Sprintf("; %s: %s", issue.Path, issue.Message))
	}
	return sb.String()
}
