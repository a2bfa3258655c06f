package match

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rafael/resume-match/internal/types"
)

// Service orchestrates match creation: it validates the payload, assigns
// identifiers, invokes the configured analyzer, and persists the result in
// the store it owns a handle to.
type Service struct {
	store    *Store
	analyzer Analyzer
	logger   *zap.Logger
}

// NewService wires the orchestrator. The analyzer is an explicit dependency
// so tests can substitute their own implementation.
func NewService(store *Store, analyzer Analyzer, logger *zap.Logger) *Service {
	return &Service{store: store, analyzer: analyzer, logger: logger}
}

// CreateMatch validates the request, runs the analysis and stores the
// resulting record. Validation failures are returned as
// *types.ValidationError; analysis degradation never surfaces as an error.
func (s *Service) CreateMatch(ctx context.Context, payload *types.MatchRequest) (*types.MatchResult, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	job, err := types.ParseJob(payload.Job)
	if err != nil {
		return nil, err
	}

	candidateID := ""
	candidateName := ""
	if payload.Candidate != nil {
		candidateID = payload.Candidate.ID
		candidateName = payload.Candidate.Name
	}
	if candidateID == "" {
		candidateID = uuid.NewString()
	}
	matchID := uuid.NewString()

	analyzed, err := s.analyzer.Analyze(ctx, job, payload.ResumeMarkdown)
	if err != nil {
		return nil, fmt.Errorf("analyze match: %w", err)
	}

	result := &types.MatchResult{
		ID:                 matchID,
		CandidateID:        candidateID,
		CandidateName:      candidateName,
		JobID:              job.ID,
		OverallScore:       int(math.Round(analyzed.Analysis.OverallScore)),
		MatchedSkills:      analyzed.Analysis.MatchedSkills,
		MissingSkills:      analyzed.Analysis.MissingSkills,
		Insights:           analyzed.Analysis.Insights,
		Strengths:          analyzed.Analysis.Strengths,
		Gaps:               analyzed.Analysis.Gaps,
		SuggestedQuestions: analyzed.Analysis.SuggestedQuestions,
		AnalysisSource:     analyzed.Source,
		Job:                job,
		ResumeMarkdown:     payload.ResumeMarkdown,
		CreatedAt:          time.Now().UTC(),
	}

	s.store.Put(result)

	s.logger.Info("match analysis stored in memory",
		zap.String("match_id", result.ID),
		zap.String("candidate_id", candidateID),
		zap.String("job_id", job.ID),
		zap.String("source", analyzed.Source),
	)
	if analyzed.Usage != nil {
		s.logger.Info("OpenAI token usage for match analysis",
			zap.String("match_id", result.ID),
			zap.String("job_id", job.ID),
			zap.Int64("prompt_tokens", analyzed.Usage.PromptTokens),
			zap.Int64("completion_tokens", analyzed.Usage.CompletionTokens),
			zap.Int64("total_tokens", analyzed.Usage.TotalTokens),
		)
	}

	return result, nil
}

// GetMatchReport returns the full record for id, or false when absent.
func (s *Service) GetMatchReport(id string) (*types.MatchResult, bool) {
	return s.store.Get(id)
}

// ListMatchSummaries returns stored summaries, most recent first.
func (s *Service) ListMatchSummaries() []types.MatchSummary {
	return s.store.List()
}
