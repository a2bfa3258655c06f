// Package match implements the compatibility analysis subsystem: keyword
// extraction, the deterministic heuristic analyzer, the OpenAI-backed remote
// analyzer with heuristic fallback, the in-memory match store, and the
// orchestrating service.
package match

import (
	"context"

	"github.com/rafael/resume-match/internal/types"
)

// Usage reports the token accounting returned by the completion API.
type Usage struct {
	PromptTokens     int64 `json:"promptTokens,omitempty"`
	CompletionTokens int64 `json:"completionTokens,omitempty"`
	TotalTokens      int64 `json:"totalTokens,omitempty"`
}

// Result is an analysis together with the source that produced it.
type Result struct {
	Analysis types.Analysis
	Source   string
	Usage    *Usage
}

// Analyzer computes a compatibility analysis for a job/résumé pair.
// Implementations are injected into the Service so tests can substitute
// their own.
type Analyzer interface {
	Analyze(ctx context.Context, job *types.Job, resumeMarkdown string) (*Result, error)
}
