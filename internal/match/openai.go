package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/rafael/resume-match/internal/schemas"
	"github.com/rafael/resume-match/internal/types"
	"github.com/rafael/resume-match/internal/util"
)

const (
	// DefaultModel is used when no completion model is configured.
	DefaultModel = "gpt-4o-mini"

	maxOutputTokens = 800
	temperature     = 0.2
	maxLogPreview   = 200
)

// analysisSchema constrains the shape of the model's JSON reply.
const analysisSchema = `{
  "type": "object",
  "required": ["overallScore"],
  "properties": {
    "overallScore": {"type": "number", "minimum": 0, "maximum": 100},
    "matchedSkills": {"type": "array", "items": {"type": "string"}},
    "missingSkills": {"type": "array", "items": {"type": "string"}},
    "insights": {"type": "string"},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "gaps": {"type": "array", "items": {"type": "string"}},
    "suggestedQuestions": {"type": "array", "items": {"type": "string"}}
  }
}`

// chatReply is the completion text plus the provider's token accounting.
type chatReply struct {
	Text  string
	Usage *Usage
}

// chatCompleter abstracts the completion API so tests can stub it out.
type chatCompleter interface {
	Complete(ctx context.Context, system, user string) (*chatReply, error)
}

// OpenAIAnalyzer scores a job/résumé pair through the OpenAI chat
// completions API and falls back to the heuristic analyzer on any failure.
// Callers never observe a remote failure as an error; only the Source field
// of the result tells which path produced the analysis.
type OpenAIAnalyzer struct {
	client   chatCompleter
	fallback HeuristicAnalyzer
	guard    GuardPolicy
	logger   *zap.Logger
}

// NewOpenAIAnalyzer builds the remote analyzer. An empty API key yields an
// unconfigured analyzer that always delegates to the heuristic fallback.
func NewOpenAIAnalyzer(apiKey, model string, logger *zap.Logger) *OpenAIAnalyzer {
	a := &OpenAIAnalyzer{
		guard:  DefaultGuardPolicy(),
		logger: logger,
	}
	if apiKey != "" {
		if model == "" {
			model = DefaultModel
		}
		a.client = &openAIChat{
			client: openai.NewClient(option.WithAPIKey(apiKey)),
			model:  model,
		}
	}
	return a
}

// Configured reports whether a remote-API credential is present.
func (a *OpenAIAnalyzer) Configured() bool {
	return a.client != nil
}

// Analyze implements Analyzer. The returned error is always nil: remote
// failures degrade to heuristic scoring, and content the text guard rejects
// yields the canned invalid-résumé analysis.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, job *types.Job, resumeMarkdown string) (*Result, error) {
	if a.guard.LikelyInvalidResume(resumeMarkdown) {
		a.logger.Warn("resume content failed the text guard, returning invalid-resume analysis",
			zap.String("job_id", job.ID),
			zap.String("source", types.SourceFallback),
		)
		return &Result{Analysis: invalidResumeAnalysis(), Source: types.SourceFallback}, nil
	}

	if a.client == nil {
		a.logger.Warn("OpenAI API key not provided, using heuristic analysis",
			zap.String("job_id", job.ID),
			zap.String("source", types.SourceFallback),
		)
		return a.fallback.Analyze(ctx, job, resumeMarkdown)
	}

	result, err := a.analyzeRemote(ctx, job, resumeMarkdown)
	if err != nil {
		a.logger.Error("failed to obtain analysis from OpenAI, falling back to heuristic scoring",
			zap.Error(err),
			zap.String("job_id", job.ID),
		)
		return a.fallback.Analyze(ctx, job, resumeMarkdown)
	}
	return result, nil
}

func (a *OpenAIAnalyzer) analyzeRemote(ctx context.Context, job *types.Job, resumeMarkdown string) (*Result, error) {
	userPrompt, err := buildUserPrompt(job, resumeMarkdown)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	reply, err := a.client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(reply.Text) == "" {
		return nil, errors.New("empty response from OpenAI")
	}

	a.logger.Debug("openai completion received",
		zap.String("job_id", job.ID),
		zap.Duration("duration", time.Since(startedAt)),
		zap.String("response_preview", util.TruncateForLog(reply.Text, maxLogPreview)),
	)

	analysis, err := parseAnalysis(reply.Text)
	if err != nil {
		return nil, err
	}

	a.logger.Info("OpenAI analysis completed",
		zap.String("job_id", job.ID),
		zap.String("source", types.SourceOpenAI),
		zap.Duration("duration", time.Since(startedAt)),
	)

	return &Result{Analysis: *analysis, Source: types.SourceOpenAI, Usage: reply.Usage}, nil
}

// parseAnalysis extracts, shape-checks and decodes the model's JSON reply.
func parseAnalysis(raw string) (*types.Analysis, error) {
	text := extractJSONObject(raw)

	if err := schemas.ValidateJSONString(analysisSchema, text); err != nil {
		return nil, fmt.Errorf("analysis reply rejected: %w", err)
	}

	var analysis types.Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis reply: %w", err)
	}

	// Absent lists default to empty rather than null.
	if analysis.MatchedSkills == nil {
		analysis.MatchedSkills = []string{}
	}
	if analysis.MissingSkills == nil {
		analysis.MissingSkills = []string{}
	}
	if analysis.Strengths == nil {
		analysis.Strengths = []string{}
	}
	if analysis.Gaps == nil {
		analysis.Gaps = []string{}
	}
	return &analysis, nil
}

// openAIChat is the real chatCompleter backed by the OpenAI SDK.
type openAIChat struct {
	client openai.Client
	model  string
}

func (c *openAIChat) Complete(ctx context.Context, system, user string) (*chatReply, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(maxOutputTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in completion response")
	}

	return &chatReply{
		Text: resp.Choices[0].Message.Content,
		Usage: &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
