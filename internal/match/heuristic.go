package match

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/rafael/resume-match/internal/types"
)

// Flat score bonuses for stack signals spotted anywhere in the raw résumé.
var (
	typescriptPattern = regexp.MustCompile(`(?i)typescript`)
	nodePattern       = regexp.MustCompile(`(?i)node\.js|nodejs|fastify|express`)
	reactPattern      = regexp.MustCompile(`(?i)react|next\.js|vite`)
	cloudPattern      = regexp.MustCompile(`(?i)aws|azure|gcp`)
)

const maxHighlights = 5

// HeuristicAnalyzer is the deterministic, local, keyword-substring scorer.
// It never fails and never calls external services, which makes it the
// unconditional fallback for the remote analyzer.
type HeuristicAnalyzer struct{}

// Analyze implements Analyzer. The returned error is always nil.
func (HeuristicAnalyzer) Analyze(_ context.Context, job *types.Job, resumeMarkdown string) (*Result, error) {
	return &Result{
		Analysis: HeuristicAnalysis(job, resumeMarkdown),
		Source:   types.SourceFallback,
	}, nil
}

// HeuristicAnalysis computes the fallback analysis. Keywords shorter than
// three characters are dropped from consideration entirely. Coverage
// defaults to the midpoint when the job yields no usable keywords.
func HeuristicAnalysis(job *types.Job, resumeMarkdown string) types.Analysis {
	normalizedResume := strings.ToLower(resumeMarkdown)

	var matched, missing []string
	for _, keyword := range JobKeywords(job) {
		if len(keyword) < 3 {
			continue
		}
		if strings.Contains(normalizedResume, keyword) {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}

	coverage := 0.5
	if total := len(matched) + len(missing); total > 0 {
		coverage = float64(len(matched)) / float64(total)
	}

	score := int(math.Round(55 + coverage*40))
	if typescriptPattern.MatchString(resumeMarkdown) {
		score += 3
	}
	if nodePattern.MatchString(resumeMarkdown) {
		score += 3
	}
	if reactPattern.MatchString(resumeMarkdown) {
		score += 3
	}
	if cloudPattern.MatchString(resumeMarkdown) {
		score += 2
	}
	score = clampScore(score)

	highlights := firstN(missing, maxHighlights)

	questions := make([]string, 0, len(highlights))
	for _, item := range highlights {
		questions = append(questions, fmt.Sprintf("Conte sobre sua experiência recente com %s.", item))
	}

	insights := fmt.Sprintf("Cobertura estimada de %d%% dos requisitos mencionados para %s.",
		int(math.Round(coverage*100)), job.Title)
	if len(highlights) > 0 {
		insights += fmt.Sprintf(" Pontos de atenção: %s.", strings.Join(highlights, ", "))
	} else {
		insights += " Nenhuma lacuna crítica identificada nos requisitos analisados."
	}

	sortedMatched := sortedCopy(matched)
	strengths := firstN(sortedMatched, maxHighlights)

	return types.Analysis{
		OverallScore:       float64(score),
		MatchedSkills:      sortedMatched,
		MissingSkills:      sortedCopy(missing),
		Insights:           insights,
		Strengths:          strengths,
		Gaps:               highlights,
		SuggestedQuestions: questions,
	}
}

func clampScore(score int) int {
	if score < 10 {
		return 10
	}
	if score > 100 {
		return 100
	}
	return score
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		values = values[:n]
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
