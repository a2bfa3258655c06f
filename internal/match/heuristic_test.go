package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafael/resume-match/internal/types"
)

func TestHeuristicAnalysis_HalfCoverage(t *testing.T) {
	job := parseJob(t, `{"id": "j1", "title": "Engineer", "keywords": ["python", "docker"]}`)

	analysis := HeuristicAnalysis(job, "I have 5 years of Python experience.")

	assert.Equal(t, []string{"python"}, analysis.MatchedSkills)
	assert.Equal(t, []string{"docker"}, analysis.MissingSkills)
	assert.Equal(t, float64(75), analysis.OverallScore)
	assert.Equal(t, []string{"docker"}, analysis.Gaps)
	assert.Equal(t, []string{"python"}, analysis.Strengths)
	assert.Equal(t, []string{"Conte sobre sua experiência recente com docker."}, analysis.SuggestedQuestions)
	assert.Equal(t,
		"Cobertura estimada de 50% dos requisitos mencionados para Engineer. Pontos de atenção: docker.",
		analysis.Insights)
}

func TestHeuristicAnalysis_NoUsableKeywords(t *testing.T) {
	job := parseJob(t, `{"id": "j1", "title": "Engineer"}`)

	analysis := HeuristicAnalysis(job, "Short text.")

	// Midpoint coverage default: round(55 + 0.5*40) = 75, no bonuses.
	assert.Equal(t, float64(75), analysis.OverallScore)
	assert.Empty(t, analysis.MatchedSkills)
	assert.Empty(t, analysis.MissingSkills)
	assert.Equal(t,
		"Cobertura estimada de 50% dos requisitos mencionados para Engineer. Nenhuma lacuna crítica identificada nos requisitos analisados.",
		analysis.Insights)
	assert.Empty(t, analysis.SuggestedQuestions)
}

func TestHeuristicAnalysis_ShortKeywordsDropped(t *testing.T) {
	job := parseJob(t, `{"id": "j1", "title": "Engineer", "keywords": ["go", "js", "python"]}`)

	analysis := HeuristicAnalysis(job, "python everywhere")

	// "go" and "js" are shorter than three characters: neither matched nor
	// missing.
	assert.Equal(t, []string{"python"}, analysis.MatchedSkills)
	assert.Empty(t, analysis.MissingSkills)
	assert.Equal(t, float64(95), analysis.OverallScore)
}

func TestHeuristicAnalysis_StackBonuses(t *testing.T) {
	job := parseJob(t, `{"id": "j1", "title": "Engineer"}`)

	analysis := HeuristicAnalysis(job, "TypeScript with Fastify, React frontends, deployed on AWS.")

	// 75 midpoint + 3 (TypeScript) + 3 (Fastify) + 3 (React) + 2 (AWS).
	assert.Equal(t, float64(86), analysis.OverallScore)
}

func TestHeuristicAnalysis_ScoreBounds(t *testing.T) {
	missing := parseJob(t, `{"id": "j1", "title": "Engineer", "keywords": ["kubernetes", "terraform"]}`)
	full := parseJob(t, `{"id": "j1", "title": "Engineer", "keywords": ["typescript", "react", "aws", "nodejs"]}`)

	low := HeuristicAnalysis(missing, "nothing relevant here at all")
	high := HeuristicAnalysis(full, "typescript react aws nodejs")

	// Zero coverage floors at 55; full coverage with every bonus caps at 100.
	assert.Equal(t, float64(55), low.OverallScore)
	assert.Equal(t, float64(100), high.OverallScore)
}

func TestHeuristicAnalysis_DisjointSortedSkillSets(t *testing.T) {
	job := parseJob(t, `{
		"id": "j1",
		"title": "Engineer",
		"keywords": ["zookeeper", "ansible", "python", "memcached", "haskell"]
	}`)

	analysis := HeuristicAnalysis(job, "python and haskell daily")

	assert.Equal(t, []string{"haskell", "python"}, analysis.MatchedSkills)
	assert.Equal(t, []string{"ansible", "memcached", "zookeeper"}, analysis.MissingSkills)
	for _, skill := range analysis.MatchedSkills {
		assert.NotContains(t, analysis.MissingSkills, skill)
	}
}

func TestHeuristicAnalysis_HighlightsCappedAtFive(t *testing.T) {
	job := parseJob(t, `{
		"id": "j1",
		"title": "Engineer",
		"keywords": ["aaa", "bbb", "ccc", "ddd", "eee", "fff", "ggg"]
	}`)

	analysis := HeuristicAnalysis(job, "unrelated resume content")

	assert.Len(t, analysis.Gaps, 5)
	assert.Len(t, analysis.SuggestedQuestions, 5)
	assert.Len(t, analysis.MissingSkills, 7)
	// Gaps keep extractor insertion order.
	assert.Equal(t, []string{"aaa", "bbb", "ccc", "ddd", "eee"}, analysis.Gaps)
}

func TestHeuristicAnalyzer_NeverFails(t *testing.T) {
	job := parseJob(t, `{"id": "j1", "title": "Engineer", "keywords": ["python"]}`)

	result, err := HeuristicAnalyzer{}.Analyze(context.Background(), job, "python")
	require.NoError(t, err)
	assert.Equal(t, types.SourceFallback, result.Source)
	assert.Nil(t, result.Usage)
}
