// Package presets serves the default job description and the preset
// résumés used by the frontend to prefill the match form. Files are read
// once and cached for the process lifetime.
package presets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/rafael/resume-match/internal/types"
)

// PresetResume is one ready-to-use résumé loaded from disk.
type PresetResume struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Label    string `json:"label"`
	Markdown string `json:"markdown"`
}

// Library loads and caches preset data from local files.
type Library struct {
	jobFile   string
	resumeDir string

	mu      sync.Mutex
	job     *types.Job
	resumes []PresetResume
}

// NewLibrary points the library at a job JSON file and a résumé directory.
func NewLibrary(jobFile, resumeDir string) *Library {
	return &Library{jobFile: jobFile, resumeDir: resumeDir}
}

// DefaultJob returns the default job description, reading and validating it
// on first use.
func (l *Library) DefaultJob() (*types.Job, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.job != nil {
		return l.job, nil
	}

	contents, err := os.ReadFile(l.jobFile)
	if err != nil {
		return nil, fmt.Errorf("read default job file: %w", err)
	}
	job, err := types.ParseJob(json.RawMessage(contents))
	if err != nil {
		return nil, fmt.Errorf("parse default job file %s: %w", l.jobFile, err)
	}

	l.job = job
	return job, nil
}

// Resumes returns every preset résumé, reading the directory on first use.
// Entries are sorted by filename for a stable listing.
func (l *Library) Resumes() ([]PresetResume, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resumes != nil {
		return l.resumes, nil
	}

	entries, err := os.ReadDir(l.resumeDir)
	if err != nil {
		return nil, fmt.Errorf("read preset resume directory: %w", err)
	}

	resumes := make([]PresetResume, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		markdown, err := os.ReadFile(filepath.Join(l.resumeDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read preset resume %s: %w", entry.Name(), err)
		}

		id := strings.TrimSuffix(entry.Name(), ".md")
		resumes = append(resumes, PresetResume{
			ID:       id,
			Filename: entry.Name(),
			Label:    labelFromFilename(entry.Name()),
			Markdown: string(markdown),
		})
	}
	sort.Slice(resumes, func(i, j int) bool { return resumes[i].Filename < resumes[j].Filename })

	l.resumes = resumes
	return resumes, nil
}

// labelFromFilename turns "candidate_cv_joao_santos.md" into "Joao Santos".
func labelFromFilename(name string) string {
	label := strings.TrimSuffix(name, ".md")
	lower := strings.ToLower(label)
	if strings.HasPrefix(lower, "candidate_cv_") {
		label = label[len("candidate_cv_"):]
	}
	label = strings.ReplaceAll(label, "_", " ")

	words := strings.Fields(label)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
