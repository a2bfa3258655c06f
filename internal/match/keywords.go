package match

import (
	"strings"

	"github.com/rafael/resume-match/internal/types"
)

// JobKeywords derives the deduplicated, lowercased keyword set of a job.
// Sources are visited in a fixed order (explicit keywords, mandatory then
// desirable requirement items, responsibilities, description tokens) and
// the returned slice preserves first-insertion order so downstream
// consumers have a stable iteration order.
func JobKeywords(job *types.Job) []string {
	seen := make(map[string]struct{})
	var keywords []string

	add := func(keyword string) {
		keyword = strings.ToLower(keyword)
		if _, ok := seen[keyword]; ok {
			return
		}
		seen[keyword] = struct{}{}
		keywords = append(keywords, keyword)
	}

	for _, keyword := range job.Keywords {
		add(keyword)
	}

	if job.Requirements != nil {
		for _, group := range job.Requirements.Mandatory {
			for _, item := range group.Items {
				add(item.String())
			}
		}
		for _, group := range job.Requirements.Desirable {
			for _, item := range group.Items {
				add(item.String())
			}
		}
	}

	for _, responsibility := range job.Responsibilities {
		add(responsibility)
	}

	if job.Description != "" {
		for _, token := range splitDescription(job.Description) {
			if len(token) > 2 {
				add(token)
			}
		}
	}

	return keywords
}

// splitDescription splits on any run of characters other than letters,
// digits and '+', so tokens like "c++" survive.
func splitDescription(description string) []string {
	return strings.FieldsFunc(description, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r == '+':
			return false
		}
		return true
	})
}
