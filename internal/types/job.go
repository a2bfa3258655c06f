// Package types provides the data model shared across the resume-match service.
package types

import (
	"encoding/json"
	"fmt"
)

// RequirementItem is either a plain skill string or a {language, level}
// pair, mirroring both shapes accepted on the wire.
type RequirementItem struct {
	Name     string
	Language string
	Level    string
}

// String renders the item the way the keyword extractor consumes it.
func (r RequirementItem) String() string {
	if r.Language != "" {
		return fmt.Sprintf("%s (%s)", r.Language, r.Level)
	}
	return r.Name
}

// UnmarshalJSON accepts either a JSON string or a {language, level} object.
func (r *RequirementItem) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.Name = name
		return nil
	}

	var pair struct {
		Language string `json:"language"`
		Level    string `json:"level"`
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("requirement item must be a string or a {language, level} object: %w", err)
	}
	r.Language = pair.Language
	r.Level = pair.Level
	return nil
}

// MarshalJSON writes the item back in its original shape.
func (r RequirementItem) MarshalJSON() ([]byte, error) {
	if r.Language != "" {
		return json.Marshal(struct {
			Language string `json:"language"`
			Level    string `json:"level"`
		}{r.Language, r.Level})
	}
	return json.Marshal(r.Name)
}

// RequirementGroup is a labeled, non-empty set of requirement items.
type RequirementGroup struct {
	Category string            `json:"category"`
	Items    []RequirementItem `json:"items"`
}

// Requirements splits requirement groups into mandatory and desirable.
type Requirements struct {
	Mandatory []RequirementGroup `json:"mandatory,omitempty"`
	Desirable []RequirementGroup `json:"desirable,omitempty"`
}

// Job is a structured job description. The schema is open: fields the
// matching logic does not interpret are preserved verbatim in Extra and
// round-trip through serialization.
type Job struct {
	ID               string
	Title            string
	Description      string
	Responsibilities []string
	Keywords         []string
	Requirements     *Requirements
	Extra            map[string]json.RawMessage
}

// knownJobFields are the keys lifted out of the raw object; everything
// else lands in Extra.
var knownJobFields = map[string]struct{}{
	"id":               {},
	"title":            {},
	"description":      {},
	"responsibilities": {},
	"keywords":         {},
	"requirements":     {},
}

// UnmarshalJSON decodes the known fields and stashes unknown ones in Extra.
func (j *Job) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("job must be a JSON object: %w", err)
	}

	type known struct {
		ID               string        `json:"id"`
		Title            string        `json:"title"`
		Description      string        `json:"description"`
		Responsibilities []string      `json:"responsibilities"`
		Keywords         []string      `json:"keywords"`
		Requirements     *Requirements `json:"requirements"`
	}
	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}

	j.ID = k.ID
	j.Title = k.Title
	j.Description = k.Description
	j.Responsibilities = k.Responsibilities
	j.Keywords = k.Keywords
	j.Requirements = k.Requirements

	j.Extra = nil
	for key, value := range raw {
		if _, ok := knownJobFields[key]; ok {
			continue
		}
		if j.Extra == nil {
			j.Extra = make(map[string]json.RawMessage)
		}
		j.Extra[key] = value
	}
	return nil
}

// MarshalJSON emits the known fields alongside the preserved extras.
func (j Job) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(j.Extra)+6)
	for key, value := range j.Extra {
		out[key] = value
	}

	put := func(key string, value any) error {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		out[key] = encoded
		return nil
	}

	if err := put("id", j.ID); err != nil {
		return nil, err
	}
	if err := put("title", j.Title); err != nil {
		return nil, err
	}
	if j.Description != "" {
		if err := put("description", j.Description); err != nil {
			return nil, err
		}
	}
	if j.Responsibilities != nil {
		if err := put("responsibilities", j.Responsibilities); err != nil {
			return nil, err
		}
	}
	if j.Keywords != nil {
		if err := put("keywords", j.Keywords); err != nil {
			return nil, err
		}
	}
	if j.Requirements != nil {
		if err := put("requirements", j.Requirements); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

// ParseJob decodes and validates an incoming job payload. Validation
// failures are reported as a *ValidationError listing every issue found.
func ParseJob(data json.RawMessage) (*Job, error) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, &ValidationError{Issues: []Issue{{Path: "job", Message: err.Error()}}}
	}

	var issues []Issue
	if job.ID == "" {
		issues = append(issues, Issue{Path: "job.id", Message: "id is required"})
	}
	if job.Title == "" {
		issues = append(issues, Issue{Path: "job.title", Message: "title is required"})
	}
	if job.Requirements != nil {
		issues = append(issues, validateGroups("job.requirements.mandatory", job.Requirements.Mandatory)...)
		issues = append(issues, validateGroups("job.requirements.desirable", job.Requirements.Desirable)...)
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return &job, nil
}

func validateGroups(path string, groups []RequirementGroup) []Issue {
	var issues []Issue
	for i, group := range groups {
		if group.Category == "" {
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("%s[%d].category", path, i),
				Message: "category is required",
			})
		}
		if len(group.Items) == 0 {
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("%s[%d].items", path, i),
				Message: "requirement group must not be empty",
			})
			continue
		}
		for k, item := range group.Items {
			if item.Name == "" && item.Language == "" {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s[%d].items[%d]", path, i, k),
					Message: "requirement item must not be empty",
				})
			}
		}
	}
	return issues
}
