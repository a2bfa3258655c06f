package match

import (
	"strings"
	"unicode"
)

// Binary/image signatures sniffed in the head of the résumé text.
var suspiciousSignatures = []string{"data:image", "jfif", "png", "gif89a", "riff", "webp", "<svg"}

// GuardPolicy holds the thresholds used to flag content that is unlikely to
// be a résumé. The values are heuristic policy, not guaranteed-correct
// detection; callers may tune them.
type GuardPolicy struct {
	// MaxSampleSize caps how much of the text is inspected.
	MaxSampleSize int
	// MinLetterRatio is the minimum fraction of letter runes in the sample.
	MinLetterRatio float64
	// MaxNonTextRatio is the maximum fraction of control/replacement runes.
	MaxNonTextRatio float64
	// MinWordCount is the minimum number of whitespace-separated words.
	MinWordCount int
}

// DefaultGuardPolicy returns the thresholds used in production.
func DefaultGuardPolicy() GuardPolicy {
	return GuardPolicy{
		MaxSampleSize:   4000,
		MinLetterRatio:  0.1,
		MaxNonTextRatio: 0.08,
		MinWordCount:    20,
	}
}

// LikelyInvalidResume reports whether the Markdown content looks like
// something other than a textual résumé: empty input, binary/image
// signatures, too few letters, too many control characters, or too few
// words to carry any career information.
func (p GuardPolicy) LikelyInvalidResume(markdown string) bool {
	trimmed := strings.TrimSpace(markdown)
	if trimmed == "" {
		return true
	}

	sample := []rune(trimmed)
	if len(sample) > p.MaxSampleSize {
		sample = sample[:p.MaxSampleSize]
	}

	if hasSuspiciousSignature(sample) {
		return true
	}

	letters, nonText := 0, 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letters++
		}
		if isNonTextRune(r) {
			nonText++
		}
	}

	total := float64(len(sample))
	if float64(letters)/total < p.MinLetterRatio {
		return true
	}
	if float64(nonText)/total > p.MaxNonTextRatio {
		return true
	}

	return len(strings.Fields(trimmed)) < p.MinWordCount
}

func hasSuspiciousSignature(sample []rune) bool {
	head := sample
	if len(head) > 256 {
		head = head[:256]
	}
	lowered := strings.ToLower(string(head))
	for _, signature := range suspiciousSignatures {
		if strings.Contains(lowered, signature) {
			return true
		}
	}
	return false
}

func isNonTextRune(r rune) bool {
	return r == 0 || r == unicode.ReplacementChar || r < 0x09 || (r > 0x0d && r < 0x20)
}
