// Package addons detects keyword-triggered optional extras in free-text
// project descriptions.
//
// This is a bounded heuristic, not language understanding: a detection is
// a case-insensitive, word-boundary keyword hit, suppressed when a
// negation marker appears within a fixed window of preceding words or
// when the text as a whole opts out via a suppressor phrase. The window
// size, markers, and phrases below are the tunables.
package addons

import (
	"regexp"
	"strings"

	"quote-pricing/core/types"
)

// negationWindow is how many words before a keyword hit are inspected
// for a negation marker.
const negationWindow = 3

// negationMarkers suppress a keyword hit they immediately precede.
var negationMarkers = map[string]bool{
	"no":      true,
	"don't":   true,
	"dont":    true,
	"not":     true,
	"without": true,
	"skip":    true,
}

// suppressorPhrases disable add-on detection for the whole description.
var suppressorPhrases = []string{
	"no extras",
	"no add-ons",
	"no addons",
	"budget only",
	"keep it simple",
	"nothing extra",
}

// Match is one detected, non-suppressed add-on
type Match struct {
	// Addon is the matched add-on configuration
	Addon types.Addon

	// Keyword is the trigger keyword that matched
	Keyword string
}

// Detect scans a project description for each add-on's trigger keywords.
// An absent description or a suppressor phrase yields no matches; each
// add-on matches at most once.
func Detect(text string, addons []types.Addon) []Match {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)
	for _, phrase := range suppressorPhrases {
		if strings.Contains(lower, phrase) {
			return nil
		}
	}

	var matches []Match
	for _, addon := range addons {
		if kw, ok := matchAddon(lower, addon); ok {
			matches = append(matches, Match{Addon: addon, Keyword: kw})
		}
	}
	return matches
}

// matchAddon returns the first keyword with a non-negated hit
func matchAddon(lower string, addon types.Addon) (string, bool) {
	for _, kw := range addon.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		idx, ok := findWord(lower, kw)
		if !ok {
			continue
		}
		if negatedBefore(lower[:idx]) {
			continue
		}
		return kw, true
	}
	return "", false
}

// findWord locates keyword in text with word-boundary matching
func findWord(text, keyword string) (int, bool) {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		return 0, false
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

// negatedBefore reports whether any of the last negationWindow words of
// the prefix is a negation marker.
func negatedBefore(prefix string) bool {
	words := strings.Fields(prefix)
	start := len(words) - negationWindow
	if start < 0 {
		start = 0
	}
	for _, w := range words[start:] {
		w = strings.Trim(w, ",.;:!?()\"'")
		if negationMarkers[strings.ToLower(w)] {
			return true
		}
	}
	return false
}
