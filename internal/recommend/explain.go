// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Explain produces human-readable reasons why a candidate movie matches the
// user's taste profile. Signals are evaluated in a fixed order (genres,
// keywords, language, era), each contributing at most one reason; if nothing
// fires, a single generic fallback reason is returned, so the list is never
// empty. All matching is case-insensitive and malformed release dates simply
// skip the era check.
func (e *Engine) Explain(genres, keywords, language, releaseDate string, profile TasteProfile) []string {
	reasons := make([]string, 0, 4)

	if shared := sharedTokens(genres, profile.TopGenres); len(shared) > 0 {
		reasons = append(reasons, "Similar genres: "+joinTitled(shared, len(shared)))
	}

	if shared := sharedTokens(keywords, profile.TopKeywords); len(shared) > 0 {
		reasons = append(reasons, "Shared themes: "+joinTitled(shared, 3))
	}

	if lang := strings.ToLower(strings.TrimSpace(language)); lang != "" {
		for _, l := range profile.TopLanguages {
			if strings.ToLower(l) == lang {
				reasons = append(reasons, "Same language: "+languageDisplayName(lang))
				break
			}
		}
	}

	if year, ok := parseYear(releaseDate); ok {
		decade := year / 10 * 10
		withSuffix := fmt.Sprintf("%ds", decade)
		bare := strconv.Itoa(decade)
		for _, d := range profile.TopDecades {
			if d == withSuffix || d == bare {
				reasons = append(reasons, "Same era: "+withSuffix)
				break
			}
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Based on your overall taste profile")
	}
	return reasons
}

// sharedTokens intersects a comma-separated candidate field with the user's
// top list, case-insensitively, returning the shared tokens sorted
// alphabetically.
func sharedTokens(field string, top []string) []string {
	if field == "" || len(top) == 0 {
		return nil
	}
	topSet := make(map[string]struct{}, len(top))
	for _, t := range top {
		topSet[strings.ToLower(t)] = struct{}{}
	}
	sharedSet := make(map[string]struct{})
	for _, token := range tokenizeList(field) {
		if _, ok := topSet[token]; ok {
			sharedSet[token] = struct{}{}
		}
	}
	if len(sharedSet) == 0 {
		return nil
	}
	shared := make([]string, 0, len(sharedSet))
	for t := range sharedSet {
		shared = append(shared, t)
	}
	sort.Strings(shared)
	return shared
}

// joinTitled title-cases up to max tokens and joins them with commas.
func joinTitled(tokens []string, max int) string {
	if len(tokens) > max {
		tokens = tokens[:max]
	}
	titled := make([]string, len(tokens))
	for i, t := range tokens {
		titled[i] = titleCase(t)
	}
	return strings.Join(titled, ", ")
}

// titleCase upper-cases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// languageDisplayName resolves a lower-cased language code to a display
// name, falling back to the upper-cased code.
func languageDisplayName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}
