// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// How many of each signal the taste profile keeps. Genres and keywords feed
// overlap checks so they run deeper; language and decade are near-binary
// signals where only the strongest few are meaningful.
const (
	topGenreCount    = 10
	topKeywordCount  = 20
	topLanguageCount = 3
	topDecadeCount   = 3
)

// BuildTasteProfile aggregates a user's watched-movie metadata into the
// ranked token lists Explain matches against. Tokens are counted as they
// appear in the catalog (trimmed, original case); ranking is by count
// descending with ties broken by first appearance, so the profile is
// deterministic for a given history order.
func BuildTasteProfile(watched []MovieRecord) TasteProfile {
	genres := newCounter()
	keywords := newCounter()
	languages := newCounter()
	decades := newCounter()

	for _, rec := range watched {
		for _, g := range splitTrimmed(rec.Genres) {
			genres.add(g)
		}
		for _, k := range splitTrimmed(rec.Keywords) {
			keywords.add(k)
		}
		if lang := strings.TrimSpace(rec.OriginalLanguage); lang != "" {
			languages.add(lang)
		}
		if year, ok := parseYear(rec.ReleaseDate); ok {
			decades.add(fmt.Sprintf("%ds", year/10*10))
		}
	}

	return TasteProfile{
		TopGenres:    genres.top(topGenreCount),
		TopKeywords:  keywords.top(topKeywordCount),
		TopLanguages: languages.top(topLanguageCount),
		TopDecades:   decades.top(topDecadeCount),
	}
}

// splitTrimmed splits a comma-separated field into trimmed tokens,
// preserving case (the profile shows tokens as the catalog spells them).
func splitTrimmed(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// counter tallies tokens while remembering insertion order for stable
// tie-breaking.
type counter struct {
	counts map[string]int
	order  map[string]int
	next   int
}

func newCounter() *counter {
	return &counter{
		counts: make(map[string]int),
		order:  make(map[string]int),
	}
}

func (c *counter) add(token string) {
	if _, ok := c.counts[token]; !ok {
		c.order[token] = c.next
		c.next++
	}
	c.counts[token]++
}

// top returns up to n tokens by count descending, first-seen ascending.
func (c *counter) top(n int) []string {
	tokens := make([]string, 0, len(c.counts))
	for t := range c.counts {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(a, b int) bool {
		if c.counts[tokens[a]] != c.counts[tokens[b]] {
			return c.counts[tokens[a]] > c.counts[tokens[b]]
		}
		return c.order[tokens[a]] < c.order[tokens[b]]
	})
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return tokens
}
