// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Encode converts a movie catalog into a sparse TF-IDF feature matrix and a
// parallel array of movie IDs, one row per input record in input order.
//
// Each of the four metadata fields becomes an independently built block:
// genres and keywords are comma-tokenized, the language code is a single
// token, and the release decade is a synthetic token ("1990", or
// UnknownDecadeToken when the date cannot be parsed). Every block is TF-IDF
// weighted, L2-normalized per row, scaled by its block weight, and the
// blocks are concatenated left to right.
//
// Encoding is fully deterministic: vocabularies are sorted alphabetically
// (the keyword vocabulary is first capped to MaxKeywordTerms by document
// frequency, ties broken by first appearance in the catalog), so identical
// input always produces an identical matrix.
//
// Duplicate movie IDs are rejected; the engine's ID lookup requires the
// row-to-ID mapping to be a bijection.
func Encode(catalog []MovieRecord) (*Matrix, []int64, error) {
	ids := make([]int64, len(catalog))
	seen := make(map[int64]struct{}, len(catalog))
	for i, rec := range catalog {
		if _, dup := seen[rec.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate movie ID %d at record %d", rec.ID, i)
		}
		seen[rec.ID] = struct{}{}
		ids[i] = rec.ID
	}

	n := len(catalog)
	genreDocs := make([][]string, n)
	keywordDocs := make([][]string, n)
	langDocs := make([][]string, n)
	decadeDocs := make([][]string, n)
	for i, rec := range catalog {
		genreDocs[i] = tokenizeList(rec.Genres)
		keywordDocs[i] = tokenizeList(rec.Keywords)
		if lang := strings.ToLower(strings.TrimSpace(rec.OriginalLanguage)); lang != "" {
			langDocs[i] = []string{lang}
		}
		decadeDocs[i] = []string{decadeToken(rec.ReleaseDate)}
	}

	// The unknown-decade token is excluded from the vocabulary: movies with
	// no parseable date get an all-zero decade block instead of clustering
	// on a sentinel, keeping metadata-free records at zero similarity.
	decadeVocab := fullVocabulary(decadeDocs)
	decadeVocab = withoutTerm(decadeVocab, UnknownDecadeToken)

	blocks := []*featureBlock{
		buildBlock(genreDocs, fullVocabulary(genreDocs), GenreWeight),
		buildBlock(keywordDocs, cappedVocabulary(keywordDocs, MaxKeywordTerms), KeywordWeight),
		buildBlock(langDocs, fullVocabulary(langDocs), LanguageWeight),
		buildBlock(decadeDocs, decadeVocab, DecadeWeight),
	}

	var totalCols int
	for _, b := range blocks {
		totalCols += b.cols
	}

	entries := make([][]rowEntry, n)
	var offset int32
	for _, b := range blocks {
		for i := 0; i < n; i++ {
			for _, e := range b.entries[i] {
				entries[i] = append(entries[i], rowEntry{col: e.col + offset, val: e.val})
			}
		}
		offset += int32(b.cols)
	}

	return NewMatrix(n, totalCols, entries), ids, nil
}

// featureBlock holds one block's column count and per-row entries with
// block-relative column indices.
type featureBlock struct {
	cols    int
	entries [][]rowEntry
}

// buildBlock computes TF-IDF entries for one block. Term frequency is the
// raw in-document count; IDF uses the smoothed form ln((1+N)/(1+df)) + 1.
// Each row is L2-normalized within the block and then scaled by weight, so
// the block weight sets the row's contribution to the concatenated vector.
func buildBlock(docs [][]string, vocab []string, weight float64) *featureBlock {
	index := make(map[string]int32, len(vocab))
	for i, term := range vocab {
		index[term] = int32(i)
	}

	df := make([]int, len(vocab))
	for _, doc := range docs {
		inDoc := make(map[int32]struct{}, len(doc))
		for _, term := range doc {
			if col, ok := index[term]; ok {
				inDoc[col] = struct{}{}
			}
		}
		for col := range inDoc {
			df[col]++
		}
	}

	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	block := &featureBlock{
		cols:    len(vocab),
		entries: make([][]rowEntry, len(docs)),
	}
	for i, doc := range docs {
		counts := make(map[int32]float64, len(doc))
		for _, term := range doc {
			if col, ok := index[term]; ok {
				counts[col]++
			}
		}
		if len(counts) == 0 {
			continue
		}
		row := make([]rowEntry, 0, len(counts))
		var norm float64
		for col, tf := range counts {
			v := tf * idf[col]
			row = append(row, rowEntry{col: col, val: v})
			norm += v * v
		}
		norm = math.Sqrt(norm)
		for k := range row {
			row[k].val = row[k].val / norm * weight
		}
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
		block.entries[i] = row
	}
	return block
}

// withoutTerm removes term from a sorted vocabulary if present.
func withoutTerm(vocab []string, term string) []string {
	out := vocab[:0]
	for _, t := range vocab {
		if t != term {
			out = append(out, t)
		}
	}
	return out
}

// fullVocabulary returns all distinct terms across docs, sorted.
func fullVocabulary(docs [][]string) []string {
	set := make(map[string]struct{})
	for _, doc := range docs {
		for _, term := range doc {
			set[term] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(set))
	for term := range set {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	return vocab
}

// cappedVocabulary selects at most limit terms by document frequency,
// breaking ties by first appearance in the catalog, then sorts the selected
// terms alphabetically for a stable column order.
func cappedVocabulary(docs [][]string, limit int) []string {
	type termStat struct {
		term      string
		df        int
		firstSeen int
	}
	stats := make(map[string]*termStat)
	order := 0
	for _, doc := range docs {
		inDoc := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := inDoc[term]; ok {
				continue
			}
			inDoc[term] = struct{}{}
			s, ok := stats[term]
			if !ok {
				s = &termStat{term: term, firstSeen: order}
				stats[term] = s
				order++
			}
			s.df++
		}
	}

	all := make([]*termStat, 0, len(stats))
	for _, s := range stats {
		all = append(all, s)
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].df != all[b].df {
			return all[a].df > all[b].df
		}
		return all[a].firstSeen < all[b].firstSeen
	})
	if len(all) > limit {
		all = all[:limit]
	}

	vocab := make([]string, len(all))
	for i, s := range all {
		vocab[i] = s.term
	}
	sort.Strings(vocab)
	return vocab
}

// tokenizeList splits a comma-separated field into stripped, lower-cased
// tokens, dropping empties.
func tokenizeList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// decadeToken derives the release-decade token from a date string by its
// 4-digit year prefix. Missing or unparseable dates map to
// UnknownDecadeToken.
func decadeToken(releaseDate string) string {
	year, ok := parseYear(releaseDate)
	if !ok {
		return UnknownDecadeToken
	}
	return strconv.Itoa(year / 10 * 10)
}

// parseYear extracts the 4-digit year prefix of a date string.
func parseYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
