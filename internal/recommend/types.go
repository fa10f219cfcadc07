// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

// Feature block weights. Each TF-IDF block is scaled by its weight after
// per-row normalization, so the weights control the relative contribution of
// each metadata field to the cosine score.
const (
	GenreWeight    = 3.0
	KeywordWeight  = 2.0
	LanguageWeight = 2.0
	DecadeWeight   = 1.5
)

// MaxKeywordTerms caps the keyword vocabulary to the highest-frequency terms.
// Keywords are free text; without a cap the block would dominate the matrix
// column count for no ranking benefit.
const MaxKeywordTerms = 5000

// UnknownDecadeToken is the synthetic decade assigned to movies whose release
// date is missing or unparseable. The encoder keeps it out of the decade
// vocabulary, so unknown-era movies contribute nothing to the decade block
// rather than clustering on a sentinel.
const UnknownDecadeToken = "0"

// MovieRecord is one catalog entry as consumed by the encoder. Genres and
// Keywords are comma-separated lists; any field may be empty.
type MovieRecord struct {
	ID               int64
	Genres           string
	Keywords         string
	OriginalLanguage string
	ReleaseDate      string
}

// Recommendation is one ranked result: a catalog movie ID and its cosine
// similarity to the user's profile vector, rounded to 4 decimal places.
type Recommendation struct {
	MovieID int64   `json:"movie_id"`
	Score   float64 `json:"score"`
}

// TasteProfile summarizes a user's watch history for explanation purposes.
// It is independent of the numeric scoring vector: the lists hold raw
// metadata tokens ranked by how often they appear in the user's history.
type TasteProfile struct {
	TopGenres    []string
	TopKeywords  []string
	TopLanguages []string
	TopDecades   []string
}

// languageNames maps ISO 639-1 codes to display names for explanation text.
// Unrecognized codes fall back to the upper-cased code itself.
var languageNames = map[string]string{
	"en": "English",
	"fr": "French",
	"es": "Spanish",
	"de": "German",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"hi": "Hindi",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
}
