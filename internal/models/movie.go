// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

// Movie is one catalog row. Genres and Keywords are comma-separated lists,
// kept in the raw CSV form the feature encoder tokenizes.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Genres           string  `json:"genres"`
	Keywords         string  `json:"keywords"`
	OriginalLanguage string  `json:"original_language"`
	ReleaseDate      string  `json:"release_date"`
	Overview         string  `json:"overview"`
	Runtime          int     `json:"runtime"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
}

// MovieSearchParams are the parsed query parameters of GET /movies.
type MovieSearchParams struct {
	Query  string `validate:"omitempty,max=200"`
	Genre  string `validate:"omitempty,max=50"`
	Sort   string `validate:"omitempty,oneof=popularity rating date"`
	Limit  int    `validate:"min=1,max=100"`
	Offset int    `validate:"min=0"`
}
