// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

// GenreStat is one row of GET /analytics/genres: how often a genre appears
// in the user's history and how they rated it.
type GenreStat struct {
	Genre     string  `json:"genre"`
	Count     int64   `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

// TimelineBucket is one row of GET /analytics/timeline, grouped by month of
// the watched date ("2026-08").
type TimelineBucket struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// RatingBucket is one row of GET /analytics/ratings.
type RatingBucket struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// LanguageStat is one row of GET /analytics/languages.
type LanguageStat struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}
