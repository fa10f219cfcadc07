// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

// RecommendationItem is one recommended movie with its similarity score and
// human-readable reasons derived from the user's taste profile.
type RecommendationItem struct {
	Movie   Movie    `json:"movie"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}
