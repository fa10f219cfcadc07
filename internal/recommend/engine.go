// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Engine serves recommendations against a feature matrix loaded once at
// startup. All fields are immutable after NewEngine returns, so the engine
// is safe for unlimited concurrent use without locking.
type Engine struct {
	matrix   *Matrix
	ids      []int64
	rowByID  map[int64]int
	rowNorms []float64
	logger   zerolog.Logger
}

// NewEngine loads the persisted feature matrix and movie-ID index and builds
// the inverted ID-to-row mapping. It returns an error when either file is
// missing or corrupt, or when the matrix row count disagrees with the ID
// index length; the caller treats that as fatal since every query depends on
// this state and there is no degraded mode.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(matrixPath, idsPath string, logger zerolog.Logger) (*Engine, error) {
	matrix, err := LoadMatrix(matrixPath)
	if err != nil {
		return nil, fmt.Errorf("load feature matrix: %w", err)
	}
	ids, err := LoadIDIndex(idsPath)
	if err != nil {
		return nil, fmt.Errorf("load movie ID index: %w", err)
	}
	if matrix.Rows != len(ids) {
		return nil, fmt.Errorf("feature matrix has %d rows but ID index has %d entries", matrix.Rows, len(ids))
	}

	rowByID := make(map[int64]int, len(ids))
	for i, id := range ids {
		if _, dup := rowByID[id]; dup {
			return nil, fmt.Errorf("duplicate movie ID %d in index", id)
		}
		rowByID[id] = i
	}

	rowNorms := make([]float64, matrix.Rows)
	for i := range rowNorms {
		rowNorms[i] = matrix.RowNorm(i)
	}

	e := &Engine{
		matrix:   matrix,
		ids:      ids,
		rowByID:  rowByID,
		rowNorms: rowNorms,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
	e.logger.Info().
		Int("movies", matrix.Rows).
		Int("features", matrix.Cols).
		Int("nnz", matrix.NNZ()).
		Msg("recommendation engine loaded")
	return e, nil
}

// Size returns the loaded matrix dimensions (movies, features).
func (e *Engine) Size() (rows, cols int) {
	return e.matrix.Rows, e.matrix.Cols
}

// Recommend ranks unseen catalog movies for a user by cosine similarity
// against a rating-weighted profile vector built from the watched history.
//
// Watched IDs absent from the catalog are silently dropped (normal catalog
// drift); if none resolve the result is empty, signaling insufficient data
// rather than an error. Ratings are normalized to [0,1] via (r-1)/9; if all
// weights come out zero the profile falls back to uniform weights so it is
// never degenerate. Movies in excludeIDs have their score forced to zero
// before ranking, which both removes them from output and keeps them from
// truncating the result list.
//
// Results are sorted by score descending, ties broken by ascending matrix
// row order, and emission stops at the first non-positive score even if that
// yields fewer than limit items. Scores are rounded to 4 decimal places.
func (e *Engine) Recommend(watchedIDs []int64, ratings []int, excludeIDs map[int64]struct{}, limit int) []Recommendation {
	if limit <= 0 || len(watchedIDs) == 0 || e.matrix.Rows == 0 {
		return []Recommendation{}
	}

	n := len(watchedIDs)
	if len(ratings) < n {
		n = len(ratings)
	}
	rows := make([]int, 0, n)
	weights := make([]float64, 0, n)
	var weightSum float64
	for i := 0; i < n; i++ {
		row, ok := e.rowByID[watchedIDs[i]]
		if !ok {
			continue
		}
		w := float64(ratings[i]-1) / 9.0
		rows = append(rows, row)
		weights = append(weights, w)
		weightSum += w
	}
	if len(rows) == 0 {
		return []Recommendation{}
	}
	if weightSum == 0 {
		for i := range weights {
			weights[i] = 1
		}
		weightSum = float64(len(weights))
	}

	profile := make([]float64, e.matrix.Cols)
	for i, row := range rows {
		e.matrix.AddScaledRow(profile, row, weights[i]/weightSum)
	}
	var profileNorm float64
	for _, v := range profile {
		profileNorm += v * v
	}
	profileNorm = math.Sqrt(profileNorm)

	scores := make([]float64, e.matrix.Rows)
	if profileNorm > 0 {
		for row := 0; row < e.matrix.Rows; row++ {
			if e.rowNorms[row] == 0 {
				continue
			}
			scores[row] = e.matrix.DotRow(profile, row) / (profileNorm * e.rowNorms[row])
		}
	}
	for id := range excludeIDs {
		if row, ok := e.rowByID[id]; ok {
			scores[row] = 0
		}
	}

	order := make([]int, e.matrix.Rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	results := make([]Recommendation, 0, limit)
	for _, row := range order {
		if len(results) == limit {
			break
		}
		if scores[row] <= 0 {
			break
		}
		results = append(results, Recommendation{
			MovieID: e.ids[row],
			Score:   math.Round(scores[row]*10000) / 10000,
		})
	}
	return results
}
