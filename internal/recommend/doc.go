// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package recommend implements the content-based recommendation core.
//
// # Architecture
//
// The package has two halves, loaded in dependency order:
//
//   - Feature Encoder (offline): converts the movie catalog into a sparse
//     TF-IDF feature matrix of four weighted blocks (genres, keywords,
//     original language, release decade), plus a parallel movie-ID index.
//   - Engine (online): loads the persisted matrix once at startup and serves
//     read-only Recommend and Explain calls for the process lifetime.
//
// # Design Principles
//
//   - Deterministic: encoding the same catalog twice yields identical matrices
//   - Immutable: the loaded matrix and ID index never change; a new snapshot
//     requires a process restart
//   - Graceful degradation: unknown movie IDs, degenerate rating weights, and
//     malformed release dates all fall back to defined behavior instead of
//     returning errors
//
// # Usage
//
//	matrix, ids, err := recommend.Encode(catalog)
//	// persist with SaveMatrix / SaveIDIndex ...
//
//	engine, err := recommend.NewEngine(matrixPath, idsPath, logger)
//	recs := engine.Recommend(watchedIDs, ratings, excludeIDs, 20)
//	reasons := engine.Explain(genres, keywords, lang, date, profile)
//
// # Thread Safety
//
// The Engine is safe for unlimited concurrent use: every call works on the
// shared immutable matrix and allocates its own per-request state. No locks
// are taken on the query path.
package recommend
