// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"strings"
	"testing"
)

func explainTestEngine(t *testing.T) *Engine {
	t.Helper()
	return newTestEngine(t, genreCatalog())
}

func TestExplain(t *testing.T) {
	profile := TasteProfile{
		TopGenres:    []string{"action", "Drama"},
		TopKeywords:  []string{"heist", "revenge", "noir", "betrayal"},
		TopLanguages: []string{"en", "ja"},
		TopDecades:   []string{"1990s", "2010"},
	}

	tests := []struct {
		name        string
		genres      string
		keywords    string
		language    string
		releaseDate string
		want        []string
	}{
		{
			name:   "genre overlap case-insensitive and sorted",
			genres: "Drama,ACTION,Comedy",
			want:   []string{"Similar genres: Action, Drama"},
		},
		{
			name:     "keyword overlap capped at three",
			keywords: "revenge, noir, heist, betrayal",
			want:     []string{"Shared themes: Betrayal, Heist, Noir"},
		},
		{
			name:     "language match uses display name",
			language: "EN",
			want:     []string{"Same language: English"},
		},
		{
			name:        "era match on suffixed decade",
			releaseDate: "1994-07-06",
			want:        []string{"Same era: 1990s"},
		},
		{
			name:        "era match on bare decade form",
			releaseDate: "2015-01-01",
			want:        []string{"Same era: 2010s"},
		},
		{
			name: "no overlap yields exactly the fallback",
			want: []string{"Based on your overall taste profile"},
		},
		{
			name:        "malformed date skips era check",
			releaseDate: "sometime in the 90s",
			want:        []string{"Based on your overall taste profile"},
		},
		{
			name:        "all signals fire in fixed order",
			genres:      "action",
			keywords:    "heist",
			language:    "en",
			releaseDate: "1999-12-31",
			want: []string{
				"Similar genres: Action",
				"Shared themes: Heist",
				"Same language: English",
				"Same era: 1990s",
			},
		},
	}

	engine := explainTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Explain(tt.genres, tt.keywords, tt.language, tt.releaseDate, profile)
			if len(got) == 0 {
				t.Fatal("Explain() returned empty reason list")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Explain() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Explain()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExplain_UnknownLanguageFallsBackToCode(t *testing.T) {
	engine := explainTestEngine(t)
	profile := TasteProfile{TopLanguages: []string{"sv"}}

	got := engine.Explain("", "", "sv", "", profile)
	if len(got) != 1 || !strings.HasSuffix(got[0], "SV") {
		t.Errorf("Explain() = %v, want language reason ending in upper-cased code SV", got)
	}
}

func TestBuildTasteProfile(t *testing.T) {
	watched := []MovieRecord{
		{Genres: "Action, Drama", Keywords: "heist", OriginalLanguage: "en", ReleaseDate: "1995-06-01"},
		{Genres: "Action", Keywords: "revenge, heist", OriginalLanguage: "en", ReleaseDate: "1999-01-15"},
		{Genres: "Comedy", Keywords: "wedding", OriginalLanguage: "fr", ReleaseDate: "2004-11-20"},
		{Genres: "", Keywords: "", OriginalLanguage: "", ReleaseDate: "not a date"},
	}

	profile := BuildTasteProfile(watched)

	if len(profile.TopGenres) == 0 || profile.TopGenres[0] != "Action" {
		t.Errorf("TopGenres = %v, want Action first", profile.TopGenres)
	}
	if len(profile.TopKeywords) == 0 || profile.TopKeywords[0] != "heist" {
		t.Errorf("TopKeywords = %v, want heist first", profile.TopKeywords)
	}
	if len(profile.TopLanguages) == 0 || profile.TopLanguages[0] != "en" {
		t.Errorf("TopLanguages = %v, want en first", profile.TopLanguages)
	}
	if len(profile.TopDecades) == 0 || profile.TopDecades[0] != "1990s" {
		t.Errorf("TopDecades = %v, want 1990s first", profile.TopDecades)
	}
}

func TestBuildTasteProfile_Empty(t *testing.T) {
	profile := BuildTasteProfile(nil)
	if len(profile.TopGenres) != 0 || len(profile.TopKeywords) != 0 ||
		len(profile.TopLanguages) != 0 || len(profile.TopDecades) != 0 {
		t.Errorf("BuildTasteProfile(nil) = %+v, want all lists empty", profile)
	}
}
