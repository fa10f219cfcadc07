// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMatrixRoundTrip(t *testing.T) {
	matrix, ids, err := Encode(testCatalog())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	dir := t.TempDir()
	matrixPath := filepath.Join(dir, "features.bin")
	idsPath := filepath.Join(dir, "movie_ids.bin")

	if err := SaveMatrix(matrix, matrixPath); err != nil {
		t.Fatalf("SaveMatrix() error = %v", err)
	}
	if err := SaveIDIndex(ids, idsPath); err != nil {
		t.Fatalf("SaveIDIndex() error = %v", err)
	}

	loaded, err := LoadMatrix(matrixPath)
	if err != nil {
		t.Fatalf("LoadMatrix() error = %v", err)
	}
	if loaded.Rows != matrix.Rows || loaded.Cols != matrix.Cols {
		t.Errorf("loaded dimensions %dx%d, want %dx%d", loaded.Rows, loaded.Cols, matrix.Rows, matrix.Cols)
	}
	if !reflect.DeepEqual(loaded.RowPtr, matrix.RowPtr) {
		t.Error("row pointers differ after round trip")
	}
	if !reflect.DeepEqual(loaded.ColIdx, matrix.ColIdx) {
		t.Error("column indices differ after round trip")
	}
	if !reflect.DeepEqual(loaded.Values, matrix.Values) {
		t.Error("values differ after round trip (must be bit-identical)")
	}

	loadedIDs, err := LoadIDIndex(idsPath)
	if err != nil {
		t.Fatalf("LoadIDIndex() error = %v", err)
	}
	if !reflect.DeepEqual(loadedIDs, ids) {
		t.Errorf("loaded IDs = %v, want %v", loadedIDs, ids)
	}
}

func TestMatrixRoundTrip_EmptyMatrix(t *testing.T) {
	matrix, ids, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil) error = %v", err)
	}

	dir := t.TempDir()
	matrixPath := filepath.Join(dir, "features.bin")
	idsPath := filepath.Join(dir, "movie_ids.bin")
	if err := SaveMatrix(matrix, matrixPath); err != nil {
		t.Fatalf("SaveMatrix() error = %v", err)
	}
	if err := SaveIDIndex(ids, idsPath); err != nil {
		t.Fatalf("SaveIDIndex() error = %v", err)
	}

	loaded, err := LoadMatrix(matrixPath)
	if err != nil {
		t.Fatalf("LoadMatrix() error = %v", err)
	}
	if loaded.Rows != 0 || loaded.NNZ() != 0 {
		t.Errorf("loaded empty matrix has %d rows, %d entries", loaded.Rows, loaded.NNZ())
	}
	loadedIDs, err := LoadIDIndex(idsPath)
	if err != nil {
		t.Fatalf("LoadIDIndex() error = %v", err)
	}
	if len(loadedIDs) != 0 {
		t.Errorf("loaded ID index length = %d, want 0", len(loadedIDs))
	}
}

func TestLoadMatrix_Corrupt(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content []byte
	}{
		{name: "empty file", content: nil},
		{name: "wrong magic", content: []byte("NOPE\x01garbagegarbage")},
		{name: "truncated header", content: append([]byte("FMTX"), 1, 3, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.bin")
			if err := os.WriteFile(path, tt.content, 0o600); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := LoadMatrix(path); err == nil {
				t.Error("LoadMatrix() should fail on corrupt file")
			}
		})
	}
}

func TestLoadMatrix_WrongVersion(t *testing.T) {
	matrix, _, err := Encode(testCatalog())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "features.bin")
	if err := SaveMatrix(matrix, path); err != nil {
		t.Fatalf("SaveMatrix() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	data[4] = 99 // version byte
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadMatrix(path); err == nil {
		t.Error("LoadMatrix() should reject unknown container version")
	}
}
