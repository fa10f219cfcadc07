// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// On-disk containers for the feature matrix and the movie-ID index.
//
// Both files are little-endian binary with a 4-byte magic and a version
// byte, so a truncated or foreign file fails fast at load instead of
// producing a silently corrupt engine. Writes go through a temp file and
// rename so a crash mid-write never clobbers the previous snapshot.

var (
	matrixMagic = [4]byte{'F', 'M', 'T', 'X'}
	idsMagic    = [4]byte{'F', 'I', 'D', 'X'}
)

const containerVersion = 1

// SaveMatrix writes the CSR matrix to path atomically.
func SaveMatrix(m *Matrix, path string) error {
	return atomicWrite(path, func(w io.Writer) error {
		if _, err := w.Write(matrixMagic[:]); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint8(containerVersion)); err != nil {
			return err
		}
		header := []int64{int64(m.Rows), int64(m.Cols), int64(len(m.Values))}
		if err := binary.Write(w, binary.LittleEndian, header); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, m.RowPtr); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, m.ColIdx); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, m.Values)
	})
}

// LoadMatrix reads a CSR matrix written by SaveMatrix and validates its
// structural invariants.
func LoadMatrix(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix file: %w", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	if err := readHeader(r, matrixMagic); err != nil {
		return nil, fmt.Errorf("matrix file %s: %w", path, err)
	}
	var header [3]int64
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("matrix file %s: read dimensions: %w", path, err)
	}
	rows, cols, nnz := header[0], header[1], header[2]
	if rows < 0 || cols < 0 || nnz < 0 {
		return nil, fmt.Errorf("matrix file %s: invalid dimensions %dx%d nnz=%d", path, rows, cols, nnz)
	}

	m := &Matrix{
		Rows:   int(rows),
		Cols:   int(cols),
		RowPtr: make([]int64, rows+1),
		ColIdx: make([]int32, nnz),
		Values: make([]float64, nnz),
	}
	if err := binary.Read(r, binary.LittleEndian, m.RowPtr); err != nil {
		return nil, fmt.Errorf("matrix file %s: read row pointers: %w", path, err)
	}
	if err := binary.Read(r, binary.LittleEndian, m.ColIdx); err != nil {
		return nil, fmt.Errorf("matrix file %s: read column indices: %w", path, err)
	}
	if err := binary.Read(r, binary.LittleEndian, m.Values); err != nil {
		return nil, fmt.Errorf("matrix file %s: read values: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("matrix file %s: %w", path, err)
	}
	return m, nil
}

// SaveIDIndex writes the row-ordered movie ID array to path atomically.
func SaveIDIndex(ids []int64, path string) error {
	return atomicWrite(path, func(w io.Writer) error {
		if _, err := w.Write(idsMagic[:]); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint8(containerVersion)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int64(len(ids))); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, ids)
	})
}

// LoadIDIndex reads a movie ID array written by SaveIDIndex.
func LoadIDIndex(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ID index file: %w", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	if err := readHeader(r, idsMagic); err != nil {
		return nil, fmt.Errorf("ID index file %s: %w", path, err)
	}
	var count int64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("ID index file %s: read count: %w", path, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("ID index file %s: invalid count %d", path, count)
	}
	ids := make([]int64, count)
	if err := binary.Read(r, binary.LittleEndian, ids); err != nil {
		return nil, fmt.Errorf("ID index file %s: read IDs: %w", path, err)
	}
	return ids, nil
}

// readHeader consumes and checks a container magic and version byte.
func readHeader(r io.Reader, magic [4]byte) error {
	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if got != magic {
		return fmt.Errorf("bad magic %q, want %q", got, magic)
	}
	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	if version != containerVersion {
		return fmt.Errorf("unsupported container version %d", version)
	}
	return nil
}

// atomicWrite writes via a temp file in the target directory and renames
// into place, so readers never observe a partially written container.
func atomicWrite(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := write(w); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
