package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileHighScore keeps a single best score in a 4-byte little-endian file
// with no header.
type FileHighScore struct {
	Path string
}

// NewFileHighScore returns a file gateway, expanding a leading ~.
func NewFileHighScore(path string) (*FileHighScore, error) {
	p, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileHighScore{Path: p}, nil
}

// LoadHighScore reads the stored value. A missing file is a best of 0.
func (f *FileHighScore) LoadHighScore() (uint32, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: read %s: %w", f.Path, err)
	}
	if len(data) < 4 {
		return 0, fmt.Errorf("storage: %s: short high score file (%d bytes)", f.Path, len(data))
	}
	return binary.LittleEndian.Uint32(data), nil
}

// SaveHighScore writes the value through a temporary file and a rename.
func (f *FileHighScore) SaveHighScore(v uint32) error {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, buf[:], 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("storage: rename %s: %w", tmp, err)
	}
	return nil
}
