package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"nutrilog/internal/persistence/interfaces"
)

var ErrInvalidKey = errors.New("invalid slot key")

// FileSlot keeps every key in its own file under dir.
type FileSlot struct {
	dir        string
	compressor interfaces.CompressorInterface
	mu         sync.Mutex
}

func NewFileSlot(dir string, compressor interfaces.CompressorInterface) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create slot dir %s: %w", dir, err)
	}
	return &FileSlot{dir: dir, compressor: compressor}, nil
}

func (f *FileSlot) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(f.dir, key+".dat"), nil
}

func (f *FileSlot) Get(key string) (string, bool, error) {
	fileName, err := f.path(key)
	if err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return "", false, fmt.Errorf("unable to decompress %s: %w", fileName, err)
	}
	return string(decompressed), true, nil
}

// Set replaces the value through a temp file, fsync and rename, so readers
// see either the old or the new content.
func (f *FileSlot) Set(key, value string) error {
	fileName, err := f.path(key)
	if err != nil {
		return err
	}

	data, err := f.compressor.Compress([]byte(value))
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileSlot) Close() error {
	f.compressor.Close()
	return nil
}
