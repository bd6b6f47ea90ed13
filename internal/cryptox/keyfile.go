package cryptox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
)

// LoadOrCreateKey reads the sealing key stored at path. When the file does not
// exist a fresh random key is written there with owner-only permissions.
//
// The key is written to a temporary file first and linked into place, so path
// either does not exist or holds a complete key. Concurrent first starts agree
// on whichever key was linked first.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := readKey(path)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return key, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}

	key, err = common.RandomBytes(KeySize)
	if err != nil {
		return nil, err
	}

	tmp, err := writeTemp(dir, key)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return readKey(path)
		}
		return nil, fmt.Errorf("install key file: %w", err)
	}
	return key, nil
}

func readKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %s holds %d bytes", ErrInvalidKey, path, len(key))
	}
	return key, nil
}

// writeTemp stores key in a new 0600 file under dir and returns its name.
func writeTemp(dir string, key []byte) (string, error) {
	f, err := os.CreateTemp(dir, ".key-*")
	if err != nil {
		return "", fmt.Errorf("create key file: %w", err)
	}
	name := f.Name()

	_, werr := f.Write(key)
	if werr == nil {
		werr = f.Sync()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(name)
		return "", fmt.Errorf("write key file: %w", werr)
	}
	return name, nil
}
