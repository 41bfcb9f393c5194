package prefix

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FileBackend keeps prefixes in a JSON object on disk
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load reads the file. A missing or unreadable file means no overrides yet.
func (f *FileBackend) Load(ctx context.Context) (map[string]string, error) {
	prefixes := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if err != nil {
		log.Println("No existing prefixes found. Using default.")
		return prefixes, nil
	}

	if err := json.Unmarshal(data, &prefixes); err != nil {
		log.Printf("Error parsing %s: %v. Using default.", f.path, err)
		return make(map[string]string), nil
	}

	return prefixes, nil
}

// Save rewrites the whole file through a temp file and rename
func (f *FileBackend) Save(ctx context.Context, prefixes map[string]string) error {
	data, err := json.MarshalIndent(prefixes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal prefixes: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write prefixes: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
