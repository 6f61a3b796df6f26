package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/laptopstore/internal/model"
)

// JSON-backed snapshot of the laptop catalogue. Single file, human-readable.
// No locking; the dev server serialises writes itself.

// Load reads laptops from path. A missing file is an empty catalogue.
func Load(path string) ([]model.Laptop, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Laptop{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var laptops []model.Laptop
	if err := json.Unmarshal(b, &laptops); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return laptops, nil
}

// Save writes laptops to path through a temp file so readers never see half a file.
func Save(path string, laptops []model.Laptop) error {
	b, err := json.MarshalIndent(laptops, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".laptops-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
