package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Persister stores and retrieves snapshots by chart ID.
type Persister interface {
	Save(snap Snapshot) error
	Load(chartID string) (Snapshot, error)
}

// JSONPersister is a file-based persister using JSON serialization, one file
// per chart ID.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snap.ChartID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *JSONPersister) Load(chartID string) (Snapshot, error) {
	fn := filepath.Join(p.dir, chartID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("chart %q: %w", chartID, os.ErrNotExist)
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snap.ChartID = chartID
	return snap, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(snap Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snap.ChartID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p *YAMLPersister) Load(chartID string) (Snapshot, error) {
	fn := filepath.Join(p.dir, chartID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, fmt.Errorf("chart %q: %w", chartID, os.ErrNotExist)
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snap.ChartID = chartID
	return snap, nil
}
