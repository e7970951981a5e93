package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "layermap.dev/pkg/layermap/internal/model"
)

// ReportStore persists report snapshots so a scan can be viewed again later.
type ReportStore interface {
	SaveReport(path m.Path, report m.Report) error
	LoadReport(path m.Path) (m.Report, error)
}

// LocalReportStore keeps snapshots on disk. Files ending in .yaml or .yml
// are YAML; everything else is JSON.
type LocalReportStore struct{}

// NewReportStore constructs a LocalReportStore.
func NewReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReport writes report to path, creating parent directories.
func (s *LocalReportStore) SaveReport(path m.Path, report m.Report) error {
	var buf bytes.Buffer

	encode := m.EncodeJSON
	if isYAMLPath(path) {
		encode = m.EncodeYAML
	}

	if err := encode(&buf, report); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(string(path), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}

// LoadReport reads a snapshot written by SaveReport.
func (s *LocalReportStore) LoadReport(path m.Path) (m.Report, error) {
	// #nosec G304 - the snapshot path is chosen by the user
	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	var report m.Report

	if isYAMLPath(path) {
		err = yaml.Unmarshal(content, &report)
	} else {
		err = json.Unmarshal(content, &report)
	}

	if err != nil {
		return m.Report{}, fmt.Errorf("failed to decode report %s: %w", path, err)
	}

	return report, nil
}

func isYAMLPath(path m.Path) bool {
	ext := strings.ToLower(filepath.Ext(string(path)))
	return ext == ".yaml" || ext == ".yml"
}
