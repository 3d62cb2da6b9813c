package reportstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/programme-lv/grader/internal/scoring"
)

const reportExt = ".json.zst"

// Store archives score reports as zstd-compressed JSON, one file per
// group, so the rank command and appeal tooling can read them back later.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(groupID string) string {
	return filepath.Join(s.dir, groupID+reportExt)
}

func (s *Store) Save(report *scoring.ScoreReport) error {
	b, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report for group %s: %w", report.GroupID, err)
	}

	out, err := os.Create(s.path(report.GroupID))
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer out.Close()

	enc, err := zstd.NewWriter(out)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if _, err := enc.Write(b); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return enc.Close()
}

func (s *Store) Load(groupID string) (*scoring.ScoreReport, error) {
	in, err := os.Open(s.path(groupID))
	if err != nil {
		return nil, fmt.Errorf("failed to open report for group %s: %w", groupID, err)
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	var report scoring.ScoreReport
	if err := json.NewDecoder(dec.IOReadCloser()).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report for group %s: %w", groupID, err)
	}
	return &report, nil
}

// LoadAll reads every archived report in the store.
func (s *Store) LoadAll() ([]*scoring.ScoreReport, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report dir %s: %w", s.dir, err)
	}

	var reports []*scoring.ScoreReport
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportExt) {
			continue
		}
		groupID := strings.TrimSuffix(entry.Name(), reportExt)
		report, err := s.Load(groupID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
