package history

// This file contains shared history utilities for storing, loading and
// parsing recorded test runs.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gdtdd/gdtdd/model"
	"github.com/gdtdd/gdtdd/project"
)

// FileName is the metadata file written into every run directory.
const FileName = "history.json"

type Entry struct {
	History  model.History
	FullPath string
}

// Root returns the history directory of the project at projectRoot.
func Root(projectRoot string) string {
	return filepath.Join(projectRoot, project.StateDirName, "history")
}

// RunDirName returns the directory name for a run: <timestamp>-<short id>.
func RunDirName(h *model.History) string {
	shortID := h.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return fmt.Sprintf("%s-%s", h.Timestamp.Format("20060102-150405"), shortID)
}

// Prepare creates the directory a run's artifacts are written to.
func Prepare(projectRoot string, h *model.History) (string, error) {
	runDir := filepath.Join(Root(projectRoot), RunDirName(h))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return runDir, nil
}

// WriteArtifact writes data into runDir and registers it on the history entry.
func WriteArtifact(h *model.History, runDir, name string, typ model.ArtifactType, data []byte) error {
	if err := os.WriteFile(filepath.Join(runDir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	h.Artifacts = append(h.Artifacts, model.Artifact{
		Type: typ,
		Size: uint64(len(data)),
		File: name,
	})
	return nil
}

// Save writes the run metadata into runDir.
func Save(h *model.History, runDir string) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, FileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// LoadEntries loads all history entries below historyRoot, newest first.
// A missing directory yields no entries.
func LoadEntries(logger zerolog.Logger, historyRoot string) ([]Entry, error) {
	var entries []Entry

	if _, err := os.Stat(historyRoot); os.IsNotExist(err) {
		return nil, nil
	}

	err := filepath.WalkDir(historyRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			historyPath := filepath.Join(path, FileName)
			if _, err := os.Stat(historyPath); err == nil {
				history, err := parseHistoryJSON(historyPath)
				if err != nil {
					logger.Warn().Err(err).Str("path", historyPath).Msg("Failed to parse history.json")
					return nil
				}

				entries = append(entries, Entry{
					History:  history,
					FullPath: path,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk history directory: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].History.Timestamp.After(entries[j].History.Timestamp)
	})

	return entries, nil
}

// Select finds an entry in newest-first entries by index or ID prefix.
// "0" is the latest run, "-1" the one before it; anything that is not an
// integer is matched as a hex ID prefix.
func Select(entries []Entry, arg string) (*Entry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no history entries found")
	}

	if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if parsed > 0 {
			return nil, fmt.Errorf("invalid index: %s (use 0 for last, -1 for second-to-last, -2 for third-to-last, etc.)", arg)
		}
		index := int(-parsed)
		if index >= len(entries) {
			return nil, fmt.Errorf("index %s out of range (only %d history entries)", arg, len(entries))
		}
		return &entries[index], nil
	}

	prefix := strings.ToLower(arg)
	for i := range entries {
		if strings.HasPrefix(strings.ToLower(entries[i].History.ID), prefix) {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("no history entry found matching ID: %s", arg)
}

// parseHistoryJSON parses a history.json file.
func parseHistoryJSON(historyPath string) (model.History, error) {
	data, err := os.ReadFile(historyPath)
	if err != nil {
		return model.History{}, err
	}

	var history model.History
	if err := json.Unmarshal(data, &history); err != nil {
		return model.History{}, err
	}

	return history, nil
}
