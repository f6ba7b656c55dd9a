package cli

// This file contains test run recording functionality for saving
// test run metadata and output to the history directory.

import (
	"github.com/gdtdd/gdtdd/history"
	"github.com/gdtdd/gdtdd/model"
)

// outputFileName is the artifact holding the combined runner output.
const outputFileName = "output.txt"

func (a *App) recordHistory(h *model.History, projectRoot, output string) error {
	runDir, err := history.Prepare(projectRoot, h)
	if err != nil {
		return err
	}

	if output != "" {
		if err := history.WriteArtifact(h, runDir, outputFileName, model.ArtifactTypeOutput, []byte(output)); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to save runner output")
		}
	}

	if err := history.Save(h, runDir); err != nil {
		return err
	}

	a.logger.Debug().Str("dir", runDir).Str("id", h.ID).Msg("Recorded test run")
	return nil
}
