package model

import "time"

// HistoryType represents the type of history entry
type HistoryType string

const (
	HistoryTypeTest HistoryType = "test"
)

// History represents a single recorded gdtdd execution
type History struct {
	// Unique ID for this execution (16 random bytes, hex encoded)
	ID string `json:"id"`
	// Type of execution
	Type HistoryType `json:"type"`
	// Timestamp when the execution started
	Timestamp time.Time `json:"timestamp"`
	// Command-line arguments (including command name)
	Args []string `json:"args"`
	// Working directory where command was run (relative to project root)
	WorkDir string `json:"workdir"`
	// Exit code of the execution
	ExitCode int `json:"exit_code"`
	// Duration of execution
	Duration time.Duration `json:"duration"`
	// Git information
	Git *Git `json:"git,omitempty"`
	// Runner that executed the tests
	Runner *Runner `json:"runner,omitempty"`
	// Artifacts generated during this run
	Artifacts []Artifact `json:"artifacts,omitempty"`

	// Type-specific data
	Test *TestRun `json:"test,omitempty"`
}

// Git contains git repository information
type Git struct {
	// Git commit hash at time of execution
	Commit string `json:"commit,omitempty"`
	// Git branch at time of execution
	Branch string `json:"branch,omitempty"`
}

// Runner describes the Godot executable used for a run
type Runner struct {
	// Resolved path of the executable
	Executable string `json:"executable"`
	// Shell-quoted command line, for reproducing the run
	Command string `json:"command"`
	// Timeout applied to the run
	Timeout time.Duration `json:"timeout"`
}

// TestRun contains test-specific fields
type TestRun struct {
	// Test file as given on the command line
	File string `json:"file"`
	// res:// path handed to the runner
	ResPath string `json:"res_path"`
	// The run did not finish within the timeout
	TimedOut bool `json:"timed_out,omitempty"`
	// Interpreted runner output; nil when the run timed out or failed to launch
	Summary *TestRunSummary `json:"summary,omitempty"`
}

// ArtifactType identifies the type of artifact
type ArtifactType uint8

const (
	ArtifactTypeOutput ArtifactType = iota
)

// Artifact represents a file generated during execution
type Artifact struct {
	Type ArtifactType `json:"type"`
	Size uint64       `json:"size"`
	File string       `json:"file"` // relative to run dir
}
