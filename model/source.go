package model

// DefaultBaseName is used when a script has no extends statement.
const DefaultBaseName = "RefCounted"

// Operation is a public function declared in a script
type Operation struct {
	Name string `json:"name"`
	// Raw parameter list between the parentheses, trimmed; empty when none
	Parameters string `json:"parameters"`
}

// SourceSummary is the structural outline of one GDScript source file.
type SourceSummary struct {
	// Value of class_name, empty when the script does not declare one
	ClassName string `json:"class_name,omitempty"`
	// Value of extends, DefaultBaseName when absent
	BaseName   string      `json:"base_name"`
	Operations []Operation `json:"operations"`
}
