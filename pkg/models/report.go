package models

// ValidationReport is the outcome of the document checks for one file.
// A document with warnings but no errors is still valid.
type ValidationReport struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
