// Package repository holds what the storage backends share.
package repository

import "fmt"

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Projects    string
	Documents   string
	Preferences string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Projects:    fmt.Sprintf("%sprojects", prefix),
		Documents:   fmt.Sprintf("%sdocuments", prefix),
		Preferences: fmt.Sprintf("%spreferences", prefix),
	}
}

// PreferencesKey is the record key editor settings are stored under.
const PreferencesKey = "editor"
