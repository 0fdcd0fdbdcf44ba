package types

import "time"

// HTTPConfig holds shared HTTP settings used by commands that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "openshelf/0.1"). Per prd001-search R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search command.
// Per prd001-search R1.4, R5.1-R5.4.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Limit is the page size sent to the search endpoint (default 20, max 100).
	Limit int `json:"limit" yaml:"limit"`

	// Language is a 3-letter MARC language code restricting results
	// (e.g. "eng"). Empty means no language filter.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// EbookOnly restricts results to works with full text available.
	EbookOnly bool `json:"ebook_only" yaml:"ebook_only"`

	// Sort selects the result order: relevance, new, old, or title.
	Sort string `json:"sort" yaml:"sort"`
}

// SavedConfig holds settings for the saved-list store.
// Per prd002-saved-list R1.1.
type SavedConfig struct {
	// Path is the JSON file holding the saved list (default "saved.json").
	Path string `json:"path" yaml:"path"`
}

// Config groups all command configurations.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Saved  SavedConfig  `json:"saved" yaml:"saved"`
}
