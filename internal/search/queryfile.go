// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/openshelf/internal/openlibrary"
	"github.com/pdiddy/openshelf/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results.
// A search can be saved to a file and re-rendered later without another
// network call.
// Implements: prd001-search R4.6.
type QueryFile struct {
	Query   QueryParams     `yaml:"query"`
	Config  QueryFileConfig `yaml:"config"`
	Results []types.Book    `yaml:"results"`
	Summary QuerySummary    `yaml:"summary"`
}

// QueryParams stores the five query controls in a serializable form.
type QueryParams struct {
	Text      string `yaml:"text"`
	Field     string `yaml:"field,omitempty"`
	EbookOnly bool   `yaml:"ebook_only,omitempty"`
	Language  string `yaml:"language,omitempty"`
	Page      int    `yaml:"page,omitempty"`
}

// QueryFileConfig stores the search configuration that produced the results.
type QueryFileConfig struct {
	Limit int    `yaml:"limit"`
	Sort  string `yaml:"sort,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	NumFound   int       `yaml:"num_found"`
	Page       int       `yaml:"page"`
	TotalPages int       `yaml:"total_pages"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves query parameters and results to a YAML file.
func WriteQueryFile(path string, query openlibrary.Query, cfg types.SearchConfig, out Output) error {
	qf := QueryFile{
		Query: QueryParams{
			Text:      query.Text,
			Field:     query.Field,
			EbookOnly: query.EbookOnly,
			Language:  query.Language,
			Page:      query.Page,
		},
		Config: QueryFileConfig{
			Limit: cfg.Limit,
			Sort:  cfg.Sort,
		},
		Results: out.Books,
		Summary: QuerySummary{
			NumFound:   out.NumFound,
			Page:       out.Page,
			TotalPages: out.TotalPages,
			Timestamp:  time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Output converts a stored query file back into renderable result state.
func (qf *QueryFile) Output() Output {
	return Output{
		Books:      qf.Results,
		NumFound:   qf.Summary.NumFound,
		Page:       qf.Summary.Page,
		TotalPages: qf.Summary.TotalPages,
	}
}
