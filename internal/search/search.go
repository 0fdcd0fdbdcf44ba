// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs one query against the Open Library client, applies
// the in-memory sort, and renders result pages.
// Implements: prd001-search (R2-R4);
//
//	docs/ARCHITECTURE § Search.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/openshelf/internal/openlibrary"
	"github.com/pdiddy/openshelf/pkg/types"
)

// Searcher fetches one page of search results. Satisfied by
// *openlibrary.Client; tests substitute a stub.
type Searcher interface {
	SearchPage(ctx context.Context, query openlibrary.Query, cfg types.SearchConfig) (openlibrary.Result, error)
}

// Sort modes (R3.1). Relevance keeps the API order; the rest re-sort the
// fetched page in memory.
const (
	SortRelevance = "relevance"
	SortNew       = "new"
	SortOld       = "old"
	SortTitle     = "title"
)

var sortModes = []string{SortRelevance, SortNew, SortOld, SortTitle}

// SortModes returns the valid sort modes for error messages and flag help.
func SortModes() []string {
	return sortModes
}

// ValidSort reports whether mode names a known sort order. The empty
// string is valid and means relevance.
func ValidSort(mode string) bool {
	if mode == "" {
		return true
	}
	for _, m := range sortModes {
		if m == mode {
			return true
		}
	}
	return false
}

// Output holds the three pieces of result state: the sorted page, the
// total count, and the derived page position (R4.1). Errors are returned,
// not stored.
type Output struct {
	Books      []types.Book `json:"books"`
	NumFound   int          `json:"num_found"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
}

// Run issues exactly one search call, sorts the returned page, and
// computes the page count (R2.1-R2.3). A failed call fails the run; there
// is no retry (R5.3).
func Run(ctx context.Context, s Searcher, query openlibrary.Query, cfg types.SearchConfig) (Output, error) {
	if !ValidSort(cfg.Sort) {
		return Output{}, fmt.Errorf("unknown sort %q: use one of %s", cfg.Sort, strings.Join(sortModes, ", "))
	}

	result, err := s.SearchPage(ctx, query, cfg)
	if err != nil {
		return Output{}, err
	}

	sortBooks(result.Docs, cfg.Sort)

	page := query.Page
	if page < 1 {
		page = 1
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = 20
	}

	out := Output{
		Books:    result.Docs,
		NumFound: result.NumFound,
		Page:     page,
	}
	out.TotalPages = (result.NumFound + limit - 1) / limit
	return out, nil
}

// sortBooks reorders a page in place (R3.2). Ties keep the API relevance
// order. Works without a known year sort last under new and old.
func sortBooks(books []types.Book, mode string) {
	switch mode {
	case SortNew:
		sort.SliceStable(books, func(i, j int) bool {
			return yearRank(books[i], false) > yearRank(books[j], false)
		})
	case SortOld:
		sort.SliceStable(books, func(i, j int) bool {
			return yearRank(books[i], true) < yearRank(books[j], true)
		})
	case SortTitle:
		sort.SliceStable(books, func(i, j int) bool {
			return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
		})
	}
}

func yearRank(b types.Book, ascending bool) int {
	if b.FirstPublishYear == 0 {
		if ascending {
			return int(^uint(0) >> 1)
		}
		return -1
	}
	return b.FirstPublishYear
}

// FormatTable writes one result page as a human-readable table (R4.2).
func FormatTable(out Output, w io.Writer) {
	if len(out.Books) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-48s  %-20s  %-4s  %-13s  %s\n",
		"Rank", "Title", "Authors", "Year", "Ebook", "Key")
	fmt.Fprintln(w, strings.Repeat("-", 116))

	for i, b := range out.Books {
		year := ""
		if b.FirstPublishYear > 0 {
			year = fmt.Sprintf("%d", b.FirstPublishYear)
		}
		fmt.Fprintf(w, "%-4d  %-48s  %-20s  %-4s  %-13s  %s\n",
			i+1, truncate(b.Title, 48), formatAuthors(b.Authors), year,
			b.EbookAccess, b.Key)
	}

	fmt.Fprintf(w, "\npage %d of %d (%d works)\n", out.Page, out.TotalPages, out.NumFound)
}

// FormatJSON writes the result state as indented JSON (R4.3).
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
