// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/openshelf/internal/openlibrary"
	"github.com/pdiddy/openshelf/pkg/types"
)

// stubSearcher returns a canned page or error.
type stubSearcher struct {
	result openlibrary.Result
	err    error
	calls  int
}

func (s *stubSearcher) SearchPage(_ context.Context, _ openlibrary.Query, _ types.SearchConfig) (openlibrary.Result, error) {
	s.calls++
	return s.result, s.err
}

func book(title string, year int) types.Book {
	return types.Book{Key: "/works/" + title, Title: title, FirstPublishYear: year}
}

// --- ValidSort ---

func TestValidSort(t *testing.T) {
	for _, mode := range []string{"", "relevance", "new", "old", "title"} {
		if !ValidSort(mode) {
			t.Errorf("ValidSort(%q) = false, want true", mode)
		}
	}
	for _, mode := range []string{"rating", "NEW", "newest"} {
		if ValidSort(mode) {
			t.Errorf("ValidSort(%q) = true, want false", mode)
		}
	}
}

// --- sortBooks ---

func TestSortBooks(t *testing.T) {
	base := func() []types.Book {
		return []types.Book{
			book("Beta", 1990),
			book("alpha", 2010),
			book("Gamma", 0),
			book("delta", 2001),
		}
	}

	tests := []struct {
		name string
		mode string
		want []string
	}{
		{"relevance keeps API order", SortRelevance, []string{"Beta", "alpha", "Gamma", "delta"}},
		{"empty mode keeps API order", "", []string{"Beta", "alpha", "Gamma", "delta"}},
		{"new sorts descending, unknown year last", SortNew, []string{"alpha", "delta", "Beta", "Gamma"}},
		{"old sorts ascending, unknown year last", SortOld, []string{"Beta", "delta", "alpha", "Gamma"}},
		{"title sorts case-insensitively", SortTitle, []string{"alpha", "Beta", "delta", "Gamma"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books := base()
			sortBooks(books, tt.mode)
			for i, want := range tt.want {
				if books[i].Title != want {
					t.Errorf("position %d = %q, want %q (order: %v)", i, books[i].Title, want, titles(books))
					break
				}
			}
		})
	}
}

func TestSortBooksStableOnTies(t *testing.T) {
	books := []types.Book{
		{Key: "/works/A", Title: "First", FirstPublishYear: 2000},
		{Key: "/works/B", Title: "Second", FirstPublishYear: 2000},
	}
	sortBooks(books, SortNew)
	if books[0].Key != "/works/A" || books[1].Key != "/works/B" {
		t.Errorf("tie order changed: %v", titles(books))
	}
}

func titles(books []types.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

// --- Run ---

func TestRun(t *testing.T) {
	s := &stubSearcher{result: openlibrary.Result{
		NumFound: 45,
		Docs:     []types.Book{book("Beta", 1990), book("alpha", 2010)},
	}}

	cfg := types.SearchConfig{Limit: 20, Sort: SortNew}
	out, err := Run(context.Background(), s, openlibrary.Query{Text: "dune", Page: 2}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if s.calls != 1 {
		t.Errorf("calls = %d, want exactly one network call", s.calls)
	}
	if out.NumFound != 45 {
		t.Errorf("NumFound = %d, want 45", out.NumFound)
	}
	if out.Page != 2 {
		t.Errorf("Page = %d, want 2", out.Page)
	}
	// ceil(45/20) = 3.
	if out.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", out.TotalPages)
	}
	if out.Books[0].Title != "alpha" {
		t.Errorf("sort not applied: first = %q", out.Books[0].Title)
	}
}

func TestRunUnknownSortRejectedBeforeCall(t *testing.T) {
	s := &stubSearcher{}
	_, err := Run(context.Background(), s, openlibrary.Query{Text: "dune"}, types.SearchConfig{Sort: "rating"})
	if err == nil {
		t.Fatal("expected error for unknown sort")
	}
	if !strings.Contains(err.Error(), "relevance, new, old, title") {
		t.Errorf("error = %q, want valid modes listed", err)
	}
	if s.calls != 0 {
		t.Error("invalid sort must be rejected before any network call")
	}
}

func TestRunPropagatesSearchError(t *testing.T) {
	s := &stubSearcher{err: fmt.Errorf("HTTP 503 from openlibrary.org")}
	_, err := Run(context.Background(), s, openlibrary.Query{Text: "dune"}, types.SearchConfig{})
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("err = %v, want the single failure surfaced", err)
	}
	if s.calls != 1 {
		t.Errorf("calls = %d, want 1 (fail once, no retry)", s.calls)
	}
}

func TestRunTotalPagesExact(t *testing.T) {
	tests := []struct {
		numFound, limit, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{487, 20, 25},
	}
	for _, tt := range tests {
		s := &stubSearcher{result: openlibrary.Result{NumFound: tt.numFound}}
		out, err := Run(context.Background(), s, openlibrary.Query{Text: "x"}, types.SearchConfig{Limit: tt.limit})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if out.TotalPages != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.numFound, tt.limit, out.TotalPages, tt.want)
		}
	}
}

// --- FormatTable ---

func TestFormatTable(t *testing.T) {
	out := Output{
		Books: []types.Book{
			{
				Key:              "/works/OL27448W",
				Title:            "The Lord of the Rings",
				Authors:          []string{"J.R.R. Tolkien"},
				FirstPublishYear: 1954,
				EbookAccess:      "borrowable",
			},
		},
		NumFound:   487,
		Page:       2,
		TotalPages: 25,
	}

	var buf bytes.Buffer
	FormatTable(out, &buf)
	got := buf.String()

	for _, want := range []string{"The Lord of the Rings", "J.R.R. Tolkien", "1954", "borrowable", "/works/OL27448W", "page 2 of 25 (487 works)"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Output{}, &buf)
	if !strings.Contains(buf.String(), "No results found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{"none", nil, ""},
		{"single", []string{"Frank Herbert"}, "Frank Herbert"},
		{"multiple collapses to et al.", []string{"Neil Gaiman", "Terry Pratchett"}, "Neil Gaiman et al."},
		{"long single truncated", []string{"A Very Long Author Name Indeed"}, "A Very Long Autho..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAuthors(tt.authors); got != tt.want {
				t.Errorf("formatAuthors(%v) = %q, want %q", tt.authors, got, tt.want)
			}
		})
	}
}
