// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pdiddy/openshelf/pkg/types"
)

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "openshelf/test"},
		Limit:      20,
	}
}

// --- buildSearchParams ---

func TestBuildSearchParams(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		cfg   types.SearchConfig
		want  map[string]string
	}{
		{
			name:  "default field uses q",
			query: Query{Text: "the hobbit"},
			cfg:   testCfg(),
			want:  map[string]string{"q": "the hobbit", "page": "1", "limit": "20"},
		},
		{
			name:  "author field carries the text",
			query: Query{Text: "Tolkien", Field: "author"},
			cfg:   testCfg(),
			want:  map[string]string{"author": "Tolkien", "q": "", "page": "1", "limit": "20"},
		},
		{
			name:  "title field",
			query: Query{Text: "dune", Field: "title"},
			cfg:   testCfg(),
			want:  map[string]string{"title": "dune", "page": "1"},
		},
		{
			name:  "isbn field",
			query: Query{Text: "9780261103573", Field: "isbn"},
			cfg:   testCfg(),
			want:  map[string]string{"isbn": "9780261103573"},
		},
		{
			name:  "page number forwarded",
			query: Query{Text: "dune", Page: 3},
			cfg:   testCfg(),
			want:  map[string]string{"q": "dune", "page": "3"},
		},
		{
			name:  "ebook flag sets has_fulltext",
			query: Query{Text: "dune", EbookOnly: true},
			cfg:   testCfg(),
			want:  map[string]string{"q": "dune", "has_fulltext": "true"},
		},
		{
			name:  "language joins the q parameter",
			query: Query{Text: "dune", Language: "eng"},
			cfg:   testCfg(),
			want:  map[string]string{"q": "dune language:eng"},
		},
		{
			name:  "language with field query goes to bare q",
			query: Query{Text: "Tolkien", Field: "author", Language: "fre"},
			cfg:   testCfg(),
			want:  map[string]string{"author": "Tolkien", "q": "language:fre"},
		},
		{
			name:  "limit clamped to maximum",
			query: Query{Text: "dune"},
			cfg:   types.SearchConfig{Limit: 500},
			want:  map[string]string{"limit": "100"},
		},
		{
			name:  "zero limit uses default",
			query: Query{Text: "dune"},
			cfg:   types.SearchConfig{},
			want:  map[string]string{"limit": "20"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := buildSearchParams(tt.query, tt.cfg)
			if err != nil {
				t.Fatalf("buildSearchParams: %v", err)
			}
			for key, want := range tt.want {
				if got := params.Get(key); got != want {
					t.Errorf("params[%q] = %q, want %q", key, got, want)
				}
			}
			if got := params.Get("fields"); got != searchFields {
				t.Errorf("fields = %q, want the fixed allow-list", got)
			}
		})
	}
}

func TestBuildSearchParamsErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr string
	}{
		{"empty text", Query{}, "query is empty"},
		{"whitespace text", Query{Text: "   "}, "query is empty"},
		{"unknown field", Query{Text: "dune", Field: "publisher"}, "unknown field"},
		{"negative page", Query{Text: "dune", Page: -1}, "page must be >= 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildSearchParams(tt.query, testCfg())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

// --- SearchPage ---

const sampleSearchJSON = `{
  "numFound": 487,
  "start": 0,
  "docs": [
    {
      "key": "/works/OL27448W",
      "title": "The Lord of the Rings",
      "author_name": ["J.R.R. Tolkien"],
      "first_publish_year": 1954,
      "cover_i": 9255566,
      "edition_count": 120,
      "language": ["eng", "fre"],
      "ebook_access": "borrowable",
      "isbn": ["9780261103573"],
      "subject": ["Fantasy fiction"]
    },
    {
      "key": "/works/OL45883W",
      "title": "The Hobbit",
      "author_name": ["J.R.R. Tolkien"],
      "first_publish_year": 1937,
      "edition_count": 80,
      "ebook_access": "no_ebook"
    }
  ]
}`

func searchTestServer(t *testing.T, statusCode int, body string) (*httptest.Server, *url.Values) {
	t.Helper()
	var gotParams url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)

	old := searchBase
	searchBase = ts.URL
	t.Cleanup(func() { searchBase = old })

	return ts, &gotParams
}

func TestSearchPage(t *testing.T) {
	ts, gotParams := searchTestServer(t, http.StatusOK, sampleSearchJSON)

	c := &Client{HTTP: ts.Client()}
	result, err := c.SearchPage(context.Background(), Query{Text: "Tolkien", Field: "author"}, testCfg())
	if err != nil {
		t.Fatalf("SearchPage: %v", err)
	}

	if gotParams.Get("author") != "Tolkien" {
		t.Errorf("author param = %q, want %q", gotParams.Get("author"), "Tolkien")
	}

	if result.NumFound != 487 {
		t.Errorf("NumFound = %d, want 487", result.NumFound)
	}
	if len(result.Docs) != 2 {
		t.Fatalf("len(Docs) = %d, want 2", len(result.Docs))
	}

	b0 := result.Docs[0]
	if b0.Key != "/works/OL27448W" {
		t.Errorf("Key = %q", b0.Key)
	}
	if b0.Title != "The Lord of the Rings" {
		t.Errorf("Title = %q", b0.Title)
	}
	if len(b0.Authors) != 1 || b0.Authors[0] != "J.R.R. Tolkien" {
		t.Errorf("Authors = %v", b0.Authors)
	}
	if b0.FirstPublishYear != 1954 {
		t.Errorf("FirstPublishYear = %d", b0.FirstPublishYear)
	}
	if b0.EbookAccess != "borrowable" {
		t.Errorf("EbookAccess = %q", b0.EbookAccess)
	}
	if b0.CoverURL() != "https://covers.openlibrary.org/b/id/9255566-M.jpg" {
		t.Errorf("CoverURL = %q", b0.CoverURL())
	}

	// Second doc has no cover.
	if got := result.Docs[1].CoverURL(); got != "" {
		t.Errorf("CoverURL = %q, want empty for missing cover", got)
	}
}

func TestSearchPageHTTPError(t *testing.T) {
	ts, _ := searchTestServer(t, http.StatusInternalServerError, "")

	c := &Client{HTTP: ts.Client()}
	_, err := c.SearchPage(context.Background(), Query{Text: "dune"}, testCfg())
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error = %q, want HTTP status in message", err)
	}
}

func TestSearchPageMalformedJSON(t *testing.T) {
	ts, _ := searchTestServer(t, http.StatusOK, `{"numFound": `)

	c := &Client{HTTP: ts.Client()}
	_, err := c.SearchPage(context.Background(), Query{Text: "dune"}, testCfg())
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "parsing search response") {
		t.Errorf("error = %q, want parse error", err)
	}
}

func TestSearchPageBadQueryNoRequest(t *testing.T) {
	ts, gotParams := searchTestServer(t, http.StatusOK, sampleSearchJSON)

	c := &Client{HTTP: ts.Client()}
	_, err := c.SearchPage(context.Background(), Query{}, testCfg())
	if err == nil {
		t.Fatal("expected error for empty query")
	}
	if len(*gotParams) != 0 {
		t.Error("empty query must be rejected before any network call")
	}
}
