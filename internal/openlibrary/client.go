// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openlibrary is the HTTP client for the Open Library API: work
// search, work details, author names, and ratings.
// Implements: prd001-search (R1, R2); prd003-details (R1-R3);
//
//	docs/ARCHITECTURE § Open Library Client.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/openshelf/internal/httputil"
	"github.com/pdiddy/openshelf/internal/logger"
	"github.com/pdiddy/openshelf/pkg/types"
)

// searchBase is the Open Library search endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchBase = "https://openlibrary.org/search.json"

// searchFields is the fixed allow-list of fields requested from the search
// endpoint (R1.3). Everything the card and saved-list views need, nothing more.
const searchFields = "key,title,author_name,first_publish_year,cover_i,edition_count,language,ebook_access,isbn,subject"

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Field selectors accepted by Query.Field, mapped to the request parameter
// that carries the query text (R1.2).
var fieldParams = map[string]string{
	"q":       "q",
	"title":   "title",
	"author":  "author",
	"subject": "subject",
	"isbn":    "isbn",
}

// FieldNames returns the valid field selectors, sorted, for error messages
// and flag help.
func FieldNames() []string {
	names := make([]string, 0, len(fieldParams))
	for name := range fieldParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Query holds the search controls: free text, field selector, ebook-only
// flag, language code, and page number (R1.1).
type Query struct {
	Text      string
	Field     string
	EbookOnly bool
	Language  string
	Page      int
}

// Result is one page of search results.
type Result struct {
	// NumFound is the total number of matching works across all pages.
	NumFound int

	// Docs holds the works on the requested page, in API relevance order.
	Docs []types.Book
}

// Client queries the Open Library API.
type Client struct {
	HTTP *http.Client
}

// New returns a Client using an http.Client with cfg.Timeout.
func New(cfg types.HTTPConfig) *Client {
	return &Client{HTTP: httputil.NewClient(cfg.Timeout)}
}

// SearchPage issues one search request and returns the decoded page (R2.1).
// One call per invocation, no retry (R5.3).
func (c *Client) SearchPage(ctx context.Context, query Query, cfg types.SearchConfig) (Result, error) {
	params, err := buildSearchParams(query, cfg)
	if err != nil {
		return Result{}, err
	}

	reqURL := searchBase + "?" + params.Encode()

	start := time.Now()
	resp, err := httputil.Get(ctx, c.HTTP, reqURL, cfg.UserAgent)
	if err != nil {
		return Result{}, fmt.Errorf("Open Library search: %w", err)
	}
	defer resp.Body.Close()

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Result{}, fmt.Errorf("parsing search response: %w", err)
	}

	logger.Get().Debug("search request",
		zap.String("url", reqURL),
		zap.Int("num_found", sr.NumFound),
		zap.Int("docs", len(sr.Docs)),
		zap.Duration("elapsed", time.Since(start)),
	)

	result := Result{NumFound: sr.NumFound}
	for _, doc := range sr.Docs {
		result.Docs = append(result.Docs, doc.toBook())
	}
	return result, nil
}

// buildSearchParams maps the five query controls to request parameters (R1).
func buildSearchParams(query Query, cfg types.SearchConfig) (url.Values, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return nil, fmt.Errorf("query is empty: provide search text")
	}

	field := query.Field
	if field == "" {
		field = "q"
	}
	param, ok := fieldParams[field]
	if !ok {
		return nil, fmt.Errorf("unknown field %q: use one of %s", field, strings.Join(FieldNames(), ", "))
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	params := url.Values{
		param:    {text},
		"fields": {searchFields},
		"page":   {fmt.Sprintf("%d", page)},
		"limit":  {fmt.Sprintf("%d", limit)},
	}

	// The language filter rides in the q parameter, which the API combines
	// with the field-specific parameters.
	if query.Language != "" {
		langTerm := "language:" + query.Language
		if q := params.Get("q"); q != "" {
			params.Set("q", q+" "+langTerm)
		} else {
			params.Set("q", langTerm)
		}
	}

	if query.EbookOnly {
		params.Set("has_fulltext", "true")
	}

	return params, nil
}

// Open Library search JSON structures.
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Start    int         `json:"start"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverI           int64    `json:"cover_i"`
	EditionCount     int      `json:"edition_count"`
	Language         []string `json:"language"`
	EbookAccess      string   `json:"ebook_access"`
	ISBN             []string `json:"isbn"`
	Subject          []string `json:"subject"`
}

func (d searchDoc) toBook() types.Book {
	return types.Book{
		Key:              d.Key,
		Title:            d.Title,
		Authors:          d.AuthorName,
		FirstPublishYear: d.FirstPublishYear,
		CoverID:          d.CoverI,
		EditionCount:     d.EditionCount,
		Languages:        d.Language,
		EbookAccess:      d.EbookAccess,
		ISBNs:            d.ISBN,
		Subjects:         d.Subject,
	}
}
