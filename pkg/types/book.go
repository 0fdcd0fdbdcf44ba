// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the openshelf CLI.
// Implements: prd001-search (Book, R4.1);
//
//	prd002-saved-list (SavedBook, R1.2);
//	prd003-details (WorkDetail).
//
// See docs/ARCHITECTURE.md § Data Structures.
package types

import (
	"fmt"
	"time"
)

// Book represents one work returned by an Open Library search query.
// Per prd001-search R4.1, each record carries the stable work key used
// for saved-list membership, display metadata, and availability fields.
type Book struct {
	// Key is the stable Open Library work key (e.g. "/works/OL45883W").
	Key string `json:"key" yaml:"key"`

	// Title is the work title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// FirstPublishYear is the earliest known publication year, 0 if unknown.
	FirstPublishYear int `json:"first_publish_year" yaml:"first_publish_year"`

	// CoverID is the Open Library cover identifier, 0 if the work has no cover.
	CoverID int64 `json:"cover_id,omitempty" yaml:"cover_id,omitempty"`

	// EditionCount is the number of editions Open Library knows about.
	EditionCount int `json:"edition_count" yaml:"edition_count"`

	// Languages lists the 3-letter MARC language codes of known editions.
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty"`

	// EbookAccess describes full-text availability: "no_ebook", "printdisabled",
	// "borrowable", or "public".
	EbookAccess string `json:"ebook_access,omitempty" yaml:"ebook_access,omitempty"`

	// ISBNs lists the ISBNs of known editions.
	ISBNs []string `json:"isbns,omitempty" yaml:"isbns,omitempty"`

	// Subjects lists subject headings.
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`
}

// CoverURL returns the medium-size cover image URL, or "" when the work
// has no cover.
func (b Book) CoverURL() string {
	if b.CoverID == 0 {
		return ""
	}
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", b.CoverID)
}

// SavedBook is a Book plus the time it was added to the saved list.
type SavedBook struct {
	Book    `yaml:",inline"`
	SavedAt time.Time `json:"saved_at" yaml:"saved_at"`
}

// WorkDetail holds the fields shown in the details view for one work.
// Per prd003-details: assembled from the work record, its author
// references, and the ratings summary.
type WorkDetail struct {
	// Key is the work key (e.g. "/works/OL45883W").
	Key string `json:"key" yaml:"key"`

	// Title is the work title.
	Title string `json:"title" yaml:"title"`

	// Description is the plain-text work description, "" if absent.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Authors lists resolved author names.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Subjects lists subject headings.
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`

	// FirstPublishDate is the free-form first publication date from the source.
	FirstPublishDate string `json:"first_publish_date,omitempty" yaml:"first_publish_date,omitempty"`

	// CoverID is the Open Library cover identifier, 0 if absent.
	CoverID int64 `json:"cover_id,omitempty" yaml:"cover_id,omitempty"`

	// RatingsAverage is the mean reader rating, 0 when the work is unrated.
	RatingsAverage float64 `json:"ratings_average,omitempty" yaml:"ratings_average,omitempty"`

	// RatingsCount is the number of ratings behind RatingsAverage.
	RatingsCount int `json:"ratings_count,omitempty" yaml:"ratings_count,omitempty"`
}

// CoverURL returns the medium-size cover image URL, or "" when absent.
func (d WorkDetail) CoverURL() string {
	if d.CoverID == 0 {
		return ""
	}
	return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", d.CoverID)
}
