// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Paper holds metadata and file paths for a discovered or acquired paper.
type Paper struct {
	// ID is the bare arXiv identifier without version (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// EntryID is the Atom entry id as published by arXiv
	// (e.g. "http://arxiv.org/abs/2301.07041v1").
	EntryID string `json:"entry_id" yaml:"entry_id"`

	// SourceURL is the URL from which the PDF was downloaded.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	// PDFPath is the local filesystem path to the downloaded PDF.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Date is the publication date.
	Date time.Time `json:"date" yaml:"date"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PrimaryCategory is the arXiv primary category (e.g. "cs.LG").
	PrimaryCategory string `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`
}
