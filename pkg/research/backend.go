// Package research implements the external search backends behind the
// research cache: general web search, SAM.gov opportunities, and
// USASpending.gov contract awards. Each backend returns source-tagged
// records with a common subset of fields plus a source-specific
// payload; the cache stores whatever shape each backend produced.
package research

import "context"

const userAgent = "RFXRetrieval-Research/1.0 (government proposal research tool)"

// Record is one result from a research backend: a tagged variant keyed
// by Source, with the common title/url/snippet subset and the
// source-specific remainder in Fields.
type Record struct {
	Source  string         `json:"source"`
	Title   string         `json:"title,omitempty"`
	URL     string         `json:"url,omitempty"`
	Snippet string         `json:"snippet,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`

	// Category is stamped by the aggregation layer (web, opportunities,
	// awards) when backends are merged into one report.
	Category string `json:"category,omitempty"`
}

// Backend is a single external research source.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Record, error)
}
