// Package store persists scored example documents so past analyses can be
// listed and revisited. The scoring core never touches it; persistence is
// wired at the web layer.
package store

import (
	"context"
	"time"
)

// Store is the interface for persisting and querying saved analyses.
type Store interface {
	Close() error

	SaveAnalysis(ctx context.Context, a Analysis) error
	GetAnalysis(ctx context.Context, id string) (Analysis, error)
	ListAnalyses(ctx context.Context, limit int) ([]Analysis, error)
}

// Analysis is one saved scoring outcome together with its input document.
type Analysis struct {
	ID           string    `json:"id"`
	URL          string    `json:"url,omitempty"`
	Title        string    `json:"title,omitempty"`
	Text         string    `json:"text"`
	Label        string    `json:"label"`
	Confidence   float64   `json:"confidence"`
	Entropy      float64   `json:"entropy"`
	KLDivergence float64   `json:"klDivergence"`
	CreatedAt    time.Time `json:"createdAt"`
}
