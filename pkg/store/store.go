// Package store persists computed layouts under stable ids so they can be
// served again without recomputation.
//
// Two implementations exist: [Memory] for tests and single-process servers,
// and [github.com/matzehuels/lineage/pkg/store/mongostore] for MongoDB.
// Both satisfy the behavior checked by
// [github.com/matzehuels/lineage/pkg/store/storetest].
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/graph"
)

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 50

// ErrNotFound is returned when no layout has the requested id.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "layout not found")

// Summary describes a stored layout without its content.
type Summary struct {
	ID          string    `json:"id" bson:"_id"`
	Family      string    `json:"family,omitempty" bson:"family,omitempty"`
	ChartHash   string    `json:"chart_hash" bson:"chart_hash"`
	People      int       `json:"people" bson:"people"`
	Generations int       `json:"generations" bson:"generations"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Record is a stored layout.
type Record struct {
	Summary `bson:",inline"`
	Layout  graph.Layout `json:"layout" bson:"layout"`
}

// NewRecord wraps a computed layout for storage. The id and creation time
// are assigned by [Store.Save].
func NewRecord(l graph.Layout, chartHash string) *Record {
	return &Record{
		Summary: Summary{
			Family:      l.Family,
			ChartHash:   chartHash,
			People:      len(l.Nodes),
			Generations: l.Generations,
		},
		Layout: l,
	}
}

// ListOptions filters [Store.List].
type ListOptions struct {
	Family string // only layouts of this family
	Limit  int    // at most this many, DefaultListLimit when zero
}

// Store persists layout records.
type Store interface {
	// Save stores rec, assigning an id and creation time when they are
	// unset. Saving a record with an existing id replaces it.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes the record with the given id or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns summaries, newest first.
	List(ctx context.Context, opts ListOptions) ([]Summary, error)

	// Close releases the store's resources.
	Close(ctx context.Context) error
}

// Prepare assigns a new id and the creation time to rec where unset, and
// mirrors the id into the layout. Implementations call it from Save.
func Prepare(rec *Record, now time.Time) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now.UTC().Truncate(time.Millisecond)
	}
	rec.Layout.ID = rec.ID
}

// limit returns the effective limit of opts.
func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}
