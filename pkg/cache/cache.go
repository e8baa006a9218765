// Package cache stores computed layouts and rendered artifacts.
//
// Computing a layout is cheap next to rendering it, but the HTTP server and
// repeated CLI runs ask for the same charts again and again. Entries are
// content addressed: a layout key is derived from the hash of the chart's
// canonical JSON plus every option that changes the result, and an artifact
// key from the layout hash plus the output format.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled, tests)
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: shared cache for server deployments
//
// # Keys
//
// [Keyer] builds keys; [DefaultKeyer] is the standard scheme and
// [ScopedKeyer] prefixes another keyer for namespacing.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// =============================================================================
// Keys
// =============================================================================

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	RowSpacing    float64 `json:"row_spacing"`
	ColumnSpacing float64 `json:"column_spacing"`
	CoupleGap     float64 `json:"couple_gap"`
	Baseline      float64 `json:"baseline"`
	StartX        float64 `json:"start_x"`
	LinkOffset    float64 `json:"link_offset"`
	MaxPasses     int     `json:"max_passes"`
	Strict        bool    `json:"strict"`
	ViewportWidth float64 `json:"viewport_width"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	Portraits bool    `json:"portraits,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	LayoutKey(chartHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme:
//
//	layout:<sha256(chartHash, opts)>
//	artifact:<format>:<sha256(layoutHash, opts)>
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns the key of a layout computed from the given chart.
func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey returns the key of a rendered layout.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
