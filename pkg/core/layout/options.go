package layout

// Default spacing in pixels.
const (
	DefaultRowSpacing    = 350
	DefaultColumnSpacing = 300
	DefaultCoupleGap     = 220
	DefaultBaseline      = 250
	DefaultStartX        = 300
	DefaultLinkOffset    = 175
)

// Spacing holds the distances used by the placer.
type Spacing struct {
	RowSpacing    float64 `json:"row_spacing" toml:"row_spacing" bson:"row_spacing"`
	ColumnSpacing float64 `json:"column_spacing" toml:"column_spacing" bson:"column_spacing"`
	CoupleGap     float64 `json:"couple_gap" toml:"couple_gap" bson:"couple_gap"`
	Baseline      float64 `json:"baseline" toml:"baseline" bson:"baseline"`
	StartX        float64 `json:"start_x" toml:"start_x" bson:"start_x"`
	LinkOffset    float64 `json:"link_offset" toml:"link_offset" bson:"link_offset"`
}

// DefaultSpacing returns the standard chart spacing.
func DefaultSpacing() Spacing {
	return Spacing{
		RowSpacing:    DefaultRowSpacing,
		ColumnSpacing: DefaultColumnSpacing,
		CoupleGap:     DefaultCoupleGap,
		Baseline:      DefaultBaseline,
		StartX:        DefaultStartX,
		LinkOffset:    DefaultLinkOffset,
	}
}

// WithDefaults returns s with every zero field replaced by its default.
// StartX and Baseline may legitimately be zero and are only defaulted when
// the whole struct is zero.
func (s Spacing) WithDefaults() Spacing {
	d := DefaultSpacing()
	if s == (Spacing{}) {
		return d
	}
	if s.RowSpacing == 0 {
		s.RowSpacing = d.RowSpacing
	}
	if s.ColumnSpacing == 0 {
		s.ColumnSpacing = d.ColumnSpacing
	}
	if s.CoupleGap == 0 {
		s.CoupleGap = d.CoupleGap
	}
	if s.LinkOffset == 0 {
		s.LinkOffset = d.LinkOffset
	}
	return s
}

// Option configures [Place] and [RepositionLinks].
type Option func(*options)

type options struct {
	spacing Spacing
	strict  bool
}

func newOptions(opts []Option) options {
	o := options{spacing: DefaultSpacing()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSpacing replaces the default spacing. Zero fields keep their defaults.
func WithSpacing(s Spacing) Option {
	return func(o *options) { o.spacing = s.WithDefaults() }
}

// WithStrict makes [Place] fail on alignment references that cannot be
// resolved instead of recording them in [Layout.Deferred].
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}
