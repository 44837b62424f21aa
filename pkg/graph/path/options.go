package path

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/natevvv/airway-routing/pkg/graph"
)

const (
	DefaultMaxIterations = 5000
	DefaultMaxPaths      = 3
	DefaultTimeBudget    = 2 * time.Second
	DefaultHeuristic     = 1.0
)

// Cost of traversing the segment from u to v with the stored weight base
type CostFunc func(u, v graph.NavPoint, base float64) float64

// Options of the fringe search and the alternatives search
type Options struct {
	MaxIterations  int                   // maximum number of candidate pops per point pair
	CostOverride   CostFunc              // replaces the stored segment weight if set
	ExpansionDepth int                   // airport expansion level of the call, only 0 may expand airports
	Heuristic      Heuristic             // estimate of the remaining cost
	AirportMatcher *graph.AirportMatcher // recognizes airport codes in raw input
	Deadline       time.Time             // stop searching after this point in time, zero means no deadline
	Logger         *slog.Logger

	MaxPaths    int           // maximum number of alternatives
	TimeBudget  time.Duration // wall clock budget of the alternatives search
	MaxAttempts int           // maximum number of penalized searches, 0 means MaxPaths*5

	ctx context.Context
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		MaxIterations:  DefaultMaxIterations,
		Heuristic:      ConstantHeuristic(DefaultHeuristic),
		AirportMatcher: graph.DefaultAirportMatcher(),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxPaths:       DefaultMaxPaths,
		TimeBudget:     DefaultTimeBudget,
		ctx:            context.Background(),
	}
}

func newOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = o.MaxPaths * 5
	}
	return o
}

func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

func WithCostOverride(f CostFunc) Option {
	return func(o *Options) { o.CostOverride = f }
}

func WithExpansionDepth(depth int) Option {
	return func(o *Options) { o.ExpansionDepth = depth }
}

func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

func WithAirportMatcher(m *graph.AirportMatcher) Option {
	return func(o *Options) {
		if m != nil {
			o.AirportMatcher = m
		}
	}
}

func WithDeadline(deadline time.Time) Option {
	return func(o *Options) { o.Deadline = deadline }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

func WithMaxPaths(n int) Option {
	return func(o *Options) { o.MaxPaths = n }
}

func WithTimeBudget(d time.Duration) Option {
	return func(o *Options) { o.TimeBudget = d }
}

func WithMaxAttempts(n int) Option {
	return func(o *Options) { o.MaxAttempts = n }
}

func withContext(ctx context.Context) Option {
	return func(o *Options) { o.ctx = ctx }
}

// Check if the search has to stop
func (o *Options) expired() bool {
	if o.ctx != nil && o.ctx.Err() != nil {
		return true
	}
	return !o.Deadline.IsZero() && time.Now().After(o.Deadline)
}
