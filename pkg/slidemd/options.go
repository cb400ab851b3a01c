// Package slidemd converts PowerPoint presentations to markdown that follows
// the slides' reading order and semantic roles.
package slidemd

import (
	"context"
	"log/slog"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/order"
)

const (
	// OrderSemantic reads shapes in markup order and groups them as title, content, other.
	OrderSemantic = order.StrategySemantic
	// OrderSimple flattens groups in encounter order without bucketing.
	OrderSimple = order.StrategySimple
)

// Converter converts a whole document when it cannot be parsed.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Options configures conversion behavior.
type Options struct {
	// Order selects the reading order strategy. Empty means OrderSemantic.
	Order order.Strategy
	// IncludeMetadata specifies whether to prepend the metadata header.
	// If nil, defaults to true.
	IncludeMetadata *bool
	// Logger receives diagnostics. If nil, logs are discarded.
	Logger *slog.Logger
	// Fallback converts documents that fail to open. If nil, open errors are returned.
	Fallback Converter
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		Order: OrderSemantic,
	}
}

// ShouldIncludeMetadata returns whether to prepend the metadata header.
func (o Options) ShouldIncludeMetadata() bool {
	if o.IncludeMetadata != nil {
		return *o.IncludeMetadata
	}
	return true
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
