package driven

import (
	"context"

	"github.com/ericfisherdev/tasteofthebes/internal/domain/model"
)

// Enricher looks up externally sourced restaurant data by place name.
// Implementations never fail: any lookup problem yields
// model.UnknownEnrichment().
type Enricher interface {
	Lookup(ctx context.Context, name string) model.Enrichment
}
