package consumer

import (
	"context"

	"github.com/vk/orgdefaults/internal/ctxlog"
	"github.com/vk/orgdefaults/internal/metadata"
)

// Source supplies the current defaults. *registry.Registry implements it.
type Source interface {
	Fetch(ctx context.Context) metadata.Document
}

// Adapter binds one consumer's overrides to a defaults Source.
type Adapter struct {
	source    Source
	overrides metadata.Document
	opts      []MergeOption
}

// NewAdapter creates an Adapter. The overrides are copied.
func NewAdapter(source Source, overrides metadata.Document, opts ...MergeOption) *Adapter {
	return &Adapter{
		source:    source,
		overrides: overrides.Clone(),
		opts:      opts,
	}
}

// Effective fetches the defaults and merges the overrides over them.
// Repeated calls return equal Documents as long as the source does not change.
func (a *Adapter) Effective(ctx context.Context) metadata.Document {
	doc, _ := a.Explain(ctx)
	return doc
}

// Explain is Effective plus the provenance of every field.
func (a *Adapter) Explain(ctx context.Context) (metadata.Document, Provenance) {
	defaults := a.source.Fetch(ctx)
	doc, trace := MergeWithTrace(defaults, a.overrides, a.opts...)

	overridden := 0
	for _, origin := range trace {
		if origin == OriginOverride || origin == OriginMerged {
			overridden++
		}
	}
	ctxlog.FromContext(ctx).Debug("Merged consumer overrides over defaults.", "overridden_fields", overridden)
	return doc, trace
}
