package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vk/orgdefaults/internal/ctxlog"
	"github.com/vk/orgdefaults/internal/metadata"
)

// ErrAlreadyRegistered is returned by strict registries on a second
// registration.
var ErrAlreadyRegistered = errors.New("defaults already registered")

// Option configures a Registry.
type Option func(*Registry)

// WithStrict makes a second registration an error instead of a no-op.
func WithStrict() Option {
	return func(r *Registry) { r.strict = true }
}

// Registry holds the defaults Document of a build session.
type Registry struct {
	mu     sync.Mutex // serializes writers; readers only touch doc
	doc    atomic.Pointer[metadata.Document]
	strict bool
}

// New creates an unregistered Registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register publishes doc if nothing is registered yet. The registry keeps
// its own deep copy, so later changes to doc by the caller are not visible.
func (r *Registry) Register(ctx context.Context, doc metadata.Document) error {
	_, err := r.RegisterIfAbsent(ctx, func() metadata.Document { return doc })
	return err
}

// RegisterIfAbsent calls provide and publishes its result only when the
// registry is still unregistered; provide runs at most once per registry.
// The boolean reports whether this call performed the registration.
func (r *Registry) RegisterIfAbsent(ctx context.Context, provide func() metadata.Document) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doc.Load() != nil {
		if r.strict {
			return false, ErrAlreadyRegistered
		}
		logger.Debug("Defaults already registered, ignoring registration.")
		return false, nil
	}

	doc := provide().Clone()
	r.doc.Store(&doc)
	logger.Debug("Defaults registered.",
		"group_id", doc.GroupID,
		"licenses", len(doc.Licenses),
		"developers", len(doc.Developers),
		"mailing_lists", len(doc.MailingLists),
	)
	return true, nil
}

// Fetch returns a copy of the registered Document, or the empty Document
// when nothing has been registered.
func (r *Registry) Fetch(ctx context.Context) metadata.Document {
	doc := r.doc.Load()
	if doc == nil {
		return metadata.Empty()
	}
	return doc.Clone()
}

// Registered reports whether a Document has been published.
func (r *Registry) Registered() bool {
	return r.doc.Load() != nil
}
