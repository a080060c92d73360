package consumer

import (
	"fmt"
	"slices"

	"github.com/vk/orgdefaults/internal/metadata"
)

// ListStrategy controls how a declared override list combines with the
// defaults list.
type ListStrategy int

const (
	// Replace discards the defaults list in favour of the override list.
	Replace ListStrategy = iota
	// Append keeps the defaults entries and adds the override entries after them.
	Append
)

func (s ListStrategy) String() string {
	switch s {
	case Replace:
		return "replace"
	case Append:
		return "append"
	}
	return fmt.Sprintf("ListStrategy(%d)", int(s))
}

// ParseListStrategy maps "replace" and "append" to their strategies.
func ParseListStrategy(s string) (ListStrategy, error) {
	switch s {
	case "", "replace":
		return Replace, nil
	case "append":
		return Append, nil
	}
	return Replace, fmt.Errorf("unknown list strategy %q: must be 'replace' or 'append'", s)
}

// Origin says where an effective value came from.
type Origin string

const (
	OriginOverride Origin = "override"
	OriginDefaults Origin = "defaults"
	OriginMerged   Origin = "merged"
	OriginUnset    Origin = "unset"
)

// Provenance maps every field of a merged Document to its Origin.
type Provenance map[metadata.Field]Origin

// MergeOption configures a merge.
type MergeOption func(*mergeSettings)

type mergeSettings struct {
	lists ListStrategy
}

// WithListStrategy selects how declared override lists are combined.
func WithListStrategy(s ListStrategy) MergeOption {
	return func(m *mergeSettings) { m.lists = s }
}

// Merge returns the effective Document for a consumer whose local values
// are overrides, layered over the registry's defaults.
func Merge(defaults, overrides metadata.Document, opts ...MergeOption) metadata.Document {
	doc, _ := MergeWithTrace(defaults, overrides, opts...)
	return doc
}

// MergeWithTrace is Merge that also reports the origin of every field.
func MergeWithTrace(defaults, overrides metadata.Document, opts ...MergeOption) (metadata.Document, Provenance) {
	settings := mergeSettings{lists: Replace}
	for _, opt := range opts {
		opt(&settings)
	}

	trace := make(Provenance, len(metadata.AllFields()))
	out := metadata.Document{}

	for _, f := range metadata.ScalarFields() {
		v, origin := mergeScalar(defaults, overrides, f)
		// Set cannot fail for a field from ScalarFields.
		_ = out.Scalars.Set(f, v)
		trace[f] = origin
	}

	out.Licenses, trace[metadata.FieldLicenses] = mergeList(defaults.Licenses, overrides.Licenses, settings.lists)
	out.Developers, trace[metadata.FieldDevelopers] = mergeList(defaults.Developers, overrides.Developers, settings.lists)
	out.MailingLists, trace[metadata.FieldMailingLists] = mergeList(defaults.MailingLists, overrides.MailingLists, settings.lists)

	out.Organization, trace[metadata.FieldOrganization] = mergeSingleton(defaults.Organization, overrides.Organization)
	out.IssueManagement, trace[metadata.FieldIssueManagement] = mergeSingleton(defaults.IssueManagement, overrides.IssueManagement)
	out.Scm, trace[metadata.FieldScm] = mergeSingleton(defaults.Scm, overrides.Scm)

	return out, trace
}

func mergeScalar(defaults, overrides metadata.Document, f metadata.Field) (string, Origin) {
	if v, ok := overrides.Get(f); ok {
		return v, OriginOverride
	}
	if v, ok := defaults.Get(f); ok {
		return v, OriginDefaults
	}
	return "", OriginUnset
}

func mergeList[T any](defaults, overrides []T, strategy ListStrategy) ([]T, Origin) {
	switch {
	case overrides == nil && defaults == nil:
		return nil, OriginUnset
	case overrides == nil:
		return slices.Clone(defaults), OriginDefaults
	case strategy == Append && len(defaults) > 0:
		out := make([]T, 0, len(defaults)+len(overrides))
		out = append(out, defaults...)
		return append(out, overrides...), OriginMerged
	default:
		return slices.Clone(overrides), OriginOverride
	}
}

func mergeSingleton[T any](defaults, overrides *T) (*T, Origin) {
	switch {
	case overrides != nil:
		v := *overrides
		return &v, OriginOverride
	case defaults != nil:
		v := *defaults
		return &v, OriginDefaults
	}
	return nil, OriginUnset
}
