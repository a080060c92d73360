package hcl

import (
	"fmt"

	"github.com/vk/orgdefaults/internal/metadata"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DocumentToCty converts a Document into the object exposed to project
// expressions as `defaults`. Unset scalars become empty strings, undeclared
// groups become empty lists and unset singletons become objects with empty
// attributes, so expressions never dereference null.
func DocumentToCty(doc metadata.Document) (cty.Value, error) {
	attrs := make(map[string]cty.Value, len(metadata.AllFields()))
	for _, f := range metadata.ScalarFields() {
		v, _ := doc.Get(f)
		attrs[string(f)] = cty.StringVal(v)
	}

	var err error
	if attrs[string(metadata.FieldLicenses)], err = listToCty(doc.Licenses); err != nil {
		return cty.NilVal, fmt.Errorf("licenses: %w", err)
	}
	if attrs[string(metadata.FieldDevelopers)], err = listToCty(doc.Developers); err != nil {
		return cty.NilVal, fmt.Errorf("developers: %w", err)
	}
	if attrs[string(metadata.FieldMailingLists)], err = listToCty(doc.MailingLists); err != nil {
		return cty.NilVal, fmt.Errorf("mailing_lists: %w", err)
	}
	if attrs[string(metadata.FieldOrganization)], err = singletonToCty(doc.Organization); err != nil {
		return cty.NilVal, fmt.Errorf("organization: %w", err)
	}
	if attrs[string(metadata.FieldIssueManagement)], err = singletonToCty(doc.IssueManagement); err != nil {
		return cty.NilVal, fmt.Errorf("issue_management: %w", err)
	}
	if attrs[string(metadata.FieldScm)], err = singletonToCty(doc.Scm); err != nil {
		return cty.NilVal, fmt.Errorf("scm: %w", err)
	}

	return cty.ObjectVal(attrs), nil
}

func listToCty[T any](items []T) (cty.Value, error) {
	var zero T
	ty, err := gocty.ImpliedType(zero)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	if len(items) == 0 {
		return cty.ListValEmpty(ty), nil
	}
	vals := make([]cty.Value, 0, len(items))
	for _, item := range items {
		v, err := gocty.ToCtyValue(item, ty)
		if err != nil {
			return cty.NilVal, err
		}
		vals = append(vals, v)
	}
	return cty.ListVal(vals), nil
}

func singletonToCty[T any](item *T) (cty.Value, error) {
	var zero T
	ty, err := gocty.ImpliedType(zero)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	if item == nil {
		item = &zero
	}
	return gocty.ToCtyValue(*item, ty)
}
