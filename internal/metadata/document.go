// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// This file defines the Document, the immutable snapshot of one build's
// declared defaults. A Declaration is written to while a settings file is
// evaluated; the registry only ever holds a Document produced from it in one
// step, and every reader gets its own Clone.

package metadata

import "slices"

// Document aggregates the scalar fields, the ordered repeatable groups and
// the optional singletons of one set of defaults.
type Document struct {
	Scalars `yaml:",inline"`

	Licenses     []License     `json:"licenses,omitempty" yaml:"licenses,omitempty"`
	Developers   []Developer   `json:"developers,omitempty" yaml:"developers,omitempty"`
	MailingLists []MailingList `json:"mailing_lists,omitempty" yaml:"mailing_lists,omitempty"`

	Organization    *Organization    `json:"organization,omitempty" yaml:"organization,omitempty"`
	IssueManagement *IssueManagement `json:"issue_management,omitempty" yaml:"issue_management,omitempty"`
	Scm             *Scm             `json:"scm,omitempty" yaml:"scm,omitempty"`
}

// Empty returns a Document with every field unset and every group empty.
func Empty() Document {
	return Document{}
}

// Assemble builds a Document from its parts. The slices are copied and
// singletons whose fields are all empty are dropped.
func Assemble(
	scalars Scalars,
	licenses []License,
	developers []Developer,
	mailingLists []MailingList,
	organization *Organization,
	issueManagement *IssueManagement,
	scm *Scm,
) Document {
	doc := Document{
		Scalars:      scalars,
		Licenses:     slices.Clone(licenses),
		Developers:   slices.Clone(developers),
		MailingLists: slices.Clone(mailingLists),
	}
	if organization != nil && !organization.IsZero() {
		org := *organization
		doc.Organization = &org
	}
	if issueManagement != nil && !issueManagement.IsZero() {
		im := *issueManagement
		doc.IssueManagement = &im
	}
	if scm != nil && !scm.IsZero() {
		s := *scm
		doc.Scm = &s
	}
	return doc
}

// Get returns the value of a scalar field. Unset or unknown fields yield
// ("", false).
func (d Document) Get(f Field) (string, bool) {
	v := d.Scalars.get(f)
	return v, v != ""
}

// Clone returns a deep copy. Nil groups stay nil so the declared/undeclared
// distinction survives the copy.
func (d Document) Clone() Document {
	out := Document{
		Scalars:      d.Scalars,
		Licenses:     slices.Clone(d.Licenses),
		Developers:   slices.Clone(d.Developers),
		MailingLists: slices.Clone(d.MailingLists),
	}
	if d.Organization != nil {
		org := *d.Organization
		out.Organization = &org
	}
	if d.IssueManagement != nil {
		im := *d.IssueManagement
		out.IssueManagement = &im
	}
	if d.Scm != nil {
		s := *d.Scm
		out.Scm = &s
	}
	return out
}

// IsEmpty reports whether nothing at all is set.
func (d Document) IsEmpty() bool {
	return d.Scalars == Scalars{} &&
		len(d.Licenses) == 0 &&
		len(d.Developers) == 0 &&
		len(d.MailingLists) == 0 &&
		d.Organization == nil &&
		d.IssueManagement == nil &&
		d.Scm == nil
}

// Declared reports whether the given group was declared (for list groups)
// or set (for singletons). Scalar fields report whether they are non-empty.
func (d Document) Declared(f Field) bool {
	switch f {
	case FieldLicenses:
		return d.Licenses != nil
	case FieldDevelopers:
		return d.Developers != nil
	case FieldMailingLists:
		return d.MailingLists != nil
	case FieldOrganization:
		return d.Organization != nil
	case FieldIssueManagement:
		return d.IssueManagement != nil
	case FieldScm:
		return d.Scm != nil
	default:
		_, ok := d.Get(f)
		return ok
	}
}

// LicenseIDs returns the license identifiers in declaration order.
func (d Document) LicenseIDs() []string {
	ids := make([]string, 0, len(d.Licenses))
	for _, l := range d.Licenses {
		ids = append(ids, l.Type)
	}
	return ids
}
