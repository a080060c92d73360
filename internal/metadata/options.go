// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package metadata

// Option sets one part of a declaration. Options are the one-shot
// alternative to driving a Declaration by hand.
type Option func(*Declaration)

// New applies the options to a fresh declaration and returns its snapshot.
func New(opts ...Option) Document {
	d := NewDeclaration()
	for _, opt := range opts {
		opt(d)
	}
	return d.Snapshot()
}

// WithGroupID sets the group id.
func WithGroupID(v string) Option {
	return func(d *Declaration) { d.GroupID = v }
}

// WithArtifactID sets the artifact id.
func WithArtifactID(v string) Option {
	return func(d *Declaration) { d.ArtifactID = v }
}

// WithVersion sets the version.
func WithVersion(v string) Option {
	return func(d *Declaration) { d.Version = v }
}

// WithName sets the display name.
func WithName(v string) Option {
	return func(d *Declaration) { d.Name = v }
}

// WithDescription sets the description.
func WithDescription(v string) Option {
	return func(d *Declaration) { d.Description = v }
}

// WithURL sets the project URL.
func WithURL(v string) Option {
	return func(d *Declaration) { d.URL = v }
}

// WithInceptionYear sets the inception year.
func WithInceptionYear(v string) Option {
	return func(d *Declaration) { d.InceptionYear = v }
}

// WithLicenses declares the licenses group with the given ids. Calling it
// with no ids declares an empty group.
func WithLicenses(ids ...string) Option {
	return func(d *Declaration) {
		d.Licenses(func(l *List[License]) {
			for _, id := range ids {
				l.Add(License{Type: id})
			}
		})
	}
}

// WithDevelopers declares the developers group.
func WithDevelopers(devs ...Developer) Option {
	return func(d *Declaration) { d.developers.replace(devs) }
}

// WithMailingLists declares the mailing lists group.
func WithMailingLists(lists ...MailingList) Option {
	return func(d *Declaration) { d.mailingLists.replace(lists) }
}

// WithOrganization sets the organization.
func WithOrganization(o Organization) Option {
	return func(d *Declaration) { d.SetOrganization(o) }
}

// WithIssueManagement sets the issue management entry.
func WithIssueManagement(im IssueManagement) Option {
	return func(d *Declaration) { d.SetIssueManagement(im) }
}

// WithScm sets the scm coordinates.
func WithScm(s Scm) Option {
	return func(d *Declaration) { d.SetScm(s) }
}
