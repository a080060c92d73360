// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package metadata

// Declaration is the mutable builder behind a root settings block. Scalars
// are written directly; groups are written through their containers, either
// with the block functions (Licenses, Developers, ...) or the chained
// Add/Set helpers.
type Declaration struct {
	Scalars

	licenses        List[License]
	developers      List[Developer]
	mailingLists    List[MailingList]
	organization    Singleton[Organization]
	issueManagement Singleton[IssueManagement]
	scm             Singleton[Scm]
}

// NewDeclaration returns an empty declaration.
func NewDeclaration() *Declaration {
	return &Declaration{}
}

// Licenses opens the licenses block. The group counts as declared even if fn
// adds nothing.
func (d *Declaration) Licenses(fn func(*List[License])) *Declaration {
	d.licenses.declare()
	if fn != nil {
		fn(&d.licenses)
	}
	return d
}

// Developers opens the developers block.
func (d *Declaration) Developers(fn func(*List[Developer])) *Declaration {
	d.developers.declare()
	if fn != nil {
		fn(&d.developers)
	}
	return d
}

// MailingLists opens the mailing lists block.
func (d *Declaration) MailingLists(fn func(*List[MailingList])) *Declaration {
	d.mailingLists.declare()
	if fn != nil {
		fn(&d.mailingLists)
	}
	return d
}

// AddLicense appends a license.
func (d *Declaration) AddLicense(l License) *Declaration {
	d.licenses.Add(l)
	return d
}

// AddDeveloper appends a developer.
func (d *Declaration) AddDeveloper(dev Developer) *Declaration {
	d.developers.Add(dev)
	return d
}

// AddMailingList appends a mailing list.
func (d *Declaration) AddMailingList(ml MailingList) *Declaration {
	d.mailingLists.Add(ml)
	return d
}

// SetOrganization replaces the organization.
func (d *Declaration) SetOrganization(o Organization) *Declaration {
	d.organization.Set(o)
	return d
}

// SetIssueManagement replaces the issue management entry.
func (d *Declaration) SetIssueManagement(im IssueManagement) *Declaration {
	d.issueManagement.Set(im)
	return d
}

// SetScm replaces the scm coordinates.
func (d *Declaration) SetScm(s Scm) *Declaration {
	d.scm.Set(s)
	return d
}

// HasScm reports whether scm coordinates were declared.
func (d *Declaration) HasScm() bool {
	return d.scm.Snapshot() != nil
}

// Snapshot copies the current state into a new Document. Later writes to
// the declaration do not affect documents already returned.
func (d *Declaration) Snapshot() Document {
	return Document{
		Scalars:         d.Scalars,
		Licenses:        d.licenses.Snapshot(),
		Developers:      d.developers.Snapshot(),
		MailingLists:    d.mailingLists.Snapshot(),
		Organization:    d.organization.Snapshot(),
		IssueManagement: d.issueManagement.Snapshot(),
		Scm:             d.scm.Snapshot(),
	}
}
