// This file contains the logic for translating the HCL schema structs into
// metadata declarations.

package hcl

import (
	"github.com/vk/orgdefaults/internal/metadata"
)

// translateDefaults replays a decoded block onto a declaration, opening a
// container for every nested block that was present.
func translateDefaults(b *hclDefaults) *metadata.Declaration {
	d := metadata.NewDeclaration()
	if b == nil {
		return d
	}

	d.Scalars = metadata.Scalars{
		GroupID:       b.GroupID,
		ArtifactID:    b.ArtifactID,
		Version:       b.Version,
		Name:          b.Name,
		Description:   b.Description,
		URL:           b.URL,
		InceptionYear: b.InceptionYear,
	}

	if b.Licenses != nil {
		d.Licenses(func(l *metadata.List[metadata.License]) {
			for _, e := range b.Licenses.Entries {
				l.Add(metadata.License{Type: e.Type})
			}
		})
	}
	if b.Developers != nil {
		d.Developers(func(l *metadata.List[metadata.Developer]) {
			for _, e := range b.Developers.Entries {
				l.Add(metadata.Developer{
					ID:              e.ID,
					Name:            e.Name,
					Email:           e.Email,
					URL:             e.URL,
					Organization:    e.Organization,
					OrganizationURL: e.OrganizationURL,
					Timezone:        e.Timezone,
				})
			}
		})
	}
	if b.MailingLists != nil {
		d.MailingLists(func(l *metadata.List[metadata.MailingList]) {
			for _, e := range b.MailingLists.Entries {
				l.Add(metadata.MailingList{
					Name:        e.Name,
					Subscribe:   e.Subscribe,
					Unsubscribe: e.Unsubscribe,
					Post:        e.Post,
					Archive:     e.Archive,
				})
			}
		})
	}
	if o := b.Organization; o != nil {
		d.SetOrganization(metadata.Organization{Name: o.Name, URL: o.URL})
	}
	if im := b.IssueManagement; im != nil {
		d.SetIssueManagement(metadata.IssueManagement{System: im.System, URL: im.URL})
	}
	if s := b.Scm; s != nil {
		d.SetScm(metadata.Scm{Connection: s.Connection, DeveloperConnection: s.DeveloperConnection, URL: s.URL})
	}
	return d
}
