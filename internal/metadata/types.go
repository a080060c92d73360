// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package metadata

// Scalars holds the single-valued metadata fields. The empty string is the
// unset state for every field.
type Scalars struct {
	GroupID       string `json:"group_id,omitempty" yaml:"group_id,omitempty"`
	ArtifactID    string `json:"artifact_id,omitempty" yaml:"artifact_id,omitempty"`
	Version       string `json:"version,omitempty" yaml:"version,omitempty"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	URL           string `json:"url,omitempty" yaml:"url,omitempty"`
	InceptionYear string `json:"inception_year,omitempty" yaml:"inception_year,omitempty"`
}

// License identifies a license by its SPDX identifier, e.g. "Apache-2.0".
type License struct {
	Type string `json:"type" yaml:"type" cty:"type"`
}

// Developer is one entry of the developer roster.
type Developer struct {
	ID              string `json:"id,omitempty" yaml:"id,omitempty" cty:"id"`
	Name            string `json:"name,omitempty" yaml:"name,omitempty" cty:"name"`
	Email           string `json:"email,omitempty" yaml:"email,omitempty" cty:"email"`
	URL             string `json:"url,omitempty" yaml:"url,omitempty" cty:"url"`
	Organization    string `json:"organization,omitempty" yaml:"organization,omitempty" cty:"organization"`
	OrganizationURL string `json:"organization_url,omitempty" yaml:"organization_url,omitempty" cty:"organization_url"`
	Timezone        string `json:"timezone,omitempty" yaml:"timezone,omitempty" cty:"timezone"`
}

// MailingList describes one project mailing list.
type MailingList struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty" cty:"name"`
	Subscribe   string `json:"subscribe,omitempty" yaml:"subscribe,omitempty" cty:"subscribe"`
	Unsubscribe string `json:"unsubscribe,omitempty" yaml:"unsubscribe,omitempty" cty:"unsubscribe"`
	Post        string `json:"post,omitempty" yaml:"post,omitempty" cty:"post"`
	Archive     string `json:"archive,omitempty" yaml:"archive,omitempty" cty:"archive"`
}

// Organization is the owning organization of a project.
type Organization struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" cty:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty" cty:"url"`
}

// IsZero reports whether no field is set.
func (o Organization) IsZero() bool { return o == Organization{} }

// IssueManagement points at the project's issue tracker.
type IssueManagement struct {
	System string `json:"system,omitempty" yaml:"system,omitempty" cty:"system"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty" cty:"url"`
}

// IsZero reports whether no field is set.
func (i IssueManagement) IsZero() bool { return i == IssueManagement{} }

// Scm holds source-control coordinates.
type Scm struct {
	Connection          string `json:"connection,omitempty" yaml:"connection,omitempty" cty:"connection"`
	DeveloperConnection string `json:"developer_connection,omitempty" yaml:"developer_connection,omitempty" cty:"developer_connection"`
	URL                 string `json:"url,omitempty" yaml:"url,omitempty" cty:"url"`
}

// IsZero reports whether no field is set.
func (s Scm) IsZero() bool { return s == Scm{} }
