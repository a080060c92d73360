// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package metadata

import "fmt"

// Field names a scalar field or a group of a Document. The names double as
// the attribute and block names of the configuration files.
type Field string

// Scalar fields.
const (
	FieldGroupID       Field = "group_id"
	FieldArtifactID    Field = "artifact_id"
	FieldVersion       Field = "version"
	FieldName          Field = "name"
	FieldDescription   Field = "description"
	FieldURL           Field = "url"
	FieldInceptionYear Field = "inception_year"
)

// Groups.
const (
	FieldLicenses        Field = "licenses"
	FieldDevelopers      Field = "developers"
	FieldMailingLists    Field = "mailing_lists"
	FieldOrganization    Field = "organization"
	FieldIssueManagement Field = "issue_management"
	FieldScm             Field = "scm"
)

// ScalarFields lists the scalar fields in their canonical order.
func ScalarFields() []Field {
	return []Field{
		FieldGroupID,
		FieldArtifactID,
		FieldVersion,
		FieldName,
		FieldDescription,
		FieldURL,
		FieldInceptionYear,
	}
}

// GroupFields lists the list-valued and singleton groups in canonical order.
func GroupFields() []Field {
	return []Field{
		FieldLicenses,
		FieldDevelopers,
		FieldMailingLists,
		FieldOrganization,
		FieldIssueManagement,
		FieldScm,
	}
}

// AllFields is ScalarFields followed by GroupFields.
func AllFields() []Field {
	return append(ScalarFields(), GroupFields()...)
}

// IsScalar reports whether f names a scalar field.
func (f Field) IsScalar() bool {
	switch f {
	case FieldGroupID, FieldArtifactID, FieldVersion, FieldName,
		FieldDescription, FieldURL, FieldInceptionYear:
		return true
	}
	return false
}

func (s Scalars) get(f Field) string {
	switch f {
	case FieldGroupID:
		return s.GroupID
	case FieldArtifactID:
		return s.ArtifactID
	case FieldVersion:
		return s.Version
	case FieldName:
		return s.Name
	case FieldDescription:
		return s.Description
	case FieldURL:
		return s.URL
	case FieldInceptionYear:
		return s.InceptionYear
	}
	return ""
}

// Set assigns a scalar field by name.
func (s *Scalars) Set(f Field, value string) error {
	switch f {
	case FieldGroupID:
		s.GroupID = value
	case FieldArtifactID:
		s.ArtifactID = value
	case FieldVersion:
		s.Version = value
	case FieldName:
		s.Name = value
	case FieldDescription:
		s.Description = value
	case FieldURL:
		s.URL = value
	case FieldInceptionYear:
		s.InceptionYear = value
	default:
		return fmt.Errorf("unknown scalar field %q", f)
	}
	return nil
}
