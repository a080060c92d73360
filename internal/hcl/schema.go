package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// settingsFile is the top-level structure of a settings file.
type settingsFile struct {
	Include  []string     `hcl:"include,optional"`
	Defaults *hclDefaults `hcl:"organization_defaults,block"`
}

// projectFile is the top-level structure of a project file. The project
// body is decoded separately, once the eval context is known.
type projectFile struct {
	Projects []*hclProject `hcl:"project,block"`
}

type hclProject struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// hclDefaults is the body shared by organization_defaults and project blocks.
type hclDefaults struct {
	GroupID       string `hcl:"group_id,optional"`
	ArtifactID    string `hcl:"artifact_id,optional"`
	Version       string `hcl:"version,optional"`
	Name          string `hcl:"name,optional"`
	Description   string `hcl:"description,optional"`
	URL           string `hcl:"url,optional"`
	InceptionYear string `hcl:"inception_year,optional"`

	Licenses        *hclLicenses        `hcl:"licenses,block"`
	Developers      *hclDevelopers      `hcl:"developers,block"`
	MailingLists    *hclMailingLists    `hcl:"mailing_lists,block"`
	Organization    *hclOrganization    `hcl:"organization,block"`
	IssueManagement *hclIssueManagement `hcl:"issue_management,block"`
	Scm             *hclScm             `hcl:"scm,block"`
}

type hclLicenses struct {
	Entries []*hclLicense `hcl:"license,block"`
}

type hclLicense struct {
	Type string `hcl:"type"`
}

type hclDevelopers struct {
	Entries []*hclDeveloper `hcl:"developer,block"`
}

type hclDeveloper struct {
	ID              string `hcl:"id,optional"`
	Name            string `hcl:"name,optional"`
	Email           string `hcl:"email,optional"`
	URL             string `hcl:"url,optional"`
	Organization    string `hcl:"organization,optional"`
	OrganizationURL string `hcl:"organization_url,optional"`
	Timezone        string `hcl:"timezone,optional"`
}

type hclMailingLists struct {
	Entries []*hclMailingList `hcl:"mailing_list,block"`
}

type hclMailingList struct {
	Name        string `hcl:"name,optional"`
	Subscribe   string `hcl:"subscribe,optional"`
	Unsubscribe string `hcl:"unsubscribe,optional"`
	Post        string `hcl:"post,optional"`
	Archive     string `hcl:"archive,optional"`
}

type hclOrganization struct {
	Name string `hcl:"name,optional"`
	URL  string `hcl:"url,optional"`
}

type hclIssueManagement struct {
	System string `hcl:"system,optional"`
	URL    string `hcl:"url,optional"`
}

type hclScm struct {
	Connection          string `hcl:"connection,optional"`
	DeveloperConnection string `hcl:"developer_connection,optional"`
	URL                 string `hcl:"url,optional"`
}
