package hcl

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/orgdefaults/internal/metadata"
	"github.com/zclconf/go-cty/cty"
)

// RenderSettings renders doc as an organization_defaults block.
func RenderSettings(doc metadata.Document) []byte {
	f := hclwrite.NewEmptyFile()
	block := f.Body().AppendNewBlock("organization_defaults", nil)
	writeDocument(block.Body(), doc)
	return f.Bytes()
}

// RenderProject renders doc as a `project "<name>"` block.
func RenderProject(name string, doc metadata.Document) []byte {
	f := hclwrite.NewEmptyFile()
	block := f.Body().AppendNewBlock("project", []string{name})
	writeDocument(block.Body(), doc)
	return f.Bytes()
}

func writeDocument(body *hclwrite.Body, doc metadata.Document) {
	for _, field := range metadata.ScalarFields() {
		if v, ok := doc.Get(field); ok {
			body.SetAttributeValue(string(field), cty.StringVal(v))
		}
	}

	if doc.Declared(metadata.FieldLicenses) {
		group := body.AppendNewBlock(string(metadata.FieldLicenses), nil).Body()
		for _, l := range doc.Licenses {
			writeAttrs(group.AppendNewBlock("license", nil).Body(), [][2]string{{"type", l.Type}})
		}
	}
	if doc.Declared(metadata.FieldDevelopers) {
		group := body.AppendNewBlock(string(metadata.FieldDevelopers), nil).Body()
		for _, d := range doc.Developers {
			writeAttrs(group.AppendNewBlock("developer", nil).Body(), [][2]string{
				{"id", d.ID},
				{"name", d.Name},
				{"email", d.Email},
				{"url", d.URL},
				{"organization", d.Organization},
				{"organization_url", d.OrganizationURL},
				{"timezone", d.Timezone},
			})
		}
	}
	if doc.Declared(metadata.FieldMailingLists) {
		group := body.AppendNewBlock(string(metadata.FieldMailingLists), nil).Body()
		for _, m := range doc.MailingLists {
			writeAttrs(group.AppendNewBlock("mailing_list", nil).Body(), [][2]string{
				{"name", m.Name},
				{"subscribe", m.Subscribe},
				{"unsubscribe", m.Unsubscribe},
				{"post", m.Post},
				{"archive", m.Archive},
			})
		}
	}
	if o := doc.Organization; o != nil {
		writeAttrs(body.AppendNewBlock(string(metadata.FieldOrganization), nil).Body(), [][2]string{
			{"name", o.Name},
			{"url", o.URL},
		})
	}
	if im := doc.IssueManagement; im != nil {
		writeAttrs(body.AppendNewBlock(string(metadata.FieldIssueManagement), nil).Body(), [][2]string{
			{"system", im.System},
			{"url", im.URL},
		})
	}
	if s := doc.Scm; s != nil {
		writeAttrs(body.AppendNewBlock(string(metadata.FieldScm), nil).Body(), [][2]string{
			{"connection", s.Connection},
			{"developer_connection", s.DeveloperConnection},
			{"url", s.URL},
		})
	}
}

// writeAttrs sets the non-empty attributes in the given order.
func writeAttrs(body *hclwrite.Body, attrs [][2]string) {
	for _, kv := range attrs {
		if kv[1] != "" {
			body.SetAttributeValue(kv[0], cty.StringVal(kv[1]))
		}
	}
}
