package consumer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vk/orgdefaults/internal/metadata"
)

func acmeDefaults() metadata.Document {
	return metadata.New(
		metadata.WithGroupID("com.acme"),
		metadata.WithLicenses("Apache-2.0"),
		metadata.WithDevelopers(),
	)
}

func TestMerge_NoOverrides(t *testing.T) {
	got := Merge(acmeDefaults(), metadata.Empty())

	assert.Equal(t, "com.acme", got.GroupID)
	assert.Equal(t, []string{"Apache-2.0"}, got.LicenseIDs())
	assert.Empty(t, got.Developers)
}

func TestMerge_OverrideReplacesWholeGroup(t *testing.T) {
	overrides := metadata.New(
		metadata.WithGroupID("com.acme.sub"),
		metadata.WithLicenses("MIT"),
	)

	got := Merge(acmeDefaults(), overrides)

	assert.Equal(t, "com.acme.sub", got.GroupID)
	assert.Equal(t, []string{"MIT"}, got.LicenseIDs(), "licenses are replaced, not unioned")
}

func TestMerge_DeclaredEmptyListClearsDefaults(t *testing.T) {
	got := Merge(acmeDefaults(), metadata.New(metadata.WithLicenses()))

	require.NotNil(t, got.Licenses)
	assert.Empty(t, got.Licenses)
}

func TestMerge_AppendStrategy(t *testing.T) {
	defaults := metadata.New(
		metadata.WithDevelopers(metadata.Developer{ID: "lead"}),
		metadata.WithLicenses("Apache-2.0"),
	)
	overrides := metadata.New(
		metadata.WithDevelopers(metadata.Developer{ID: "contrib"}),
		metadata.WithLicenses(),
	)

	got, trace := MergeWithTrace(defaults, overrides, WithListStrategy(Append))

	require.Len(t, got.Developers, 2)
	assert.Equal(t, "lead", got.Developers[0].ID)
	assert.Equal(t, "contrib", got.Developers[1].ID)
	assert.Equal(t, OriginMerged, trace[metadata.FieldDevelopers])
	assert.Equal(t, []string{"Apache-2.0"}, got.LicenseIDs(), "appending nothing keeps the defaults")
}

func TestMerge_Singletons(t *testing.T) {
	defaults := metadata.New(
		metadata.WithOrganization(metadata.Organization{Name: "Acme", URL: "https://acme.example"}),
		metadata.WithScm(metadata.Scm{URL: "https://git.acme.example/root"}),
	)
	overrides := metadata.New(
		metadata.WithOrganization(metadata.Organization{Name: "Acme Labs"}),
	)

	got, trace := MergeWithTrace(defaults, overrides)

	require.NotNil(t, got.Organization)
	assert.Equal(t, metadata.Organization{Name: "Acme Labs"}, *got.Organization, "singletons are replaced as a whole")
	require.NotNil(t, got.Scm)
	assert.Equal(t, "https://git.acme.example/root", got.Scm.URL)
	assert.Nil(t, got.IssueManagement)

	assert.Equal(t, OriginOverride, trace[metadata.FieldOrganization])
	assert.Equal(t, OriginDefaults, trace[metadata.FieldScm])
	assert.Equal(t, OriginUnset, trace[metadata.FieldIssueManagement])
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	defaults := acmeDefaults()
	defaults.Organization = &metadata.Organization{Name: "Acme"}
	overrides := metadata.New(metadata.WithDevelopers(metadata.Developer{ID: "x"}))

	got := Merge(defaults, overrides)
	got.Licenses[0].Type = "changed"
	got.Developers[0].ID = "changed"
	got.Organization.Name = "changed"

	assert.Equal(t, "Apache-2.0", defaults.Licenses[0].Type)
	assert.Equal(t, "x", overrides.Developers[0].ID)
	assert.Equal(t, "Acme", defaults.Organization.Name)
}

func TestMergeWithTrace_Scalars(t *testing.T) {
	defaults := metadata.New(metadata.WithGroupID("com.acme"), metadata.WithVersion("1.0"))
	overrides := metadata.New(metadata.WithVersion("2.0"))

	_, trace := MergeWithTrace(defaults, overrides)

	assert.Equal(t, OriginDefaults, trace[metadata.FieldGroupID])
	assert.Equal(t, OriginOverride, trace[metadata.FieldVersion])
	assert.Equal(t, OriginUnset, trace[metadata.FieldName])
	assert.Len(t, trace, len(metadata.AllFields()))
}

// TestMerge_ScalarProperty checks the scalar merge rule over arbitrary
// defaults and partially set overrides.
func TestMerge_ScalarProperty(t *testing.T) {
	value := rapid.StringMatching(`[a-z0-9.]{0,8}`)

	rapid.Check(t, func(r *rapid.T) {
		var defaults, overrides metadata.Scalars
		for _, f := range metadata.ScalarFields() {
			_ = defaults.Set(f, value.Draw(r, "default_"+string(f)))
			_ = overrides.Set(f, value.Draw(r, "override_"+string(f)))
		}

		got := Merge(metadata.Document{Scalars: defaults}, metadata.Document{Scalars: overrides})

		for _, f := range metadata.ScalarFields() {
			gotV, _ := got.Get(f)
			if ov, ok := (metadata.Document{Scalars: overrides}).Get(f); ok {
				if gotV != ov {
					r.Fatalf("%s: got %q, want override %q", f, gotV, ov)
				}
				continue
			}
			dv, _ := (metadata.Document{Scalars: defaults}).Get(f)
			if gotV != dv {
				r.Fatalf("%s: got %q, want defaults %q", f, gotV, dv)
			}
		}
	})
}

func TestParseListStrategy(t *testing.T) {
	testCases := []struct {
		in        string
		expected  ListStrategy
		expectErr bool
	}{
		{in: "", expected: Replace},
		{in: "replace", expected: Replace},
		{in: "append", expected: Append},
		{in: "union", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseListStrategy(tc.in)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.expected.String(), got.String())
		})
	}
}
