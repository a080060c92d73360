package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/orgdefaults/internal/config"
	"github.com/vk/orgdefaults/internal/metadata"
)

const settingsHCL = `
include = ["services/api"]

organization_defaults {
  group_id = "com.acme"
  version  = env("RELEASE_VERSION", "0.0.0-SNAPSHOT")

  licenses {
    license { type = "Apache-2.0" }
  }

  developers {
    developer {
      id   = "jdoe"
      name = "Jane Doe"
    }
    developer {
      id = "rroe"
    }
  }

  organization {
    name = "Acme"
    url  = "https://acme.io"
  }
}
`

func fakeEnv(vars map[string]string) LoaderOption {
	return WithLookupEnv(func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	})
}

func TestParseSettings(t *testing.T) {
	loader := NewLoader(fakeEnv(map[string]string{"RELEASE_VERSION": "1.4.0"}))

	settings, err := loader.ParseSettings(context.Background(), []byte(settingsHCL), "settings.hcl")
	require.NoError(t, err)

	assert.Equal(t, "settings.hcl", settings.Source)
	assert.Equal(t, []string{"services/api"}, settings.Include)

	doc := settings.Declaration.Snapshot()
	assert.Equal(t, "com.acme", doc.GroupID)
	assert.Equal(t, "1.4.0", doc.Version)
	assert.Equal(t, []string{"Apache-2.0"}, doc.LicenseIDs())
	require.Len(t, doc.Developers, 2)
	assert.Equal(t, "Jane Doe", doc.Developers[0].Name)
	assert.Equal(t, "rroe", doc.Developers[1].ID)
	assert.Nil(t, doc.MailingLists, "mailing lists were never declared")
	assert.Equal(t, &metadata.Organization{Name: "Acme", URL: "https://acme.io"}, doc.Organization)
	assert.Nil(t, doc.Scm)
}

func TestParseSettings_EnvDefault(t *testing.T) {
	loader := NewLoader(fakeEnv(nil))

	settings, err := loader.ParseSettings(context.Background(), []byte(settingsHCL), "settings.hcl")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0-SNAPSHOT", settings.Declaration.Snapshot().Version)
}

func TestParseSettings_MissingBlock(t *testing.T) {
	_, err := NewLoader().ParseSettings(context.Background(), []byte(`include = []`), "settings.hcl")
	require.ErrorIs(t, err, config.ErrNoSettings)
}

func TestParseSettings_SyntaxError(t *testing.T) {
	_, err := NewLoader().ParseSettings(context.Background(), []byte(`organization_defaults {`), "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.hcl")
}

func TestParseSettings_LicenseTypeRequired(t *testing.T) {
	src := `
organization_defaults {
  licenses {
    license {}
  }
}
`
	_, err := NewLoader().ParseSettings(context.Background(), []byte(src), "settings.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type")
}

func TestParseProject_ReferencesDefaults(t *testing.T) {
	defaults := metadata.New(
		metadata.WithGroupID("com.acme"),
		metadata.WithLicenses("Apache-2.0"),
	)
	src := `
project "api" {
  artifact_id = "api"
  group_id    = "${defaults.group_id}.services"
  description = upper(defaults.licenses[0].type)
}
`
	project, err := NewLoader().ParseProject(context.Background(), []byte(src), "services/api/project.hcl", defaults)
	require.NoError(t, err)

	assert.Equal(t, "api", project.Name)
	assert.Equal(t, filepath.Join("services", "api"), project.Dir)
	assert.Equal(t, "com.acme.services", project.Overrides.GroupID)
	assert.Equal(t, "api", project.Overrides.ArtifactID)
	assert.Equal(t, "APACHE-2.0", project.Overrides.Description)
	assert.Nil(t, project.Overrides.Licenses, "no licenses block, so the group stays undeclared")
}

func TestParseProject_EmptyGroupIsDeclared(t *testing.T) {
	src := `
project "core" {
  developers {}
}
`
	project, err := NewLoader().ParseProject(context.Background(), []byte(src), "project.hcl", metadata.Empty())
	require.NoError(t, err)
	require.NotNil(t, project.Overrides.Developers)
	assert.Empty(t, project.Overrides.Developers)
}

func TestParseProject_UnsetDefaultsAreEmptyStrings(t *testing.T) {
	src := `
project "core" {
  url = defaults.organization.url == "" ? "https://fallback.example" : defaults.organization.url
}
`
	project, err := NewLoader().ParseProject(context.Background(), []byte(src), "project.hcl", metadata.Empty())
	require.NoError(t, err)
	assert.Equal(t, "https://fallback.example", project.Overrides.URL)
}

func TestParseProject_BlockCount(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "missing", src: `# nothing here`, wantErr: "Missing \"project\" block"},
		{name: "duplicate", src: "project \"a\" {}\nproject \"b\" {}\n", wantErr: "Duplicate \"project\" block"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().ParseProject(context.Background(), []byte(tc.src), "project.hcl", metadata.Empty())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseProject_UnknownAttribute(t *testing.T) {
	src := `
project "api" {
  colour = "blue"
}
`
	_, err := NewLoader().ParseProject(context.Background(), []byte(src), "project.hcl", metadata.Empty())
	require.Error(t, err)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.hcl")
	projectPath := filepath.Join(dir, "project.hcl")
	require.NoError(t, os.WriteFile(settingsPath, []byte(settingsHCL), 0o644))
	require.NoError(t, os.WriteFile(projectPath, []byte(`project "root" { name = "Root" }`), 0o644))

	loader := NewLoader(fakeEnv(nil))
	settings, err := loader.LoadSettings(context.Background(), settingsPath)
	require.NoError(t, err)
	assert.Equal(t, settingsPath, settings.Source)

	project, err := loader.LoadProject(context.Background(), projectPath, settings.Declaration.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, "Root", project.Overrides.Name)
	assert.Equal(t, dir, project.Dir)

	_, err = loader.LoadSettings(context.Background(), filepath.Join(dir, "missing.hcl"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseProject_RejectsPathLikeNames(t *testing.T) {
	for _, name := range []string{"../escaped", "a/b", ".."} {
		src := fmt.Sprintf("project %q {}\n", name)
		_, err := NewLoader().ParseProject(context.Background(), []byte(src), "project.hcl", metadata.Empty())
		require.ErrorIs(t, err, config.ErrInvalidProjectName, "name %q", name)
	}
}
