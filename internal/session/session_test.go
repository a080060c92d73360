package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vk/orgdefaults/internal/config"
	"github.com/vk/orgdefaults/internal/consumer"
	"github.com/vk/orgdefaults/internal/hcl"
	"github.com/vk/orgdefaults/internal/metadata"
	"github.com/vk/orgdefaults/internal/registry"
	"github.com/vk/orgdefaults/internal/yamlcfg"
)

const rootSettings = `
organization_defaults {
  group_id = "com.acme"
  version  = "1.0.0"
  licenses {
    license { type = "Apache-2.0" }
  }
  organization {
    name = "Acme"
  }
}
`

func loader() config.Loader {
	return config.ByExtension{
		".hcl":  hcl.NewLoader(),
		".yaml": yamlcfg.NewLoader(),
	}
}

// writeBuild lays out files under a temp root and returns the settings path.
func writeBuild(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return filepath.Join(root, "settings.hcl")
}

func TestRun_DiscoversAndMerges(t *testing.T) {
	defer goleak.VerifyNone(t)

	settings := writeBuild(t, map[string]string{
		"settings.hcl": rootSettings,
		"services/api/project.hcl": `
project "api" {
  artifact_id = "api"
  group_id    = "${defaults.group_id}.services"
  licenses {
    license { type = "MIT" }
  }
}
`,
		"libs/core/project.yaml": "project: core\noverrides:\n  artifact_id: core\n",
	})

	s := New(loader(), Config{SettingsPath: settings, Workers: 4})
	report, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, s.ID, report.SessionID)
	assert.Equal(t, "com.acme", report.Defaults.GroupID)
	require.Len(t, report.Projects, 2)

	core, api := report.Projects[0], report.Projects[1]
	require.Equal(t, "core", core.Project.Name)
	require.Equal(t, "api", api.Project.Name)

	assert.Equal(t, "com.acme", core.Effective.GroupID)
	assert.Equal(t, "core", core.Effective.ArtifactID)
	assert.Equal(t, []string{"Apache-2.0"}, core.Effective.LicenseIDs())
	assert.Equal(t, consumer.OriginDefaults, core.Provenance[metadata.FieldLicenses])

	assert.Equal(t, "com.acme.services", api.Effective.GroupID)
	assert.Equal(t, "1.0.0", api.Effective.Version)
	assert.Equal(t, []string{"MIT"}, api.Effective.LicenseIDs())
	assert.Equal(t, consumer.OriginOverride, api.Provenance[metadata.FieldGroupID])
	assert.Equal(t, "Acme", api.Effective.Organization.Name)

	// The registry still holds the unmodified defaults.
	assert.Equal(t, report.Defaults, s.Registry().Fetch(context.Background()))
}

func TestRun_Include(t *testing.T) {
	settings := writeBuild(t, map[string]string{
		"settings.hcl":  "include = [\"b\"]\n" + rootSettings,
		"a/project.hcl": `project "a" {}`,
		"b/project.hcl": `project "b" {}`,
	})

	report, err := New(loader(), Config{SettingsPath: settings}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Projects, 1)
	assert.Equal(t, "b", report.Projects[0].Project.Name)
}

func TestRun_IncludeDuplicates(t *testing.T) {
	settings := writeBuild(t, map[string]string{
		"settings.hcl":  "include = [\"a\", \"a/\", \"./a\"]\n" + rootSettings,
		"a/project.hcl": `project "a" {}`,
	})

	report, err := New(loader(), Config{SettingsPath: settings}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Projects, 1)
	assert.Equal(t, "a", report.Projects[0].Project.Name)
}

func TestRun_IncludeWithoutProjectFile(t *testing.T) {
	settings := writeBuild(t, map[string]string{
		"settings.hcl": "include = [\"missing\"]\n" + rootSettings,
	})

	_, err := New(loader(), Config{SettingsPath: settings}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `included project "missing"`)
}

func TestRun_ProjectFilter(t *testing.T) {
	settings := writeBuild(t, map[string]string{
		"settings.hcl":  rootSettings,
		"a/project.hcl": `project "a" {}`,
		"b/project.hcl": `project "b" {}`,
	})

	report, err := New(loader(), Config{SettingsPath: settings, Projects: []string{"b"}}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Projects, 1)
	assert.Equal(t, "b", report.Projects[0].Project.Name)

	_, err = New(loader(), Config{SettingsPath: settings, Projects: []string{"zzz"}}).Run(context.Background())
	require.ErrorContains(t, err, `unknown project "zzz"`)
}

func TestRun_DuplicateProjectName(t *testing.T) {
	settings := writeBuild(t, map[string]string{
		"settings.hcl":  rootSettings,
		"a/project.hcl": `project "same" {}`,
		"b/project.hcl": `project "same" {}`,
	})

	_, err := New(loader(), Config{SettingsPath: settings, Workers: 2}).Run(context.Background())
	require.ErrorContains(t, err, `project "same" is declared by both`)
}

func TestRun_ProjectErrorStopsSession(t *testing.T) {
	defer goleak.VerifyNone(t)

	settings := writeBuild(t, map[string]string{
		"settings.hcl":  rootSettings,
		"a/project.hcl": `project "a" { bogus = 1 }`,
		"b/project.hcl": `project "b" {}`,
	})

	_, err := New(loader(), Config{SettingsPath: settings, Workers: 2}).Run(context.Background())
	require.Error(t, err)
}

func TestRun_AppendStrategy(t *testing.T) {
	settings := writeBuild(t, map[string]string{
		"settings.hcl": rootSettings,
		"a/project.hcl": `
project "a" {
  licenses {
    license { type = "MIT" }
  }
}
`,
	})

	report, err := New(loader(), Config{SettingsPath: settings, ListStrategy: consumer.Append}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Apache-2.0", "MIT"}, report.Projects[0].Effective.LicenseIDs())
}

func TestBootstrap_Twice(t *testing.T) {
	settings := writeBuild(t, map[string]string{"settings.hcl": rootSettings})
	ctx := context.Background()

	lenient := New(loader(), Config{SettingsPath: settings})
	_, err := lenient.Bootstrap(ctx)
	require.NoError(t, err)
	_, err = lenient.Bootstrap(ctx)
	require.NoError(t, err)

	strict := New(loader(), Config{SettingsPath: settings, Strict: true})
	_, err = strict.Bootstrap(ctx)
	require.NoError(t, err)
	_, err = strict.Bootstrap(ctx)
	require.ErrorIs(t, err, registry.ErrAlreadyRegistered)
}

func TestBootstrap_InferScmWithoutRepository(t *testing.T) {
	settings := writeBuild(t, map[string]string{"settings.hcl": rootSettings})

	defaults, err := New(loader(), Config{SettingsPath: settings, InferScm: true}).Bootstrap(context.Background())
	require.NoError(t, err, "a missing remote is only a warning")
	assert.Nil(t, defaults.Scm)
}

func TestDiscover_BeforeBootstrap(t *testing.T) {
	_, err := New(loader(), Config{SettingsPath: "settings.hcl"}).Discover(context.Background())
	require.Error(t, err)
}

func TestBootstrap_MissingSettings(t *testing.T) {
	_, err := New(loader(), Config{SettingsPath: filepath.Join(t.TempDir(), "settings.hcl")}).Bootstrap(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}
