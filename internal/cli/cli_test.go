package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/orgdefaults/internal/app"
)

const settingsHCL = `
organization_defaults {
  group_id = "com.acme"
  licenses {
    license { type = "Apache-2.0" }
  }
}
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), &out, &errOut, args, app.DefaultLoader())
	return out.String(), errOut.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func writeBuild(t *testing.T, project string) string {
	t.Helper()
	return app.WriteBuild(t, map[string]string{
		"settings.hcl":      settingsHCL,
		"api/project.hcl":   project,
		"config/flags.yaml": "format: yaml\nlist-strategy: append\n",
	})
}

func TestShow(t *testing.T) {
	root := writeBuild(t, `project "api" {}`)

	out, _, err := run(t, "show", filepath.Join(root, "settings.hcl"), "--format", "hcl")
	require.NoError(t, err)
	assert.Contains(t, out, "organization_defaults {")
	assert.Contains(t, out, `group_id = "com.acme"`)
}

func TestResolve_ConfigFile(t *testing.T) {
	root := writeBuild(t, `
project "api" {
  licenses {
    license { type = "MIT" }
  }
}
`)

	out, _, err := run(t, "resolve", filepath.Join(root, "settings.hcl"), "--config", filepath.Join(root, "config", "flags.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "name: api")
	assert.Contains(t, out, "type: Apache-2.0")
	assert.Contains(t, out, "type: MIT", "append strategy keeps both licenses")
}

func TestResolve_EnvOverridesDefault(t *testing.T) {
	root := writeBuild(t, `project "api" {}`)
	t.Setenv("ORGDEFAULTS_FORMAT", "yaml")

	out, _, err := run(t, "resolve", filepath.Join(root, "settings.hcl"))
	require.NoError(t, err)
	assert.Contains(t, out, "session_id:")
}

func TestExplain(t *testing.T) {
	root := writeBuild(t, `project "api" { artifact_id = "api" }`)

	out, _, err := run(t, "explain", "api", filepath.Join(root, "settings.hcl"))
	require.NoError(t, err)
	assert.Regexp(t, `artifact_id\s+override\s+api`, out)
}

func TestCheck_Findings(t *testing.T) {
	root := writeBuild(t, `
project "api" {
  inception_year = "last year"
}
`)

	out, _, err := run(t, "check", filepath.Join(root, "settings.hcl"))
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "1 problem(s) found")
	assert.Contains(t, out, "not a four-digit year")
}

func TestCheck_Clean(t *testing.T) {
	root := writeBuild(t, `project "api" {}`)

	out, _, err := run(t, "check", filepath.Join(root, "settings.hcl"))
	require.NoError(t, err)
	assert.Contains(t, out, "No problems found.")
}

func TestExitCodes(t *testing.T) {
	root := writeBuild(t, `project "api" {}`)
	settings := filepath.Join(root, "settings.hcl")

	testCases := []struct {
		name string
		args []string
		code int
	}{
		{name: "unknown flag", args: []string{"show", "--nope"}, code: 2},
		{name: "unknown command", args: []string{"frobnicate"}, code: 2},
		{name: "too many args", args: []string{"show", "a", "b"}, code: 2},
		{name: "explain without project", args: []string{"explain"}, code: 2},
		{name: "bad format", args: []string{"show", settings, "--format", "toml"}, code: 2},
		{name: "bad workers", args: []string{"resolve", settings, "--workers", "0"}, code: 2},
		{name: "missing config file", args: []string{"show", settings, "--config", filepath.Join(root, "nope.yaml")}, code: 2},
		{name: "missing settings", args: []string{"show", filepath.Join(root, "missing.hcl")}, code: 1},
		{name: "unsupported settings format", args: []string{"show", filepath.Join(root, "settings.toml")}, code: 1},
		{name: "unknown project", args: []string{"explain", "web", settings}, code: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, tc.args...)
			assert.Equal(t, tc.code, exitCode(t, err))
		})
	}
}

func TestSettingsPath_CurrentDirectory(t *testing.T) {
	root := writeBuild(t, `project "api" {}`)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	p, err := settingsPath(nil)
	require.NoError(t, err)
	assert.Equal(t, "settings.hcl", p)

	require.NoError(t, os.Chdir(t.TempDir()))
	_, err = settingsPath(nil)
	assert.Equal(t, 2, exitCode(t, err))
}
