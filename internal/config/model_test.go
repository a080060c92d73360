package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProjectName(t *testing.T) {
	for _, name := range []string{"api", "core-lib", "v1.2", "my_project"} {
		assert.NoError(t, ValidateProjectName(name), name)
	}

	for _, name := range []string{"", "  ", ".", "..", "../escaped", "a/b", `a\b`, "x..y"} {
		err := ValidateProjectName(name)
		require.ErrorIs(t, err, ErrInvalidProjectName, "name %q", name)
	}
}
