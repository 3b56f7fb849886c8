package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitlesNormalize_Args(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	stdout, _, err := execute(t, "titles", "normalize", "*W EXP 01/15/2025", "*W EXP 99/99/9999", "COM")

	require.NoError(t, err)
	assert.Equal(t, "Warrant (expires 2025-01-15)\nWarrant (expiry unknown)\nCOM\n", stdout)
}

func TestTitlesNormalize_Category(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	stdout, _, err := execute(t, "titles", "normalize", "-c", "*W EXP 01/15/2025")

	require.NoError(t, err)
	assert.Equal(t, "Warrant (expires 2025-01-15)\tWarrant\n", stdout)
}

func TestTitlesNormalize_Stdin(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	stdout, _, err := executeWithInput(t, "*W EXP 12/31/2026\r\nCL A\n", "titles", "normalize")

	require.NoError(t, err)
	assert.Equal(t, "Warrant (expires 2026-12-31)\nCL A\n", stdout)
}

func TestTitlesNormalize_Detailed(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	stdout, _, err := execute(t, "titles", "normalize", "--detailed", "ISHARES TR")

	require.NoError(t, err)
	assert.Contains(t, stdout, "ISHARES TR\t")
}
