package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestYAMLReader_Sequence(t *testing.T) {
	path := writeFile(t, "blackrock_13f.yaml", `
- form_type: 13F-HR
  url: https://www.sec.gov/a/index.htm
  period: "20231231"
- form_type: " 13F-HR/A "
  url: " https://www.sec.gov/b/index.htm "
- form_type: 13F-HR
  url: ""
`)

	m, err := NewYAMLReader().Read(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "blackrock_13f", m.Name)
	assert.Equal(t, path, m.Path)
	require.Len(t, m.Links, 2)
	assert.Equal(t, domain.FilingLink{FormType: "13F-HR", URL: "https://www.sec.gov/a/index.htm", Period: "20231231"}, m.Links[0])
	assert.Equal(t, domain.FilingLink{FormType: "13F-HR/A", URL: "https://www.sec.gov/b/index.htm"}, m.Links[1])
}

func TestYAMLReader_Mapping(t *testing.T) {
	path := writeFile(t, "vanguard.yml", `
links:
  - form_type: 13F-HR
    url: https://www.sec.gov/v/index.htm
`)

	m, err := NewYAMLReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "vanguard", m.Name)
	require.Len(t, m.Links, 1)
	assert.Equal(t, "https://www.sec.gov/v/index.htm", m.Links[0].URL)
}

func TestYAMLReader_Empty(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")

	m, err := NewYAMLReader().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, m.Links)
}

func TestYAMLReader_Scalar(t *testing.T) {
	path := writeFile(t, "bad.yaml", "just a string\n")

	_, err := NewYAMLReader().Read(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestYAMLReader_Malformed(t *testing.T) {
	path := writeFile(t, "bad.yaml", "links: [unterminated\n")

	_, err := NewYAMLReader().Read(context.Background(), path)
	assert.Error(t, err)
}

func TestYAMLReader_UnsupportedExtension(t *testing.T) {
	_, err := NewYAMLReader().Read(context.Background(), "links.json")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestYAMLReader_MissingFile(t *testing.T) {
	_, err := NewYAMLReader().Read(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLReader_Extensions(t *testing.T) {
	assert.Equal(t, []string{".yaml", ".yml"}, NewYAMLReader().Extensions())
}
