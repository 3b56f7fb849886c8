package manifest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure YAMLReader implements the interface.
var _ driven.ManifestReader = (*YAMLReader)(nil)

// yamlManifest is the mapping form of a YAML manifest.
type yamlManifest struct {
	Links []domain.FilingLink `yaml:"links"`
}

// YAMLReader reads YAML manifests.
type YAMLReader struct{}

// NewYAMLReader creates a new YAML manifest reader.
func NewYAMLReader() *YAMLReader {
	return &YAMLReader{}
}

// Extensions returns the accepted file extensions.
func (r *YAMLReader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Read parses the manifest at path.
func (r *YAMLReader) Read(ctx context.Context, path string) (*domain.Manifest, error) {
	if !hasExtension(path, r.Extensions()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	links, err := decodeLinks(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	return &domain.Manifest{
		Name:  nameFromPath(path),
		Path:  path,
		Links: cleanLinks(links),
	}, nil
}

// decodeLinks accepts either a top-level sequence or a mapping with "links".
func decodeLinks(data []byte) ([]domain.FilingLink, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var links []domain.FilingLink
		if err := root.Decode(&links); err != nil {
			return nil, err
		}
		return links, nil
	case yaml.MappingNode:
		var m yamlManifest
		if err := root.Decode(&m); err != nil {
			return nil, err
		}
		return m.Links, nil
	default:
		return nil, fmt.Errorf("%w: expected a list of links", domain.ErrInvalidInput)
	}
}

// cleanLinks trims every field and drops links without a URL.
func cleanLinks(links []domain.FilingLink) []domain.FilingLink {
	out := make([]domain.FilingLink, 0, len(links))
	for _, l := range links {
		l.URL = strings.TrimSpace(l.URL)
		if l.URL == "" {
			continue
		}
		l.FormType = strings.TrimSpace(l.FormType)
		l.Period = strings.TrimSpace(l.Period)
		out = append(out, l)
	}
	return out
}
