// Package archive stores downloaded submissions on disk.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/overwrite"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/logger"
)

// Ensure Archive implements the interface.
var _ driven.SubmissionArchive = (*Archive)(nil)

// Archive writes submissions under a root directory, one subdirectory per
// route target.
type Archive struct {
	root     string
	resolver *overwrite.Resolver
}

// NewArchive creates an archive rooted at rawDir.
func NewArchive(rawDir string, policy domain.OverwritePolicy) *Archive {
	return &Archive{root: rawDir, resolver: overwrite.NewResolver(policy)}
}

// Save writes data to <root>/<target>/<period>.txt.
func (a *Archive) Save(ctx context.Context, target, period string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkComponent("target", target); err != nil {
		return "", err
	}
	if err := checkComponent("period", period); err != nil {
		return "", err
	}

	dir := filepath.Join(a.root, target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	path, err := a.resolver.Resolve(filepath.Join(dir, period+".txt"))
	if err != nil {
		return "", err
	}
	if path == "" {
		logger.Debug("keeping existing submission %s/%s.txt", target, period)
		return "", nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write submission: %w", err)
	}
	logger.Debug("saved %d bytes to %s", len(data), path)
	return path, nil
}

// checkComponent rejects values that would escape the target directory.
func checkComponent(name, value string) error {
	if value == "" || value == "." || value == ".." ||
		strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("%w: unsafe %s %q", domain.ErrInvalidInput, name, value)
	}
	return nil
}
