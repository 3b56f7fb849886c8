// Package overwrite resolves output paths against an overwrite policy.
package overwrite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// Resolver decides where a file is written when the target may already exist.
type Resolver struct {
	policy domain.OverwritePolicy
	now    func() time.Time
}

// NewResolver creates a resolver. An invalid policy falls back to timestamp.
func NewResolver(policy domain.OverwritePolicy) *Resolver {
	if !policy.IsValid() {
		policy = domain.OverwriteTimestamp
	}
	return &Resolver{policy: policy, now: time.Now}
}

// Policy returns the active policy.
func (r *Resolver) Policy() domain.OverwritePolicy {
	return r.policy
}

// Resolve returns the path to write for path, or "" when the file exists and
// the policy is skip. With the timestamp policy an existing file yields
// <stem>_<unix><ext>, with a counter appended if that is taken too.
func (r *Resolver) Resolve(path string) (string, error) {
	exists, err := fileExists(path)
	if err != nil {
		return "", err
	}
	if !exists {
		return path, nil
	}

	switch r.policy {
	case domain.OverwriteReplace:
		return path, nil
	case domain.OverwriteSkip:
		return "", nil
	default:
		return r.timestamped(path)
	}
}

// ResolveAll applies the policy to a group of files that are written together.
// If any file exists, the whole group is skipped or suffixed with the same
// timestamp so the files stay paired.
func (r *Resolver) ResolveAll(paths []string) ([]string, error) {
	anyExists := false
	for _, p := range paths {
		exists, err := fileExists(p)
		if err != nil {
			return nil, err
		}
		anyExists = anyExists || exists
	}
	if !anyExists || r.policy == domain.OverwriteReplace {
		return paths, nil
	}
	if r.policy == domain.OverwriteSkip {
		return nil, nil
	}

	ts := r.now().Unix()
	for n := 0; ; n++ {
		suffix := "_" + strconv.FormatInt(ts, 10)
		if n > 0 {
			suffix += "_" + strconv.Itoa(n)
		}
		out := make([]string, len(paths))
		taken := false
		for i, p := range paths {
			out[i] = withSuffix(p, suffix)
			exists, err := fileExists(out[i])
			if err != nil {
				return nil, err
			}
			taken = taken || exists
		}
		if !taken {
			return out, nil
		}
	}
}

func (r *Resolver) timestamped(path string) (string, error) {
	out, err := r.ResolveAll([]string{path})
	if err != nil || len(out) == 0 {
		return "", err
	}
	return out[0], nil
}

// withSuffix inserts suffix before the final extension.
func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
