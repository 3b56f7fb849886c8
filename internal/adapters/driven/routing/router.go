// Package routing maps manifest names to target directories.
package routing

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure Router implements the interface.
var _ driven.Router = (*Router)(nil)

// Router applies keyword rules in order. The first rule whose keyword occurs
// in the name, ignoring case, wins.
type Router struct {
	rules []domain.RouteRule
}

// NewRouter creates a router. Rules with an empty keyword are dropped and
// a rule without a target routes to its keyword.
func NewRouter(rules []domain.RouteRule) *Router {
	kept := make([]domain.RouteRule, 0, len(rules))
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" {
			continue
		}
		target := strings.TrimSpace(r.Target)
		if target == "" {
			target = kw
		}
		kept = append(kept, domain.RouteRule{Keyword: kw, Target: target})
	}
	return &Router{rules: kept}
}

// Route returns the target for name.
func (r *Router) Route(name string) (string, error) {
	lower := strings.ToLower(name)
	for _, rule := range r.rules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Target, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrNoRoute, name)
}

// Rules returns a copy of the normalised rules.
func (r *Router) Rules() []domain.RouteRule {
	out := make([]domain.RouteRule, len(r.rules))
	copy(out, r.rules)
	return out
}
