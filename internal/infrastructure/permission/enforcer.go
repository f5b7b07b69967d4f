// Package permission decides which roles may call which HTTP routes.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/clubsaas/clubsaas/internal/shared/authorization"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// routeModel matches a role against a gin-style path pattern and a method
// regex. keyMatch2 understands ":id" and "*" segments.
const routeModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// DefaultPolicies is the route table for authenticated endpoints.
func DefaultPolicies() [][]string {
	super := authorization.RoleSuperAdmin.String()
	policies := [][]string{
		{super, "/api/clubs", "^(GET|POST)$"},
		{super, "/api/saas/*", "^(GET|POST)$"},
	}
	for _, role := range authorization.AllRoles() {
		if role.IsSuperAdmin() {
			continue
		}
		policies = append(policies,
			[]string{role.String(), "/api/club", "^GET$"},
			[]string{role.String(), "/api/billing/status", "^GET$"},
		)
	}
	return policies
}

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(policies [][]string, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(routeModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if len(policies) > 0 {
		if _, err := enforcer.AddPolicies(policies); err != nil {
			return nil, fmt.Errorf("failed to add policies: %w", err)
		}
	}

	log.Infow("route permissions loaded", "policy_count", len(policies))
	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role, path, method string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, path, method)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "path", path, "method", method)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

func (e *Enforcer) AddPolicy(role, path, methods string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(role, path, methods); err != nil {
		e.logger.Errorw("failed to add policy", "error", err)
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return nil
}
