package permission

import (
	"fmt"

	"fitout/internal/shared/logger"
)

// InitDefaultPolicies seeds the role policy table. Resources are the route
// groups of the admin console; actions are read and write. Seeding is
// idempotent, AddPolicy ignores existing rows.
func InitDefaultPolicies(e *Enforcer, log logger.Interface) error {
	resources := []string{
		"clients", "apartments", "vendors", "products",
		"orders", "deliveries", "payments",
		"issues", "notifications", "users",
	}

	var policies [][]string
	for _, resource := range resources {
		policies = append(policies,
			[]string{"admin", resource, "read"},
			[]string{"admin", resource, "write"},
			[]string{"manager", resource, "read"},
		)
		// Managers write everywhere except account administration.
		if resource != "users" {
			policies = append(policies, []string{"manager", resource, "write"})
		}
		policies = append(policies, []string{"readonly", resource, "read"})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, policy := range policies {
		if _, err := e.enforcer.AddPolicy(policy); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err, "role", policy[0], "resource", policy[1], "action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if err := e.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to save default policies: %w", err)
	}

	log.Info("default permission policies initialized")
	return nil
}
