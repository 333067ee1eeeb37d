package permission

import (
	"fmt"

	"github.com/locationgenius/dashboard/internal/shared/authorization"
	"github.com/locationgenius/dashboard/internal/shared/constants"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

// DefaultPolicies are installed at startup. Each role also inherits the
// grants of the role below it (admin > manager > user).
var DefaultPolicies = [][]string{
	{authorization.RoleUser.String(), constants.ResourceDashboard, constants.ActionRead},

	{authorization.RoleManager.String(), constants.ResourceMessageTemplate, constants.ActionRead},

	{authorization.RoleAdmin.String(), constants.ResourceMessageTemplate, constants.ActionWrite},
	{authorization.RoleAdmin.String(), constants.ResourceMessageTemplate, constants.ActionSend},
}

var defaultInheritance = [][2]authorization.UserRole{
	{authorization.RoleManager, authorization.RoleUser},
	{authorization.RoleAdmin, authorization.RoleManager},
}

// InitDefaultPermissions adds missing default grants; existing rows are kept.
func InitDefaultPermissions(e *Enforcer, log logger.Interface) error {
	for _, p := range DefaultPolicies {
		if err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}

	for _, pair := range defaultInheritance {
		if err := e.AddRoleInheritance(pair[0].String(), pair[1].String()); err != nil {
			return err
		}
	}

	log.Infow("default permissions initialized", "policies", len(DefaultPolicies))
	return nil
}
