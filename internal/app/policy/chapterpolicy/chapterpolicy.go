// internal/app/policy/chapterpolicy/chapterpolicy.go
package chapterpolicy

import (
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
)

// CanBeLead reports whether candidate may be assigned as a chapter lead.
// Admins are rejected: the admin role sits above chapter structure and
// mixing the two would make role checks ambiguous.
func CanBeLead(candidate *models.User) error {
	if candidate.Role == models.RoleAdmin {
		return apperr.Validation("An Admin cannot be assigned as a Chapter Lead.")
	}
	return nil
}

// RoleAfterLeadAssign returns the role candidate should hold once assigned
// as a lead: students are promoted, existing leads keep their role.
func RoleAfterLeadAssign(candidate *models.User) models.Role {
	if candidate.Role == models.RoleStudent {
		return models.RoleChapterLead
	}
	return candidate.Role
}
