// internal/app/policy/userpolicy/userpolicy.go

// Package userpolicy holds the pure authorization rules for user profile
// changes, password changes, and vouching. Every check takes fully loaded
// users so the rules stay testable without a database.
package userpolicy

import (
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanUpdate reports whether actor may touch target's profile at all.
// Users update their own profile; admins update anyone's.
func CanUpdate(actor, target *models.User) error {
	if actor.ID != target.ID && actor.Role != models.RoleAdmin {
		return apperr.Forbidden("Not authorized to update this user.")
	}
	return nil
}

// CanChangeRole guards role changes. Only admins change roles, and an admin
// cannot move themselves off the admin role: that could leave the system
// with no one able to administer it.
func CanChangeRole(actor, target *models.User, newRole models.Role) error {
	if actor.Role != models.RoleAdmin {
		return apperr.Forbidden("Only Admins can change user roles.")
	}
	if !newRole.Valid() {
		return apperr.Validation("Invalid role provided.")
	}
	if actor.ID == target.ID && newRole != models.RoleAdmin {
		return apperr.Forbidden("Admins cannot demote themselves.")
	}
	return nil
}

// CanChangeChapter guards chapter reassignment. Chapter leads and admins
// have their chapter managed by admins only; students may move themselves.
func CanChangeChapter(actor, target *models.User) error {
	if target.Role != models.RoleStudent && actor.Role != models.RoleAdmin {
		return apperr.Forbidden("Only Admins can manage chapters for Chapter Leads or other Admins.")
	}
	return nil
}

// CanVouch reports whether voucher may vouch for target. Admins vouch for
// anyone; chapter leads only for members of their own chapter.
func CanVouch(voucher, target *models.User) error {
	if voucher.ID == target.ID {
		return apperr.Validation("Cannot vouch for yourself")
	}
	switch voucher.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleChapterLead:
		if voucher.Chapter == nil || target.Chapter == nil || *voucher.Chapter != *target.Chapter {
			return apperr.Forbidden("Chapter Leads can only vouch for members within their own assigned chapter.")
		}
		return nil
	default:
		return apperr.Forbidden("Not authorized to vouch for users")
	}
}

// CanViewRegisteredEvents restricts a user's event registrations to the
// user themselves and admins.
func CanViewRegisteredEvents(actor *models.User, targetID primitive.ObjectID) error {
	if actor.ID != targetID && actor.Role != models.RoleAdmin {
		return apperr.Forbidden("Not authorized to view these events")
	}
	return nil
}

// CanChangePassword allows only the account owner. Admins get no backdoor
// here; a reset flow would be a separate feature.
func CanChangePassword(actor *models.User, targetID primitive.ObjectID) error {
	if actor.ID != targetID {
		return apperr.Forbidden("Not authorized to change this password.")
	}
	return nil
}
