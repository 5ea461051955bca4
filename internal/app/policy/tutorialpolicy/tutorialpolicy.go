// internal/app/policy/tutorialpolicy/tutorialpolicy.go

// Package tutorialpolicy holds the tutorial approval workflow rules:
// who may see, edit, and delete tutorials, and how a tutorial's status
// moves between pending, approved, and rejected.
package tutorialpolicy

import (
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
)

// InitialStatus returns the status a freshly created tutorial gets.
// Admin-authored tutorials skip review.
func InitialStatus(author *models.User) models.TutorialStatus {
	if author.Role == models.RoleAdmin {
		return models.StatusApproved
	}
	return models.StatusPending
}

// CanView reports whether viewer may read the tutorial. Approved tutorials
// are public; pending and rejected ones are visible only to their author
// and admins. viewer may be nil for anonymous requests.
func CanView(viewer *models.User, t *models.Tutorial) error {
	if t.Status == models.StatusApproved {
		return nil
	}
	if viewer == nil || (viewer.ID != t.Author && viewer.Role != models.RoleAdmin) {
		return apperr.Forbidden("Not authorized to view this tutorial (pending or rejected).")
	}
	return nil
}

// CanUpdate allows the author and admins.
func CanUpdate(actor *models.User, t *models.Tutorial) error {
	if actor.ID != t.Author && actor.Role != models.RoleAdmin {
		return apperr.Forbidden("Not authorized to update this tutorial.")
	}
	return nil
}

// CanDelete allows admins only.
func CanDelete(actor *models.User) error {
	if actor.Role != models.RoleAdmin {
		return apperr.Forbidden("Only Admins are authorized to delete tutorials.")
	}
	return nil
}

// StatusAfterEdit decides the status a tutorial holds after an edit by
// actor. requested is the status named in the request body, or "" when the
// body left it out.
//
// Admins may set any status. Non-admin authors may never set a status
// explicitly, and any edit they make to an approved or rejected tutorial
// sends it back through review.
func StatusAfterEdit(actor *models.User, t *models.Tutorial, requested models.TutorialStatus) (models.TutorialStatus, error) {
	if actor.Role == models.RoleAdmin {
		if requested == "" {
			return t.Status, nil
		}
		if !requested.Valid() {
			return "", apperr.Validation("Invalid status provided.")
		}
		return requested, nil
	}

	if requested != "" {
		if requested == models.StatusApproved || requested == models.StatusRejected {
			return "", apperr.Forbidden("Only Admins can approve or reject tutorials.")
		}
		return "", apperr.Forbidden("Authors cannot change status of approved/rejected tutorials to pending.")
	}

	// Approved and rejected tutorials re-enter review; pending stays pending.
	return models.StatusPending, nil
}

// Approve returns the status transition for an explicit approve action.
// Approving an already-approved tutorial is a conflict, not a no-op, so
// clients learn their view of the tutorial is stale.
func Approve(t *models.Tutorial) (models.TutorialStatus, error) {
	if t.Status == models.StatusApproved {
		return "", apperr.Conflict("Tutorial is already approved.")
	}
	return models.StatusApproved, nil
}

// Reject returns the status transition for an explicit reject action.
func Reject(t *models.Tutorial) (models.TutorialStatus, error) {
	if t.Status == models.StatusRejected {
		return "", apperr.Conflict("Tutorial is already rejected.")
	}
	return models.StatusRejected, nil
}
