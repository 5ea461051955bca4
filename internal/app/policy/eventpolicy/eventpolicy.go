// internal/app/policy/eventpolicy/eventpolicy.go
package eventpolicy

import (
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
)

// CanCreate reports whether actor may create an event for chapter. Admins
// create events anywhere; chapter leads only where they hold the lead.
func CanCreate(actor *models.User, chapter *models.Chapter) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleChapterLead:
		if !chapter.LedBy(actor.ID) {
			return apperr.Forbidden("Chapter Lead can only create events for their own chapter")
		}
		return nil
	default:
		return apperr.Forbidden("Not authorized to create events")
	}
}

// CanUpdate allows the organizer and admins.
func CanUpdate(actor *models.User, ev *models.Event) error {
	if actor.Role != models.RoleAdmin && ev.Organizer != actor.ID {
		return apperr.Forbidden("Not authorized to update this event")
	}
	return nil
}

// CanDelete allows the organizer and admins.
func CanDelete(actor *models.User, ev *models.Event) error {
	if actor.Role != models.RoleAdmin && ev.Organizer != actor.ID {
		return apperr.Forbidden("Not authorized to delete this event")
	}
	return nil
}
