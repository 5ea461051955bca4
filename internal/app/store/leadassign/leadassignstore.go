// internal/app/store/leadassign/leadassignstore.go

// Package leadassign is the only writer of the chapter-lead relationship.
// A lead assignment touches two documents (the chapter's lead pointer and
// the user's chapter/role), so every operation here runs through a
// transaction where the server supports one, and in a recoverable write
// order where it does not.
package leadassign

import (
	"context"

	"github.com/scriptlyhq/scriptly/internal/app/policy/chapterpolicy"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	eventstore "github.com/scriptlyhq/scriptly/internal/app/store/events"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/txn"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	client   *mongo.Client
	users    *userstore.Store
	chapters *chapterstore.Store
	events   *eventstore.Store
}

func New(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		client:   client,
		users:    userstore.New(db),
		chapters: chapterstore.New(db),
		events:   eventstore.New(db),
	}
}

// AssignLead makes lead the chapter's lead. It releases the lead's previous
// chapter (if they led one), releases the chapter's previous lead (if it
// had one), then writes the new pairing. Students are promoted to
// chapter-lead as part of the same operation.
//
// Both release steps are conditional on the old pointers still holding, so
// a concurrent reassignment is never clobbered. Outside a transaction the
// release-then-assign order means a crash mid-way leaves dangling nils,
// never two chapters claiming the same lead.
func (s *Store) AssignLead(ctx context.Context, chapter models.Chapter, lead models.User) error {
	return txn.WithTransaction(ctx, s.client, func(ctx context.Context) error {
		if lead.Chapter != nil && *lead.Chapter != chapter.ID {
			if err := s.chapters.ClearLeadIf(ctx, *lead.Chapter, lead.ID); err != nil {
				return err
			}
		}
		if chapter.ChapterLead != nil && *chapter.ChapterLead != lead.ID {
			if err := s.users.ClearChapterIf(ctx, *chapter.ChapterLead, chapter.ID); err != nil {
				return err
			}
		}
		if err := s.chapters.SetLead(ctx, chapter.ID, &lead.ID); err != nil {
			return err
		}
		return s.users.SetRoleAndChapter(ctx, lead.ID,
			chapterpolicy.RoleAfterLeadAssign(&lead), chapter.ID)
	})
}

// UnassignLead clears the chapter's lead and releases the lead's chapter
// membership. The lead keeps the chapter-lead role; demotion is a separate
// admin action. A chapter with no lead is a no-op.
func (s *Store) UnassignLead(ctx context.Context, chapter models.Chapter) error {
	if chapter.ChapterLead == nil {
		return nil
	}
	old := *chapter.ChapterLead
	return txn.WithTransaction(ctx, s.client, func(ctx context.Context) error {
		if err := s.users.ClearChapterIf(ctx, old, chapter.ID); err != nil {
			return err
		}
		return s.chapters.SetLead(ctx, chapter.ID, nil)
	})
}

// DeleteChapter removes a chapter and everything hanging off it: member
// users lose their chapter reference (the lead included) and the chapter's
// events are deleted. Returns how many users were released and how many
// events were removed.
func (s *Store) DeleteChapter(ctx context.Context, chapter models.Chapter) (usersCleared, eventsDeleted int64, err error) {
	err = txn.WithTransaction(ctx, s.client, func(ctx context.Context) error {
		usersCleared, err = s.users.ClearChapterForAll(ctx, chapter.ID)
		if err != nil {
			return err
		}
		eventsDeleted, err = s.events.DeleteByChapter(ctx, chapter.ID)
		if err != nil {
			return err
		}
		n, err := s.chapters.Delete(ctx, chapter.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
	return usersCleared, eventsDeleted, err
}
