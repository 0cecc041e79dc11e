package service

import (
	"context"
	"log/slog"

	"github.com/KosalaEhub/ticket-book/internal/model"
)

// ContactStore appends contact messages to the contact collection.
type ContactStore interface {
	Insert(ctx context.Context, msg *model.ContactMessage) error
}

// Notifier tells the site owner about a new contact message.
type Notifier interface {
	NotifyContact(msg model.ContactMessage) error
}

// ContactService stores contact-form submissions. It is stateless and
// independent of authentication.
type ContactService struct {
	store    ContactStore
	notifier Notifier
}

// NewContactService creates a new ContactService. The notifier may be
// nil when no outbound mail is configured.
func NewContactService(store ContactStore, notifier Notifier) *ContactService {
	return &ContactService{store: store, notifier: notifier}
}

// Submit stores one contact message. Fields are opaque text; there is no
// validation, deduplication or identity linkage. Notification failures
// never fail the submission.
func (s *ContactService) Submit(ctx context.Context, msg model.ContactMessage) error {
	if err := s.store.Insert(ctx, &msg); err != nil {
		return err
	}

	if s.notifier != nil {
		go func() {
			if err := s.notifier.NotifyContact(msg); err != nil {
				slog.Warn("contact notification failed", "error", err)
			}
		}()
	}

	return nil
}
