package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/domain/booking"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, n *Notification) error {
	if n.RecipientID == uuid.Nil {
		return apperr.Invalid("recipient_id is required")
	}
	if !validRecipientTypes[n.RecipientType] {
		return apperr.Invalid("unknown recipient_type %q", n.RecipientType)
	}
	if n.Kind == "" {
		n.Kind = "info"
	}
	if !validKinds[n.Kind] {
		return apperr.Invalid("unknown kind %q", n.Kind)
	}
	if strings.TrimSpace(n.Title) == "" {
		return apperr.Invalid("title is required")
	}
	return s.repo.Insert(ctx, n)
}

// Notify implements the booking flow's notifier by persisting the notice.
func (s *Service) Notify(ctx context.Context, e booking.Notice) error {
	n := &Notification{
		RecipientID:   e.RecipientID,
		RecipientType: e.RecipientType,
		Kind:          e.Kind,
		Title:         e.Title,
		Message:       e.Message,
	}
	if e.AppointmentID != uuid.Nil {
		id := e.AppointmentID
		n.AppointmentID = &id
	}
	return s.Create(ctx, n)
}

func (s *Service) ListForRecipient(ctx context.Context, recipientID uuid.UUID, recipientType string, unreadOnly bool, limit, offset int) ([]*Notification, int, error) {
	if !validRecipientTypes[recipientType] {
		return nil, 0, apperr.Invalid("unknown recipient_type %q", recipientType)
	}
	items, total, err := s.repo.ListByRecipient(ctx, recipientID, recipientType, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*Notification{}
	}
	return items, total, nil
}

func (s *Service) UnreadCount(ctx context.Context, recipientID uuid.UUID, recipientType string) (int, error) {
	return s.repo.CountUnread(ctx, recipientID, recipientType)
}

func (s *Service) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID uuid.UUID, recipientType string) error {
	return s.repo.MarkAllRead(ctx, recipientID, recipientType)
}

func (s *Service) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	return s.repo.Delete(ctx, id, recipientID)
}
