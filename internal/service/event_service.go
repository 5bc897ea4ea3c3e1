package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
	"github.com/planejacasar/wedding-backend/pkg/events"
	"github.com/planejacasar/wedding-backend/pkg/logger"
)

type EventService interface {
	Create(ctx context.Context, ownerID string, req *domain.CreateEventRequest) (*domain.Event, error)
	ListForUser(ctx context.Context, userID string) ([]domain.EventDetails, error)
	Get(ctx context.Context, userID, eventID string) (*domain.EventDetails, error)
	Update(ctx context.Context, userID, eventID string, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, userID, eventID string) error
	Join(ctx context.Context, userID string, req *domain.JoinEventRequest) (*domain.Event, error)
	Authorize(ctx context.Context, userID, eventID string) error
}

type eventService struct {
	eventRepo postgres.EventRepository
	userRepo  postgres.UserRepository
	eventBus  events.Publisher
}

func NewEventService(
	eventRepo postgres.EventRepository,
	userRepo postgres.UserRepository,
	eventBus events.Publisher,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		eventBus:  eventBus,
	}
}

func (s *eventService) Create(ctx context.Context, ownerID string, req *domain.CreateEventRequest) (*domain.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inviteCode := uuid.NewString()
	event, err := s.eventRepo.Create(ctx, ownerID, inviteCode, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	evt := events.EventCreatedEvent{
		EventID:   event.ID,
		OwnerID:   event.OwnerID,
		EventType: event.EventType,
		Date:      event.Date,
		CreatedAt: event.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.EventCreated, evt); err != nil {
		logger.ErrorContext(ctx, "failed to publish event created", "error", err, "event_id", event.ID)
	}

	return event, nil
}

func (s *eventService) ListForUser(ctx context.Context, userID string) ([]domain.EventDetails, error) {
	evts, roles, err := s.eventRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	details := make([]domain.EventDetails, 0, len(evts))
	for i, e := range evts {
		d, err := s.buildDetails(ctx, &e, roles[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

// Get resolves membership before existence so a non-member learns nothing
// about whether the event id is real.
func (s *eventService) Get(ctx context.Context, userID, eventID string) (*domain.EventDetails, error) {
	member, err := s.eventRepo.GetMember(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrForbidden
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	return s.buildDetails(ctx, event, member.Role)
}

func (s *eventService) buildDetails(ctx context.Context, event *domain.Event, role domain.MemberRole) (*domain.EventDetails, error) {
	owner, err := s.userRepo.FindByID(ctx, event.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	members, err := s.eventRepo.ListMembers(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	return &domain.EventDetails{
		Event:    *event,
		Owner:    owner.Profile(),
		Members:  members,
		UserRole: role,
	}, nil
}

func (s *eventService) Update(ctx context.Context, userID, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	if err := s.requireOwner(ctx, userID, eventID); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.Update(ctx, eventID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	evt := events.EventUpdatedEvent{
		EventID:   event.ID,
		Changes:   patch.Changed(),
		UpdatedAt: event.UpdatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.EventUpdated, evt); err != nil {
		logger.ErrorContext(ctx, "failed to publish event updated", "error", err, "event_id", event.ID)
	}

	return event, nil
}

func (s *eventService) Delete(ctx context.Context, userID, eventID string) error {
	if err := s.requireOwner(ctx, userID, eventID); err != nil {
		return err
	}

	deleted, err := s.eventRepo.Delete(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		return domain.ErrEventNotFound
	}

	evt := events.EventDeletedEvent{
		EventID:   eventID,
		OwnerID:   userID,
		DeletedAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.EventDeleted, evt); err != nil {
		logger.ErrorContext(ctx, "failed to publish event deleted", "error", err, "event_id", eventID)
	}

	return nil
}

func (s *eventService) Join(ctx context.Context, userID string, req *domain.JoinEventRequest) (*domain.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByInviteCode(ctx, req.InviteCode)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrInvalidInviteCode
	}

	member, err := s.eventRepo.CreateMember(ctx, event.ID, userID, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	evt := events.MemberJoinedEvent{
		EventID:  event.ID,
		UserID:   userID,
		Role:     string(member.Role),
		JoinedAt: member.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.MemberJoined, evt); err != nil {
		logger.ErrorContext(ctx, "failed to publish member joined", "error", err, "event_id", event.ID)
	}

	return event, nil
}

// Authorize reports whether the user may touch the event's resources.
// Membership is checked before existence on purpose.
func (s *eventService) Authorize(ctx context.Context, userID, eventID string) error {
	member, err := s.eventRepo.GetMember(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return domain.ErrForbidden
	}
	return nil
}

func (s *eventService) requireOwner(ctx context.Context, userID, eventID string) error {
	member, err := s.eventRepo.GetMember(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if member == nil || member.Role != domain.RoleOwner {
		return domain.ErrForbidden
	}
	return nil
}
