package service

import (
	"context"
	"fmt"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
)

type GuestService interface {
	Create(ctx context.Context, userID string, req *domain.CreateGuestRequest) (*domain.Guest, error)
	List(ctx context.Context, userID, eventID string, filters domain.GuestFilters) ([]domain.Guest, error)
	Update(ctx context.Context, userID, guestID string, patch domain.GuestPatch) (*domain.Guest, error)
	Delete(ctx context.Context, userID, guestID string) error
	Stats(ctx context.Context, userID, eventID string) (*domain.GuestStats, error)
}

type guestService struct {
	guestRepo postgres.GuestRepository
	eventRepo postgres.EventRepository
}

func NewGuestService(guestRepo postgres.GuestRepository, eventRepo postgres.EventRepository) GuestService {
	return &guestService{guestRepo: guestRepo, eventRepo: eventRepo}
}

func (s *guestService) Create(ctx context.Context, userID string, req *domain.CreateGuestRequest) (*domain.Guest, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.eventRepo, req.EventID, userID); err != nil {
		return nil, err
	}

	guest, err := s.guestRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return guest, nil
}

func (s *guestService) List(ctx context.Context, userID, eventID string, filters domain.GuestFilters) ([]domain.Guest, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}
	guests, err := s.guestRepo.ListByEvent(ctx, eventID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	if guests == nil {
		guests = []domain.Guest{}
	}
	return guests, nil
}

func (s *guestService) Update(ctx context.Context, userID, guestID string, patch domain.GuestPatch) (*domain.Guest, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrGuestNotFound
	}
	if err := requireMember(ctx, s.eventRepo, existing.EventID, userID); err != nil {
		return nil, err
	}

	guest, err := s.guestRepo.Update(ctx, guestID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	if guest == nil {
		return nil, domain.ErrGuestNotFound
	}
	return guest, nil
}

func (s *guestService) Delete(ctx context.Context, userID, guestID string) error {
	existing, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrGuestNotFound
	}
	if err := requireMember(ctx, s.eventRepo, existing.EventID, userID); err != nil {
		return err
	}

	deleted, err := s.guestRepo.Delete(ctx, guestID)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	if !deleted {
		return domain.ErrGuestNotFound
	}
	return nil
}

func (s *guestService) Stats(ctx context.Context, userID, eventID string) (*domain.GuestStats, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}

	total, err := s.guestRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.guestRepo.CountByEventAndStatus(ctx, eventID, domain.GuestConfirmed)
	if err != nil {
		return nil, err
	}
	pending, err := s.guestRepo.CountByEventAndStatus(ctx, eventID, domain.GuestPending)
	if err != nil {
		return nil, err
	}
	declined, err := s.guestRepo.CountByEventAndStatus(ctx, eventID, domain.GuestDeclined)
	if err != nil {
		return nil, err
	}

	return &domain.GuestStats{
		Total:     total,
		Confirmed: confirmed,
		Pending:   pending,
		Declined:  declined,
	}, nil
}
