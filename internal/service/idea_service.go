package service

import (
	"context"
	"fmt"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
)

type IdeaService interface {
	Create(ctx context.Context, userID string, req *domain.CreateIdeaRequest) (*domain.Idea, error)
	List(ctx context.Context, userID, eventID string, filters domain.IdeaFilters) ([]domain.Idea, error)
	Update(ctx context.Context, userID, ideaID string, patch domain.IdeaPatch) (*domain.Idea, error)
	ToggleFavorite(ctx context.Context, userID, ideaID string) (*domain.Idea, error)
	Delete(ctx context.Context, userID, ideaID string) error
	Stats(ctx context.Context, userID, eventID string) (*domain.IdeaStats, error)
}

type ideaService struct {
	ideaRepo  postgres.IdeaRepository
	eventRepo postgres.EventRepository
}

func NewIdeaService(ideaRepo postgres.IdeaRepository, eventRepo postgres.EventRepository) IdeaService {
	return &ideaService{ideaRepo: ideaRepo, eventRepo: eventRepo}
}

func (s *ideaService) Create(ctx context.Context, userID string, req *domain.CreateIdeaRequest) (*domain.Idea, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.eventRepo, req.EventID, userID); err != nil {
		return nil, err
	}

	idea, err := s.ideaRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create idea: %w", err)
	}
	return idea, nil
}

func (s *ideaService) List(ctx context.Context, userID, eventID string, filters domain.IdeaFilters) ([]domain.Idea, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}
	ideas, err := s.ideaRepo.ListByEvent(ctx, eventID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	if ideas == nil {
		ideas = []domain.Idea{}
	}
	return ideas, nil
}

func (s *ideaService) Update(ctx context.Context, userID, ideaID string, patch domain.IdeaPatch) (*domain.Idea, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorizeByID(ctx, userID, ideaID); err != nil {
		return nil, err
	}

	idea, err := s.ideaRepo.Update(ctx, ideaID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update idea: %w", err)
	}
	if idea == nil {
		return nil, domain.ErrIdeaNotFound
	}
	return idea, nil
}

func (s *ideaService) ToggleFavorite(ctx context.Context, userID, ideaID string) (*domain.Idea, error) {
	existing, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrIdeaNotFound
	}
	if err := requireMember(ctx, s.eventRepo, existing.EventID, userID); err != nil {
		return nil, err
	}

	idea, err := s.ideaRepo.SetFavorite(ctx, ideaID, !existing.IsFavorite)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	if idea == nil {
		return nil, domain.ErrIdeaNotFound
	}
	return idea, nil
}

func (s *ideaService) Delete(ctx context.Context, userID, ideaID string) error {
	if err := s.authorizeByID(ctx, userID, ideaID); err != nil {
		return err
	}

	deleted, err := s.ideaRepo.Delete(ctx, ideaID)
	if err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	if !deleted {
		return domain.ErrIdeaNotFound
	}
	return nil
}

func (s *ideaService) Stats(ctx context.Context, userID, eventID string) (*domain.IdeaStats, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}

	ideas, err := s.ideaRepo.ListByEvent(ctx, eventID, domain.IdeaFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}

	stats := domain.IdeaStats{
		Total:      len(ideas),
		ByCategory: map[domain.IdeaCategory]int{},
	}
	for _, i := range ideas {
		if i.IsFavorite {
			stats.Favorites++
		}
		stats.TotalTags += len(i.Tags)
		stats.ByCategory[i.Category]++
	}
	return &stats, nil
}

func (s *ideaService) authorizeByID(ctx context.Context, userID, ideaID string) error {
	existing, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrIdeaNotFound
	}
	return requireMember(ctx, s.eventRepo, existing.EventID, userID)
}
