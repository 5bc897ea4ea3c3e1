package service

import (
	"context"
	"fmt"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
)

type BudgetService interface {
	Create(ctx context.Context, userID string, req *domain.CreateBudgetRequest) (*domain.Budget, error)
	List(ctx context.Context, userID, eventID string, filters domain.BudgetFilters) ([]domain.Budget, error)
	Update(ctx context.Context, userID, budgetID string, patch domain.BudgetPatch) (*domain.Budget, error)
	Approve(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	Reject(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	Delete(ctx context.Context, userID, budgetID string) error
	Stats(ctx context.Context, userID, eventID string) (*domain.BudgetStats, error)
}

type budgetService struct {
	budgetRepo postgres.BudgetRepository
	eventRepo  postgres.EventRepository
}

func NewBudgetService(budgetRepo postgres.BudgetRepository, eventRepo postgres.EventRepository) BudgetService {
	return &budgetService{budgetRepo: budgetRepo, eventRepo: eventRepo}
}

func (s *budgetService) Create(ctx context.Context, userID string, req *domain.CreateBudgetRequest) (*domain.Budget, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.eventRepo, req.EventID, userID); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return budget, nil
}

func (s *budgetService) List(ctx context.Context, userID, eventID string, filters domain.BudgetFilters) ([]domain.Budget, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.ListByEvent(ctx, eventID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	return budgets, nil
}

func (s *budgetService) Update(ctx context.Context, userID, budgetID string, patch domain.BudgetPatch) (*domain.Budget, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorizeByID(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Update(ctx, budgetID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	if budget == nil {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, nil
}

func (s *budgetService) Approve(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	return s.setStatus(ctx, userID, budgetID, domain.BudgetApproved)
}

func (s *budgetService) Reject(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	return s.setStatus(ctx, userID, budgetID, domain.BudgetRejected)
}

func (s *budgetService) setStatus(ctx context.Context, userID, budgetID string, status domain.BudgetStatus) (*domain.Budget, error) {
	if err := s.authorizeByID(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.SetStatus(ctx, budgetID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to set budget status: %w", err)
	}
	if budget == nil {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, nil
}

func (s *budgetService) Delete(ctx context.Context, userID, budgetID string) error {
	if err := s.authorizeByID(ctx, userID, budgetID); err != nil {
		return err
	}

	deleted, err := s.budgetRepo.Delete(ctx, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if !deleted {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (s *budgetService) Stats(ctx context.Context, userID, eventID string) (*domain.BudgetStats, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.ListByEvent(ctx, eventID, domain.BudgetFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	stats := domain.BudgetStats{Total: len(budgets)}
	for _, b := range budgets {
		switch b.Status {
		case domain.BudgetPending:
			stats.Pending++
		case domain.BudgetApproved:
			stats.Approved++
			stats.ApprovedValue += b.Value
		case domain.BudgetRejected:
			stats.Rejected++
		}
	}
	return &stats, nil
}

func (s *budgetService) authorizeByID(ctx context.Context, userID, budgetID string) error {
	existing, err := s.budgetRepo.GetByID(ctx, budgetID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrBudgetNotFound
	}
	return requireMember(ctx, s.eventRepo, existing.EventID, userID)
}
