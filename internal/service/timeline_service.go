package service

import (
	"context"
	"fmt"
	"time"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
)

type TimelineService interface {
	Create(ctx context.Context, userID string, req *domain.CreateTimelineTaskRequest) (*domain.TimelineTask, error)
	List(ctx context.Context, userID, eventID string, filters domain.TimelineFilters) ([]domain.TimelineTask, error)
	Update(ctx context.Context, userID, taskID string, patch domain.TimelineTaskPatch) (*domain.TimelineTask, error)
	Delete(ctx context.Context, userID, taskID string) error
	Stats(ctx context.Context, userID, eventID string) (*domain.TimelineStats, error)
}

type timelineService struct {
	timelineRepo postgres.TimelineRepository
	eventRepo    postgres.EventRepository
}

func NewTimelineService(timelineRepo postgres.TimelineRepository, eventRepo postgres.EventRepository) TimelineService {
	return &timelineService{timelineRepo: timelineRepo, eventRepo: eventRepo}
}

func (s *timelineService) Create(ctx context.Context, userID string, req *domain.CreateTimelineTaskRequest) (*domain.TimelineTask, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.eventRepo, req.EventID, userID); err != nil {
		return nil, err
	}

	task, err := s.timelineRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create timeline task: %w", err)
	}
	return task, nil
}

func (s *timelineService) List(ctx context.Context, userID, eventID string, filters domain.TimelineFilters) ([]domain.TimelineTask, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}
	tasks, err := s.timelineRepo.ListByEvent(ctx, eventID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.TimelineTask{}
	}
	return tasks, nil
}

func (s *timelineService) Update(ctx context.Context, userID, taskID string, patch domain.TimelineTaskPatch) (*domain.TimelineTask, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.timelineRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrTaskNotFound
	}
	if err := requireMember(ctx, s.eventRepo, existing.EventID, userID); err != nil {
		return nil, err
	}

	task, err := s.timelineRepo.Update(ctx, taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update timeline task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *timelineService) Delete(ctx context.Context, userID, taskID string) error {
	existing, err := s.timelineRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrTaskNotFound
	}
	if err := requireMember(ctx, s.eventRepo, existing.EventID, userID); err != nil {
		return err
	}

	deleted, err := s.timelineRepo.Delete(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete timeline task: %w", err)
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *timelineService) Stats(ctx context.Context, userID, eventID string) (*domain.TimelineStats, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	tasks, err := s.timelineRepo.ListByEvent(ctx, eventID, domain.TimelineFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline tasks: %w", err)
	}

	stats := domain.TimelineStats{
		Total:            len(tasks),
		DaysUntilWedding: daysUntil(event.Date, time.Now()),
	}
	for _, t := range tasks {
		switch t.Status {
		case domain.TimelineCompleted:
			stats.Completed++
		case domain.TimelineInProgress:
			stats.InProgress++
		case domain.TimelinePending:
			stats.Pending++
		}
	}
	return &stats, nil
}
