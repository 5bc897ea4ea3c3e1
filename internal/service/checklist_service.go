package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
	"github.com/planejacasar/wedding-backend/pkg/events"
	"github.com/planejacasar/wedding-backend/pkg/logger"
)

type ChecklistService interface {
	Create(ctx context.Context, userID string, req *domain.CreateChecklistTaskRequest) (*domain.ChecklistTask, error)
	List(ctx context.Context, userID, eventID string, filters domain.ChecklistFilters) ([]domain.ChecklistTask, error)
	Update(ctx context.Context, userID, taskID string, patch domain.ChecklistTaskPatch) (*domain.ChecklistTask, error)
	Toggle(ctx context.Context, userID, taskID string) (*domain.ChecklistTask, error)
	Delete(ctx context.Context, userID, taskID string) error
	Stats(ctx context.Context, userID, eventID string) (*domain.ChecklistStats, error)
}

type checklistService struct {
	checklistRepo postgres.ChecklistRepository
	eventRepo     postgres.EventRepository
	eventBus      events.Publisher
}

func NewChecklistService(
	checklistRepo postgres.ChecklistRepository,
	eventRepo postgres.EventRepository,
	eventBus events.Publisher,
) ChecklistService {
	return &checklistService{
		checklistRepo: checklistRepo,
		eventRepo:     eventRepo,
		eventBus:      eventBus,
	}
}

func (s *checklistService) Create(ctx context.Context, userID string, req *domain.CreateChecklistTaskRequest) (*domain.ChecklistTask, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.eventRepo, req.EventID, userID); err != nil {
		return nil, err
	}

	task, err := s.checklistRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.recomputeProgress(ctx, req.EventID)
	return task, nil
}

func (s *checklistService) List(ctx context.Context, userID, eventID string, filters domain.ChecklistFilters) ([]domain.ChecklistTask, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}
	tasks, err := s.checklistRepo.ListByEvent(ctx, eventID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.ChecklistTask{}
	}
	return tasks, nil
}

func (s *checklistService) Update(ctx context.Context, userID, taskID string, patch domain.ChecklistTaskPatch) (*domain.ChecklistTask, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.checklistRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrTaskNotFound
	}
	if err := requireMember(ctx, s.eventRepo, existing.EventID, userID); err != nil {
		return nil, err
	}

	// Captured before the update; the repo may hand back the same row.
	prevStatus := existing.Status

	task, err := s.checklistRepo.Update(ctx, taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	if patch.Status != nil && *patch.Status != prevStatus {
		s.recomputeProgress(ctx, task.EventID)
		if task.Status == domain.TaskCompleted {
			s.publishCompleted(ctx, task)
		}
	}
	return task, nil
}

// Toggle flips a task between pending and completed.
func (s *checklistService) Toggle(ctx context.Context, userID, taskID string) (*domain.ChecklistTask, error) {
	existing, err := s.checklistRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrTaskNotFound
	}
	if err := requireMember(ctx, s.eventRepo, existing.EventID, userID); err != nil {
		return nil, err
	}

	next := domain.TaskCompleted
	if existing.Status == domain.TaskCompleted {
		next = domain.TaskPending
	}

	task, err := s.checklistRepo.SetStatus(ctx, taskID, next)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	s.recomputeProgress(ctx, task.EventID)
	if task.Status == domain.TaskCompleted {
		s.publishCompleted(ctx, task)
	}
	return task, nil
}

func (s *checklistService) Delete(ctx context.Context, userID, taskID string) error {
	existing, err := s.checklistRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrTaskNotFound
	}
	if err := requireMember(ctx, s.eventRepo, existing.EventID, userID); err != nil {
		return err
	}

	deleted, err := s.checklistRepo.Delete(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}

	s.recomputeProgress(ctx, existing.EventID)
	return nil
}

func (s *checklistService) Stats(ctx context.Context, userID, eventID string) (*domain.ChecklistStats, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}

	completed, err := s.checklistRepo.CountByEventAndStatus(ctx, eventID, domain.TaskCompleted)
	if err != nil {
		return nil, err
	}
	pending, err := s.checklistRepo.CountByEventAndStatus(ctx, eventID, domain.TaskPending)
	if err != nil {
		return nil, err
	}

	total := completed + pending
	return &domain.ChecklistStats{
		Total:      total,
		Completed:  completed,
		Pending:    pending,
		Percentage: percentage(completed, total),
	}, nil
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// recomputeProgress persists overall progress on the event after every
// checklist mutation. Failures are logged, not surfaced; the mutation
// itself already succeeded.
func (s *checklistService) recomputeProgress(ctx context.Context, eventID string) {
	completed, err := s.checklistRepo.CountByEventAndStatus(ctx, eventID, domain.TaskCompleted)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count completed tasks", "error", err, "event_id", eventID)
		return
	}
	pending, err := s.checklistRepo.CountByEventAndStatus(ctx, eventID, domain.TaskPending)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count pending tasks", "error", err, "event_id", eventID)
		return
	}

	progress := percentage(completed, completed+pending)
	if err := s.eventRepo.UpdateProgress(ctx, eventID, progress); err != nil {
		logger.ErrorContext(ctx, "failed to persist progress", "error", err, "event_id", eventID)
	}
}

func (s *checklistService) publishCompleted(ctx context.Context, task *domain.ChecklistTask) {
	completed, err := s.checklistRepo.CountByEventAndStatus(ctx, task.EventID, domain.TaskCompleted)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count completed tasks", "error", err, "event_id", task.EventID)
		return
	}
	pending, err := s.checklistRepo.CountByEventAndStatus(ctx, task.EventID, domain.TaskPending)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count pending tasks", "error", err, "event_id", task.EventID)
		return
	}

	evt := events.TaskCompletedEvent{
		EventID:         task.EventID,
		TaskID:          task.ID,
		OverallProgress: percentage(completed, completed+pending),
		CompletedAt:     time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.TaskCompleted, evt); err != nil {
		logger.ErrorContext(ctx, "failed to publish task completed", "error", err, "task_id", task.ID)
	}
}
