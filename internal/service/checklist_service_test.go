package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/pkg/events"
)

func newChecklistFixture() (*memEventRepo, *memChecklistRepo, *nopPublisher, ChecklistService) {
	eventRepo := newMemEventRepo()
	checklistRepo := newMemChecklistRepo()
	bus := &nopPublisher{}
	svc := NewChecklistService(checklistRepo, eventRepo, bus)
	eventRepo.addEvent("ev1", "user-1", time.Now().Add(60*24*time.Hour), nil)
	eventRepo.addMember("ev1", "user-1", domain.RoleOwner)
	return eventRepo, checklistRepo, bus, svc
}

func TestCreateTaskRequiresMembership(t *testing.T) {
	_, _, _, svc := newChecklistFixture()

	_, err := svc.Create(context.Background(), "outsider", &domain.CreateChecklistTaskRequest{
		EventID: "ev1",
		Title:   "Book the venue",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	_, _, _, svc := newChecklistFixture()

	task, err := svc.Create(context.Background(), "user-1", &domain.CreateChecklistTaskRequest{
		EventID: "ev1",
		Title:   "Book the venue",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Category != domain.CategoryOther || task.Priority != domain.PriorityMedium {
		t.Errorf("defaults = %s/%s, want other/medium", task.Category, task.Priority)
	}
	if task.Status != domain.TaskPending {
		t.Errorf("status = %q, want pending", task.Status)
	}
}

func TestTogglePersistsProgress(t *testing.T) {
	eventRepo, checklistRepo, bus, svc := newChecklistFixture()
	first := checklistRepo.add("ev1", domain.CategoryVenue, domain.TaskPending, nil)
	checklistRepo.add("ev1", domain.CategoryMusic, domain.TaskPending, nil)

	task, err := svc.Toggle(context.Background(), "user-1", first.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if task.Status != domain.TaskCompleted {
		t.Errorf("status = %q, want completed", task.Status)
	}

	event, _ := eventRepo.GetByID(context.Background(), "ev1")
	if event.OverallProgress != 50 {
		t.Errorf("overall progress = %d, want 50", event.OverallProgress)
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != events.TaskCompleted {
		t.Errorf("published %v, want [%s]", bus.subjects, events.TaskCompleted)
	}

	// Flipping back clears the progress and publishes nothing new.
	task, err = svc.Toggle(context.Background(), "user-1", first.ID)
	if err != nil {
		t.Fatalf("Toggle back: %v", err)
	}
	if task.Status != domain.TaskPending {
		t.Errorf("status = %q, want pending", task.Status)
	}
	event, _ = eventRepo.GetByID(context.Background(), "ev1")
	if event.OverallProgress != 0 {
		t.Errorf("overall progress = %d, want 0", event.OverallProgress)
	}
	if len(bus.subjects) != 1 {
		t.Errorf("published %v, want no event on un-complete", bus.subjects)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	_, _, _, svc := newChecklistFixture()
	if _, err := svc.Toggle(context.Background(), "user-1", "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateTaskStatusChangePublishes(t *testing.T) {
	_, checklistRepo, bus, svc := newChecklistFixture()
	task := checklistRepo.add("ev1", domain.CategoryVenue, domain.TaskPending, nil)

	title := "Renamed"
	if _, err := svc.Update(context.Background(), "user-1", task.ID, domain.ChecklistTaskPatch{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(bus.subjects) != 0 {
		t.Errorf("published %v on a title-only update, want none", bus.subjects)
	}

	status := domain.TaskCompleted
	if _, err := svc.Update(context.Background(), "user-1", task.ID, domain.ChecklistTaskPatch{Status: &status}); err != nil {
		t.Fatalf("Update status: %v", err)
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != events.TaskCompleted {
		t.Errorf("published %v, want [%s]", bus.subjects, events.TaskCompleted)
	}
}

// sharedRowChecklistRepo hands out the stored struct itself instead of a
// copy, the way a cache-backed store might.
type sharedRowChecklistRepo struct {
	*memChecklistRepo
}

func (r *sharedRowChecklistRepo) GetByID(_ context.Context, id string) (*domain.ChecklistTask, error) {
	return r.tasks[id], nil
}

func (r *sharedRowChecklistRepo) Update(_ context.Context, id string, patch domain.ChecklistTaskPatch) (*domain.ChecklistTask, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = time.Now()
	return t, nil
}

func TestUpdateDetectsStatusChangeOnSharedRows(t *testing.T) {
	eventRepo := newMemEventRepo()
	checklistRepo := &sharedRowChecklistRepo{newMemChecklistRepo()}
	bus := &nopPublisher{}
	svc := NewChecklistService(checklistRepo, eventRepo, bus)
	eventRepo.addEvent("ev1", "user-1", time.Now().Add(60*24*time.Hour), nil)
	eventRepo.addMember("ev1", "user-1", domain.RoleOwner)
	task := checklistRepo.add("ev1", domain.CategoryVenue, domain.TaskPending, nil)

	// The update mutates the row the earlier read returned; the status
	// change must still be detected against the pre-update value.
	status := domain.TaskCompleted
	if _, err := svc.Update(context.Background(), "user-1", task.ID, domain.ChecklistTaskPatch{Status: &status}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != events.TaskCompleted {
		t.Errorf("published %v, want [%s]", bus.subjects, events.TaskCompleted)
	}
	event, _ := eventRepo.GetByID(context.Background(), "ev1")
	if event.OverallProgress != 100 {
		t.Errorf("overall progress = %d, want 100", event.OverallProgress)
	}
}

func TestChecklistStats(t *testing.T) {
	_, checklistRepo, _, svc := newChecklistFixture()

	stats, err := svc.Stats(context.Background(), "user-1", "ev1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 0 || stats.Percentage != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}

	checklistRepo.add("ev1", domain.CategoryVenue, domain.TaskCompleted, nil)
	checklistRepo.add("ev1", domain.CategoryVenue, domain.TaskCompleted, nil)
	checklistRepo.add("ev1", domain.CategoryVenue, domain.TaskPending, nil)

	stats, err = svc.Stats(context.Background(), "user-1", "ev1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 3 || stats.Completed != 2 || stats.Pending != 1 {
		t.Errorf("stats = %+v, want 3/2/1", stats)
	}
	if stats.Percentage != 67 {
		t.Errorf("percentage = %d, want 67", stats.Percentage)
	}
}

func TestDeleteTaskRecomputesProgress(t *testing.T) {
	eventRepo, checklistRepo, _, svc := newChecklistFixture()
	done := checklistRepo.add("ev1", domain.CategoryVenue, domain.TaskCompleted, nil)
	pending := checklistRepo.add("ev1", domain.CategoryVenue, domain.TaskPending, nil)
	_ = eventRepo.UpdateProgress(context.Background(), "ev1", 50)

	if err := svc.Delete(context.Background(), "user-1", pending.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	event, _ := eventRepo.GetByID(context.Background(), "ev1")
	if event.OverallProgress != 100 {
		t.Errorf("overall progress = %d, want 100 after the last pending task is removed", event.OverallProgress)
	}

	if err := svc.Delete(context.Background(), "user-1", done.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	event, _ = eventRepo.GetByID(context.Background(), "ev1")
	if event.OverallProgress != 0 {
		t.Errorf("overall progress = %d, want 0 for an empty checklist", event.OverallProgress)
	}
}
