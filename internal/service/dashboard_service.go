package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
)

// DashboardService aggregates existing resources into read-only views. It
// performs no access checks itself; callers gate membership first.
type DashboardService interface {
	KPIs(ctx context.Context, eventID string) (*domain.KPIs, error)
	ProgressByArea(ctx context.Context, eventID string) ([]domain.AreaProgress, error)
	VendorStatusCounts(ctx context.Context, eventID string) (*domain.VendorStatusCount, error)
	BudgetSnapshot(ctx context.Context, eventID string) (*domain.BudgetSnapshot, error)
	UpcomingTasks(ctx context.Context, eventID string, limit int) ([]domain.UpcomingTask, error)
}

type dashboardService struct {
	eventRepo     postgres.EventRepository
	guestRepo     postgres.GuestRepository
	checklistRepo postgres.ChecklistRepository
	budgetRepo    postgres.BudgetRepository
	vendorRepo    postgres.VendorRepository
}

func NewDashboardService(
	eventRepo postgres.EventRepository,
	guestRepo postgres.GuestRepository,
	checklistRepo postgres.ChecklistRepository,
	budgetRepo postgres.BudgetRepository,
	vendorRepo postgres.VendorRepository,
) DashboardService {
	return &dashboardService{
		eventRepo:     eventRepo,
		guestRepo:     guestRepo,
		checklistRepo: checklistRepo,
		budgetRepo:    budgetRepo,
		vendorRepo:    vendorRepo,
	}
}

// daysUntil is a ceiling over the raw difference to the wedding date. The
// value goes negative once the date passes and shifts with the time of day,
// not at midnight.
func daysUntil(date time.Time, now time.Time) int {
	return int(math.Ceil(float64(date.Sub(now)) / float64(24*time.Hour)))
}

func (s *dashboardService) KPIs(ctx context.Context, eventID string) (*domain.KPIs, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	approved, err := s.budgetRepo.ListApprovedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved budgets: %w", err)
	}
	var budgetUsed float64
	for _, b := range approved {
		budgetUsed += b.Value
	}

	var budgetTotal float64
	if event.Budget != nil {
		budgetTotal = *event.Budget
	}

	totalGuests, err := s.guestRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	confirmedGuests, err := s.guestRepo.CountByEventAndStatus(ctx, eventID, domain.GuestConfirmed)
	if err != nil {
		return nil, err
	}
	pendingTasks, err := s.checklistRepo.CountByEventAndStatus(ctx, eventID, domain.TaskPending)
	if err != nil {
		return nil, err
	}

	return &domain.KPIs{
		DaysUntilWedding: daysUntil(event.Date, time.Now()),
		BudgetUsed:       budgetUsed,
		BudgetTotal:      budgetTotal,
		TotalGuests:      totalGuests,
		ConfirmedGuests:  confirmedGuests,
		PendingTasks:     pendingTasks,
	}, nil
}

// ProgressByArea buckets checklist tasks by category, in the order each
// category first appears in the fetched rows. Whatever distinct category
// values the rows carry show up here; categories with no tasks are left
// out rather than zero-filled.
func (s *dashboardService) ProgressByArea(ctx context.Context, eventID string) ([]domain.AreaProgress, error) {
	tasks, err := s.checklistRepo.ListByEvent(ctx, eventID, domain.ChecklistFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist: %w", err)
	}

	var order []domain.TaskCategory
	totals := map[domain.TaskCategory]int{}
	completed := map[domain.TaskCategory]int{}
	for _, t := range tasks {
		if totals[t.Category] == 0 {
			order = append(order, t.Category)
		}
		totals[t.Category]++
		if t.Status == domain.TaskCompleted {
			completed[t.Category]++
		}
	}

	areas := make([]domain.AreaProgress, 0, len(order))
	for _, cat := range order {
		total := totals[cat]
		done := completed[cat]
		areas = append(areas, domain.AreaProgress{
			Category:   cat,
			Total:      total,
			Completed:  done,
			Percentage: int(math.Round(float64(done) / float64(total) * 100)),
		})
	}
	return areas, nil
}

// VendorStatusCounts buckets vendors by payment status. Rows with a status
// outside the known set still count toward the total.
func (s *dashboardService) VendorStatusCounts(ctx context.Context, eventID string) (*domain.VendorStatusCount, error) {
	statuses, err := s.vendorRepo.ListStatuses(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor statuses: %w", err)
	}

	counts := domain.VendorStatusCount{Total: len(statuses)}
	for _, st := range statuses {
		switch domain.VendorStatus(st) {
		case domain.VendorPaid:
			counts.Paid++
		case domain.VendorPending:
			counts.Pending++
		case domain.VendorOverdue:
			counts.Overdue++
		}
	}
	return &counts, nil
}

// BudgetSnapshot sums approved budgets per category, keyed on the distinct
// category values present in the fetched rows; categories with no approved
// quotes are absent.
func (s *dashboardService) BudgetSnapshot(ctx context.Context, eventID string) (*domain.BudgetSnapshot, error) {
	approved, err := s.budgetRepo.ListApprovedByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved budgets: %w", err)
	}

	var order []domain.SpendCategory
	byCategory := map[domain.SpendCategory]float64{}
	var total float64
	for _, b := range approved {
		if _, ok := byCategory[b.Category]; !ok {
			order = append(order, b.Category)
		}
		byCategory[b.Category] += b.Value
		total += b.Value
	}

	snapshot := domain.BudgetSnapshot{ByCategory: []domain.CategoryTotal{}, Total: total}
	for _, cat := range order {
		snapshot.ByCategory = append(snapshot.ByCategory, domain.CategoryTotal{Category: cat, Total: byCategory[cat]})
	}
	return &snapshot, nil
}

const defaultUpcomingLimit = 5

func (s *dashboardService) UpcomingTasks(ctx context.Context, eventID string, limit int) ([]domain.UpcomingTask, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	tasks, err := s.checklistRepo.ListUpcoming(ctx, eventID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.UpcomingTask{}
	}
	return tasks, nil
}
