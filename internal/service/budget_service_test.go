package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/planejacasar/wedding-backend/internal/domain"
)

func newBudgetFixture() (*memEventRepo, *memBudgetRepo, BudgetService) {
	eventRepo := newMemEventRepo()
	eventRepo.addEvent("ev1", "user-1", time.Now().Add(90*24*time.Hour), nil)
	eventRepo.addMember("ev1", "user-1", domain.RoleOwner)
	budgetRepo := newMemBudgetRepo()
	return eventRepo, budgetRepo, NewBudgetService(budgetRepo, eventRepo)
}

func TestCreateBudgetAtValueCeiling(t *testing.T) {
	_, budgetRepo, svc := newBudgetFixture()

	created, err := svc.Create(context.Background(), "user-1", &domain.CreateBudgetRequest{
		EventID:    "ev1",
		VendorName: "Buffet Bela Vista",
		Category:   domain.SpendBuffet,
		Value:      999999.99,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != domain.BudgetPending {
		t.Errorf("status = %q, want pending", created.Status)
	}

	stored, err := budgetRepo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Value != 999999.99 {
		t.Errorf("stored value = %v, want 999999.99", stored.Value)
	}
}

func TestCreateBudgetRejectsOverCeiling(t *testing.T) {
	_, _, svc := newBudgetFixture()

	_, err := svc.Create(context.Background(), "user-1", &domain.CreateBudgetRequest{
		EventID:    "ev1",
		VendorName: "Buffet Bela Vista",
		Category:   domain.SpendBuffet,
		Value:      1000000,
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestBudgetApproveRejectFlow(t *testing.T) {
	_, budgetRepo, svc := newBudgetFixture()
	b := budgetRepo.add("ev1", domain.SpendDJ, 800, domain.BudgetPending)

	approved, err := svc.Approve(context.Background(), "user-1", b.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != domain.BudgetApproved {
		t.Errorf("status = %q, want approved", approved.Status)
	}

	rejected, err := svc.Reject(context.Background(), "user-1", b.ID)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != domain.BudgetRejected {
		t.Errorf("status = %q, want rejected", rejected.Status)
	}
}

func TestBudgetStats(t *testing.T) {
	_, budgetRepo, svc := newBudgetFixture()
	budgetRepo.add("ev1", domain.SpendDJ, 800, domain.BudgetApproved)
	budgetRepo.add("ev1", domain.SpendLocal, 1000, domain.BudgetApproved)
	budgetRepo.add("ev1", domain.SpendFlores, 150, domain.BudgetPending)
	budgetRepo.add("ev1", domain.SpendBolo, 200, domain.BudgetRejected)

	stats, err := svc.Stats(context.Background(), "user-1", "ev1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 4 || stats.Approved != 2 || stats.Pending != 1 || stats.Rejected != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ApprovedValue != 1800 {
		t.Errorf("approvedValue = %v, want 1800", stats.ApprovedValue)
	}
}

func TestBudgetRequiresMembership(t *testing.T) {
	_, budgetRepo, svc := newBudgetFixture()
	b := budgetRepo.add("ev1", domain.SpendDJ, 800, domain.BudgetPending)

	if _, err := svc.List(context.Background(), "outsider", "ev1", domain.BudgetFilters{}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("List err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Approve(context.Background(), "outsider", b.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Approve err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), "outsider", b.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Delete err = %v, want ErrForbidden", err)
	}
}

func TestDeleteBudgetUnknownID(t *testing.T) {
	_, _, svc := newBudgetFixture()

	if err := svc.Delete(context.Background(), "user-1", "missing"); !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("err = %v, want ErrBudgetNotFound", err)
	}
}
