package service

import (
	"context"
	"fmt"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
)

type VendorService interface {
	Create(ctx context.Context, userID string, req *domain.CreateVendorRequest) (*domain.Vendor, error)
	List(ctx context.Context, userID, eventID string, filters domain.VendorFilters) ([]domain.Vendor, error)
	Update(ctx context.Context, userID, vendorID string, patch domain.VendorPatch) (*domain.Vendor, error)
	MarkPaid(ctx context.Context, userID, vendorID string) (*domain.Vendor, error)
	MarkOverdue(ctx context.Context, userID, vendorID string) (*domain.Vendor, error)
	Delete(ctx context.Context, userID, vendorID string) error
	Stats(ctx context.Context, userID, eventID string) (*domain.VendorStats, error)
}

type vendorService struct {
	vendorRepo postgres.VendorRepository
	eventRepo  postgres.EventRepository
}

func NewVendorService(vendorRepo postgres.VendorRepository, eventRepo postgres.EventRepository) VendorService {
	return &vendorService{vendorRepo: vendorRepo, eventRepo: eventRepo}
}

func (s *vendorService) Create(ctx context.Context, userID string, req *domain.CreateVendorRequest) (*domain.Vendor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.eventRepo, req.EventID, userID); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return vendor, nil
}

func (s *vendorService) List(ctx context.Context, userID, eventID string, filters domain.VendorFilters) ([]domain.Vendor, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}
	vendors, err := s.vendorRepo.ListByEvent(ctx, eventID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	if vendors == nil {
		vendors = []domain.Vendor{}
	}
	return vendors, nil
}

func (s *vendorService) Update(ctx context.Context, userID, vendorID string, patch domain.VendorPatch) (*domain.Vendor, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorizeByID(ctx, userID, vendorID); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.Update(ctx, vendorID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	if vendor == nil {
		return nil, domain.ErrVendorNotFound
	}
	return vendor, nil
}

func (s *vendorService) MarkPaid(ctx context.Context, userID, vendorID string) (*domain.Vendor, error) {
	return s.setStatus(ctx, userID, vendorID, domain.VendorPaid)
}

func (s *vendorService) MarkOverdue(ctx context.Context, userID, vendorID string) (*domain.Vendor, error) {
	return s.setStatus(ctx, userID, vendorID, domain.VendorOverdue)
}

func (s *vendorService) setStatus(ctx context.Context, userID, vendorID string, status domain.VendorStatus) (*domain.Vendor, error) {
	if err := s.authorizeByID(ctx, userID, vendorID); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.SetStatus(ctx, vendorID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to set vendor status: %w", err)
	}
	if vendor == nil {
		return nil, domain.ErrVendorNotFound
	}
	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, userID, vendorID string) error {
	if err := s.authorizeByID(ctx, userID, vendorID); err != nil {
		return err
	}

	deleted, err := s.vendorRepo.Delete(ctx, vendorID)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	if !deleted {
		return domain.ErrVendorNotFound
	}
	return nil
}

func (s *vendorService) Stats(ctx context.Context, userID, eventID string) (*domain.VendorStats, error) {
	if err := requireMember(ctx, s.eventRepo, eventID, userID); err != nil {
		return nil, err
	}

	vendors, err := s.vendorRepo.ListByEvent(ctx, eventID, domain.VendorFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	stats := domain.VendorStats{Total: len(vendors)}
	for _, v := range vendors {
		var value float64
		if v.Value != nil {
			value = *v.Value
		}
		stats.TotalValue += value

		switch v.Status {
		case domain.VendorPaid:
			stats.Paid++
			stats.PaidValue += value
		case domain.VendorPending:
			stats.Pending++
			stats.PendingValue += value
		case domain.VendorOverdue:
			stats.Overdue++
		}
	}
	return &stats, nil
}

func (s *vendorService) authorizeByID(ctx context.Context, userID, vendorID string) error {
	existing, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrVendorNotFound
	}
	return requireMember(ctx, s.eventRepo, existing.EventID, userID)
}
