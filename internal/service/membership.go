package service

import (
	"context"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
)

// requireMember gates every resource operation behind event membership.
// A missing membership row yields ErrForbidden regardless of whether the
// event exists, so outsiders cannot probe for valid event ids.
func requireMember(ctx context.Context, repo postgres.EventRepository, eventID, userID string) error {
	member, err := repo.GetMember(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return domain.ErrForbidden
	}
	return nil
}
