package invitationmock

import (
	"context"

	domain "lendcircle-backend/internal/domain/invitation"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, inv *domain.Invitation) error
	ListPendingByEmailFn func(ctx context.Context, email string) ([]domain.Invitation, error)
	SaveFn               func(ctx context.Context, inv *domain.Invitation) error
}

func (m *Repo) Create(ctx context.Context, inv *domain.Invitation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}
func (m *Repo) ListPendingByEmail(ctx context.Context, email string) ([]domain.Invitation, error) {
	if m.ListPendingByEmailFn != nil {
		return m.ListPendingByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, inv *domain.Invitation) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, inv)
	}
	return nil
}
