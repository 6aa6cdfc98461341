package invitation

import "context"

type Repository interface {
	Create(ctx context.Context, i *Invitation) error
	ListPendingByEmail(ctx context.Context, email string) ([]Invitation, error)
	Save(ctx context.Context, i *Invitation) error
}
