package mysql

import (
	"context"
	"strings"

	invitationDomain "lendcircle-backend/internal/domain/invitation"

	"gorm.io/gorm"
)

type InvitationRepository struct{ db *gorm.DB }

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, i *invitationDomain.Invitation) error {
	i.InviteeEmail = strings.ToLower(i.InviteeEmail)
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InvitationRepository) Save(ctx context.Context, i *invitationDomain.Invitation) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InvitationRepository) ListPendingByEmail(ctx context.Context, email string) ([]invitationDomain.Invitation, error) {
	var out []invitationDomain.Invitation
	res := r.db.WithContext(ctx).
		Where("invitee_email = ? AND status = ?", strings.ToLower(email), invitationDomain.StatusPending).
		Find(&out)
	return out, res.Error
}
