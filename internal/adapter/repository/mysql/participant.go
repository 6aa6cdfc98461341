package mysql

import (
	"context"
	"strings"

	participantDomain "lendcircle-backend/internal/domain/participant"

	"gorm.io/gorm"
)

type ParticipantRepository struct{ db *gorm.DB }

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Create(ctx context.Context, p *participantDomain.Participant) error {
	p.LenderEmail = strings.ToLower(p.LenderEmail)
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ParticipantRepository) Save(ctx context.Context, p *participantDomain.Participant) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ParticipantRepository) GetByLoanAndLender(ctx context.Context, loanID, lenderID string) (*participantDomain.Participant, error) {
	var out participantDomain.Participant
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND lender_id = ?", loanID, lenderID).
		First(&out)
	return &out, res.Error
}

func (r *ParticipantRepository) GetByLoanAndEmail(ctx context.Context, loanID, email string) (*participantDomain.Participant, error) {
	var out participantDomain.Participant
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND lender_email = ?", loanID, strings.ToLower(email)).
		First(&out)
	return &out, res.Error
}

func (r *ParticipantRepository) ListByLoanID(ctx context.Context, loanID string) ([]participantDomain.Participant, error) {
	var out []participantDomain.Participant
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("invited_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ParticipantRepository) ListByLenderID(ctx context.Context, lenderID string) ([]participantDomain.Participant, error) {
	var out []participantDomain.Participant
	res := r.db.WithContext(ctx).
		Where("lender_id = ?", lenderID).
		Order("invited_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ParticipantRepository) ListByLenderIDAndStatus(ctx context.Context, lenderID string, status participantDomain.Status) ([]participantDomain.Participant, error) {
	var out []participantDomain.Participant
	res := r.db.WithContext(ctx).
		Where("lender_id = ? AND status = ?", lenderID, status).
		Order("invited_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ParticipantRepository) ListByStatus(ctx context.Context, status participantDomain.Status) ([]participantDomain.Participant, error) {
	var out []participantDomain.Participant
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Find(&out)
	return out, res.Error
}

func (r *ParticipantRepository) ReassignLender(ctx context.Context, email, lenderID string) error {
	placeholder := participantDomain.PendingLenderID(email)
	return r.db.WithContext(ctx).
		Model(&participantDomain.Participant{}).
		Where("lender_id = ?", placeholder).
		Update("lender_id", lenderID).Error
}

func (r *ParticipantRepository) CreateACH(ctx context.Context, a *participantDomain.ACHDetail) error {
	return r.db.WithContext(ctx).Create(a).Error
}
