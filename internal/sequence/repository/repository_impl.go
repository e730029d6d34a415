package repository

import (
	"context"
	"errors"

	"github.com/bharatstack/gstbill/internal/sequence/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByMerchant(ctx context.Context, db *gorm.DB, merchantID int64) (*domain.SequenceState, error) {
	var st domain.SequenceState
	err := db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repo) FindByMerchantForUpdate(ctx context.Context, tx *gorm.DB, merchantID int64) (*domain.SequenceState, error) {
	stmt := tx.WithContext(ctx).Where("merchant_id = ?", merchantID)
	// sqlite has no row locks; its single writer already serializes
	// issuance, and it rejects the FOR UPDATE syntax outright.
	if tx.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var st domain.SequenceState
	err := stmt.First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, st *domain.SequenceState) error {
	return db.WithContext(ctx).Create(st).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, st *domain.SequenceState) error {
	if st == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE sequence_states
		 SET prefix = ?, reset_frequency = ?, last_number = ?, last_issued_at = ?, updated_at = ?
		 WHERE merchant_id = ? AND id = ?`,
		st.Prefix,
		st.ResetFrequency,
		st.LastNumber,
		st.LastIssuedAt,
		st.UpdatedAt,
		st.MerchantID,
		st.ID,
	).Error
}
