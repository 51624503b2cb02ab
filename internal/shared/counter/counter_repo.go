package counter

import (
	"context"

	"gorm.io/gorm"
)

// Counter types yang dipakai untuk penomoran dokumen per perusahaan.
const (
	TypeEmployeeNumber     = "employee_number"
	TypeLeaveRequestNumber = "leave_request_number"
)

type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue menaikkan counter per (company, type) secara atomik.
// UPSERT mentah dipakai supaya dua request bersamaan tidak pernah
// mendapat nomor yang sama.
func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, counterType).Scan(&nextValue).Error
	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
