package repository

import (
	"context"

	"agencydesk/internal/domain"

	"gorm.io/gorm"
)

type WorkingHoursRepository struct {
	db *gorm.DB
}

func NewWorkingHoursRepository(db *gorm.DB) *WorkingHoursRepository {
	return &WorkingHoursRepository{db: db}
}

// GetWeek returns the stored windows for a host ordered by day of week.
// An empty slice means the host has never saved availability; callers fall
// back to domain.DefaultWeek so the default is a pure function of "no rows".
func (r *WorkingHoursRepository) GetWeek(ctx context.Context, hostID int64) ([]domain.WorkingHoursWindow, error) {
	var windows []domain.WorkingHoursWindow
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("day_of_week ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

// ReplaceWeek overwrites the host's configuration wholesale; saving the week
// is the only mutation the store supports.
func (r *WorkingHoursRepository) ReplaceWeek(ctx context.Context, hostID int64, windows []domain.WorkingHoursWindow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("host_id = ?", hostID).Delete(&domain.WorkingHoursWindow{}).Error; err != nil {
			return err
		}
		for i := range windows {
			windows[i].ID = 0
			windows[i].HostID = hostID
		}
		return tx.Create(&windows).Error
	})
}
