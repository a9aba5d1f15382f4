package repository

import (
	"context"
	"errors"

	"agencydesk/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CalendarTokenRepository struct {
	db *gorm.DB
}

func NewCalendarTokenRepository(db *gorm.DB) *CalendarTokenRepository {
	return &CalendarTokenRepository{db: db}
}

// GetByHost returns nil, nil when the host has no connection.
func (r *CalendarTokenRepository) GetByHost(ctx context.Context, hostID int64) (*domain.CalendarToken, error) {
	var t domain.CalendarToken
	err := r.db.WithContext(ctx).Where("host_id = ?", hostID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Save upserts the host's token; reconnecting replaces the old credentials.
func (r *CalendarTokenRepository) Save(ctx context.Context, t *domain.CalendarToken) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "host_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token", "refresh_token", "token_type", "expiry", "account_email", "updated_at",
		}),
	}).Create(t).Error
}

func (r *CalendarTokenRepository) DeleteByHost(ctx context.Context, hostID int64) error {
	return r.db.WithContext(ctx).Where("host_id = ?", hostID).Delete(&domain.CalendarToken{}).Error
}
