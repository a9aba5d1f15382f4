package availability

import "agencydesk/internal/domain"

type WindowInput struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

type SetWeekRequest struct {
	UserID int64         `json:"user_id" binding:"required"`
	Slots  []WindowInput `json:"slots" binding:"required"`
}

type WeekResponse struct {
	HostID int64                       `json:"host_id"`
	Week   []domain.WorkingHoursWindow `json:"week"`
}
