package domain

import (
	"errors"
	"time"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
)

var (
	ErrBulkDateRequired  = errors.New("bulk request requires a date or a date range")
	ErrBulkRangeInverted = errors.New("bulk request end date is before start date")
)

// BulkRequest - массовое создание слотов из рабочего окна.
// Либо один день (Date), либо диапазон (StartDate..EndDate) с
// опциональным фильтром по дням недели. Не сохраняется, живет
// только на время запроса.
type BulkRequest struct {
	StartTime        json_types.ClockTime `json:"startTime"`
	EndTime          json_types.ClockTime `json:"endTime"`
	SlotDuration     int                  `json:"slotDuration"`
	BreakDuration    int                  `json:"breakDuration"`
	Date             *json_types.Date     `json:"date,omitempty"`
	StartDate        *json_types.Date     `json:"startDate,omitempty"`
	EndDate          *json_types.Date     `json:"endDate,omitempty"`
	SelectedWeekdays []time.Weekday       `json:"selectedWeekdays,omitempty"`
}

func (r BulkRequest) Validate() error {
	if r.SlotDuration <= 0 {
		return ErrInvalidDuration
	}
	if r.BreakDuration < 0 {
		return ErrInvalidDuration
	}
	if r.Date == nil && (r.StartDate == nil || r.EndDate == nil) {
		return ErrBulkDateRequired
	}
	if r.Date == nil && r.EndDate.Before(*r.StartDate) {
		return ErrBulkRangeInverted
	}
	return nil
}

// Dates разворачивает запрос в список календарных дней
func (r BulkRequest) Dates() []json_types.Date {
	if r.Date != nil {
		return []json_types.Date{*r.Date}
	}

	var dates []json_types.Date
	for date := *r.StartDate; !date.After(*r.EndDate); date = date.AddDays(1) {
		if !r.weekdaySelected(date.Weekday()) {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

func (r BulkRequest) weekdaySelected(weekday time.Weekday) bool {
	// Пустой фильтр означает все дни недели
	if len(r.SelectedWeekdays) == 0 {
		return true
	}
	for _, selected := range r.SelectedWeekdays {
		if selected == weekday {
			return true
		}
	}
	return false
}
