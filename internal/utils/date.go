package utils

import (
	"time"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
)

// DaysInMonth возвращает количество дней в месяце с учетом високосных лет
func DaysInMonth(year int, month time.Month) int {
	// Нулевой день следующего месяца - последний день текущего
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDates возвращает все календарные дни месяца по порядку
func MonthDates(year int, month time.Month) []json_types.Date {
	days := DaysInMonth(year, month)
	dates := make([]json_types.Date, 0, days)
	for day := 1; day <= days; day++ {
		dates = append(dates, json_types.NewDate(year, month, day))
	}
	return dates
}

// MondayIndex переводит weekday из соглашения Sunday=0 в Monday=0
func MondayIndex(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}
