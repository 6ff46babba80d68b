package calendar_service

import (
	"time"

	"github.com/suchimauz/clinic-schedule-calendar/internal/utils"
)

// BuildMonthMatrix строит понедельную матрицу месяца для календаря.
// 7 колонок (понедельник..воскресенье), nil в ячейках до первого
// и после последнего дня месяца, каждая строка ровно из 7 ячеек.
func BuildMonthMatrix(year int, month time.Month) [][]*time.Time {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := utils.DaysInMonth(year, month)

	// Платформа считает воскресенье нулевым днем, календарь - понедельник
	leadingBlanks := utils.MondayIndex(firstDay.Weekday())

	cells := make([]*time.Time, 0, leadingBlanks+daysInMonth)
	for i := 0; i < leadingBlanks; i++ {
		cells = append(cells, nil)
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		cells = append(cells, &date)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	matrix := make([][]*time.Time, 0, len(cells)/7)
	for start := 0; start < len(cells); start += 7 {
		matrix = append(matrix, cells[start:start+7])
	}

	return matrix
}
