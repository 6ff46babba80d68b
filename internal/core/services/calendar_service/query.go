package calendar_service

import (
	"sort"
	"time"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
	"github.com/suchimauz/clinic-schedule-calendar/internal/utils"
)

// SlotsForDay возвращает слоты пары (врач, день) по возрастанию времени
func (s *SlotStore) SlotsForDay(doctorID string, date json_types.Date) []domain.Slot {
	s.mu.RLock()

	daySlots := make([]domain.Slot, 0)
	for _, slot := range s.slots {
		if slot.DoctorID == doctorID && slot.Date.Equal(date) {
			daySlots = append(daySlots, slot)
		}
	}

	s.mu.RUnlock()

	sort.Slice(daySlots, func(i, j int) bool {
		return daySlots[i].Time < daySlots[j].Time
	})

	return daySlots
}

// CountsForDay считает агрегаты по статусам за день.
// Пересчитывается на каждый вызов, кэша нет: объем - слоты одного дня.
func (s *SlotStore) CountsForDay(doctorID string, date json_types.Date) domain.SlotCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts domain.SlotCounts
	for _, slot := range s.slots {
		if slot.DoctorID != doctorID || !slot.Date.Equal(date) {
			continue
		}

		counts.Total++
		switch slot.Status {
		case domain.SlotStatusAvailable:
			counts.Available++
		case domain.SlotStatusBooked:
			counts.Booked++
		case domain.SlotStatusBlocked:
			counts.Blocked++
		}
	}

	return counts
}

// CountsForMonth возвращает агрегаты по каждому дню месяца,
// ключ - дата в формате YYYY-MM-DD
func (s *SlotStore) CountsForMonth(doctorID string, year int, month time.Month) map[string]domain.SlotCounts {
	result := make(map[string]domain.SlotCounts)
	for _, date := range utils.MonthDates(year, month) {
		result[date.String()] = s.CountsForDay(doctorID, date)
	}
	return result
}
