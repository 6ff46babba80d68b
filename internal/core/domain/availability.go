package domain

import (
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
)

// AvailabilityWindow - один интервал приема, как его отдает бэкенд
type AvailabilityWindow struct {
	SlotStart json_types.ClockTime `json:"slot_start"`
	SlotEnd   json_types.ClockTime `json:"slot_end"`
}

// DayAvailability - доступность врача за один календарный день
type DayAvailability struct {
	Date  json_types.Date      `json:"date"`
	Slots []AvailabilityWindow `json:"slots"`
}

// ToSlots превращает интервалы бэкенда в свободные слоты.
// Длительность вычисляется как разница конца и начала интервала.
func (d DayAvailability) ToSlots(doctorID string) []Slot {
	slots := make([]Slot, 0, len(d.Slots))

	for i, window := range d.Slots {
		duration := window.SlotEnd.Sub(window.SlotStart)
		if duration <= 0 {
			continue
		}

		slots = append(slots, Slot{
			ID:       NewServerSlotID(d.Date, window.SlotStart, i),
			DoctorID: doctorID,
			Date:     d.Date,
			Time:     window.SlotStart,
			Duration: duration,
			Status:   SlotStatusAvailable,
		})
	}

	return slots
}
