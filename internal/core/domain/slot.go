package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusBlocked   SlotStatus = "blocked"
)

// Patient - данные пациента для отображения, без семантики владения
type Patient struct {
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type Slot struct {
	ID       string               `json:"id"`
	DoctorID string               `json:"doctorId"`
	Date     json_types.Date      `json:"date"`
	Time     json_types.ClockTime `json:"time"`
	Duration int                  `json:"duration"`
	Status   SlotStatus           `json:"status"`
	Patient  *Patient             `json:"patient,omitempty"`
	Notes    string               `json:"notes,omitempty"`
}

// NewLocalSlotID - идентификатор для слотов, созданных локально
func NewLocalSlotID() string {
	return fmt.Sprintf("local-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewServerSlotID - идентификатор для слотов, полученных от бэкенда.
// Индекс гарантирует уникальность в пределах одного дня.
func NewServerSlotID(date json_types.Date, start json_types.ClockTime, index int) string {
	return fmt.Sprintf("%s-%s-%d", date.String(), start.String(), index)
}

// Validate проверяет инварианты слота:
// duration > 0, статус из перечисления, booked требует пациента,
// available/blocked требуют отсутствия пациента.
func (s Slot) Validate() error {
	if s.DoctorID == "" {
		return fmt.Errorf("slot %s: %w", s.ID, ErrDoctorRequired)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("slot %s: %w", s.ID, ErrDateRequired)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("slot %s: %w", s.ID, ErrInvalidDuration)
	}

	switch s.Status {
	case SlotStatusBooked:
		if s.Patient == nil {
			return fmt.Errorf("slot %s: %w", s.ID, ErrPatientRequired)
		}
	case SlotStatusAvailable, SlotStatusBlocked:
		if s.Patient != nil {
			return fmt.Errorf("slot %s: %w", s.ID, ErrPatientNotAllowed)
		}
	default:
		return fmt.Errorf("slot %s: %w: %q", s.ID, ErrUnknownStatus, s.Status)
	}

	return nil
}

// AppendNote добавляет заметку, не затирая историю предыдущих
func (s *Slot) AppendNote(note string) {
	if note == "" {
		return
	}
	if s.Notes == "" {
		s.Notes = note
		return
	}
	s.Notes = s.Notes + "; " + note
}

type SlotCounts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Booked    int `json:"booked"`
	Blocked   int `json:"blocked"`
}
