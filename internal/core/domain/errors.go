package domain

import (
	"errors"
	"fmt"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
)

var (
	ErrDoctorRequired    = errors.New("doctor id is required")
	ErrDateRequired      = errors.New("date is required")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrUnknownStatus     = errors.New("unknown slot status")
	ErrPatientRequired   = errors.New("booked slot requires a patient")
	ErrPatientNotAllowed = errors.New("patient is only allowed on booked slots")

	ErrSlotNotFound  = errors.New("slot not found")
	ErrSlotExists    = errors.New("slot already exists for this doctor, date and time")
	ErrSlotBooked    = errors.New("booked slot must be cancelled first")
	ErrSlotNotBooked = errors.New("slot is not booked")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// HTTPError - ответ бэкенда со статусом вне 2xx
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Status)
}

// PartialSyncError возвращается, когда не удалось загрузить
// доступность ни за один день месяца
type PartialSyncError struct {
	Failed int
	Total  int
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("availability sync failed for %d of %d days", e.Failed, e.Total)
}

// MonthSyncReport - результат синхронизации месяца.
// FailedDates позволяет UI отличать "не загрузилось" от "нет приема".
type MonthSyncReport struct {
	DoctorID    string            `json:"doctorId"`
	Synced      int               `json:"synced"`
	FailedDates []json_types.Date `json:"failedDates"`
}
