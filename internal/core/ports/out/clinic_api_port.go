package out

import (
	"context"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
)

type ClinicAPIPort interface {
	// Доступность врача за один день. Отсутствие расписания (404)
	// не является ошибкой: возвращается пустой список интервалов.
	GetDayAvailability(ctx context.Context, doctorID string, date json_types.Date) (*domain.DayAvailability, error)

	// Профиль врача
	GetDoctorDetails(ctx context.Context, doctorID string) (*domain.Doctor, error)

	// Счетчики дашборда
	GetDashboardCounts(ctx context.Context) (domain.DashboardCounts, error)

	// Блокировка и разблокировка слотов на стороне бэкенда
	BlockSlots(ctx context.Context, doctorID string, date json_types.Date, times []json_types.ClockTime) error
	UnblockSlots(ctx context.Context, doctorID string, date json_types.Date, times []json_types.ClockTime) error
}
