package in

import (
	"context"
	"time"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
)

type CalendarUseCase interface {
	// Синхронизация доступности с бэкендом
	SyncMonth(ctx context.Context, doctorID string, year int, month time.Month) (*domain.MonthSyncReport, error)
	SyncDay(ctx context.Context, doctorID string, date json_types.Date) error

	// Запросы для отрисовки календаря
	SlotsForDay(doctorID string, date json_types.Date) []domain.Slot
	CountsForDay(doctorID string, date json_types.Date) domain.SlotCounts
	CountsForMonth(doctorID string, year int, month time.Month) map[string]domain.SlotCounts

	// Создание слотов
	CreateSlot(ctx context.Context, slot domain.Slot) (*domain.Slot, error)
	BulkCreate(ctx context.Context, doctorID string, req domain.BulkRequest) ([]domain.Slot, error)

	// Переходы статусов
	BlockSlot(ctx context.Context, slotID string) error
	UnblockSlot(ctx context.Context, slotID string) error
	CancelSlot(ctx context.Context, slotID string, reason string) error
	RescheduleSlot(ctx context.Context, slotID string, date json_types.Date, t json_types.ClockTime) (*domain.Slot, error)
	DeleteSlot(ctx context.Context, slotID string) error

	// Данные для шапки календаря и дашборда
	GetDoctor(ctx context.Context, doctorID string) (*domain.Doctor, error)
	GetDashboardCounts(ctx context.Context) (domain.DashboardCounts, error)
}
