package out

import (
	"context"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
)

type CachePort interface {
	// Кэширование профилей врачей
	GetDoctor(ctx context.Context, doctorID string) (*domain.Doctor, bool)
	StoreDoctor(ctx context.Context, doctor domain.Doctor)
	InvalidateDoctor(ctx context.Context, doctorID string)

	// Кэширование счетчиков дашборда
	GetDashboardCounts(ctx context.Context) (domain.DashboardCounts, bool)
	StoreDashboardCounts(ctx context.Context, counts domain.DashboardCounts)
	InvalidateDashboardCounts(ctx context.Context)
}
