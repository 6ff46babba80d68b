package calendar_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/ports/out"
	"github.com/suchimauz/clinic-schedule-calendar/internal/utils"
)

// SyncMonth загружает доступность врача за каждый день месяца.
// Все запросы уходят параллельно, каждый завершившийся ответ
// независимо заменяет слоты своего дня. Порядок завершения не важен:
// замены разных дней не пересекаются по данным.
//
// Ошибка одного дня не прерывает остальные: день попадает в
// FailedDates отчета. Ошибка возвращается только когда не загрузился
// ни один день.
func (s *CalendarService) SyncMonth(ctx context.Context, doctorID string, year int, month time.Month) (*domain.MonthSyncReport, error) {
	dates := utils.MonthDates(year, month)
	generation := s.store.NextGeneration(doctorID)

	s.logger.Info("calendar.sync_month.started", out.LogFields{
		"doctorId":   doctorID,
		"year":       year,
		"month":      int(month),
		"days":       len(dates),
		"generation": generation,
	})

	var mu sync.Mutex
	var wg sync.WaitGroup
	failedDates := make([]json_types.Date, 0)
	synced := 0

	for _, date := range dates {
		wg.Add(1)
		go func(date json_types.Date) {
			defer wg.Done()

			if err := s.syncDayWithGeneration(ctx, doctorID, date, generation); err != nil {
				s.logger.Warn("calendar.sync_month.day_failed", out.LogFields{
					"doctorId": doctorID,
					"date":     date.String(),
					"error":    err.Error(),
				})

				mu.Lock()
				failedDates = append(failedDates, date)
				mu.Unlock()
				return
			}

			mu.Lock()
			synced++
			mu.Unlock()
		}(date)
	}

	wg.Wait()

	report := &domain.MonthSyncReport{
		DoctorID:    doctorID,
		Synced:      synced,
		FailedDates: failedDates,
	}

	if len(failedDates) == len(dates) {
		s.logger.Error("calendar.sync_month.failed", out.LogFields{
			"doctorId": doctorID,
			"days":     len(dates),
		})
		return report, &domain.PartialSyncError{Failed: len(failedDates), Total: len(dates)}
	}

	s.logger.Info("calendar.sync_month.finished", out.LogFields{
		"doctorId": doctorID,
		"synced":   synced,
		"failed":   len(failedDates),
	})

	return report, nil
}

// SyncDay обновляет доступность за один день с той же семантикой
// замены, что и месячная синхронизация
func (s *CalendarService) SyncDay(ctx context.Context, doctorID string, date json_types.Date) error {
	generation := s.store.Generation(doctorID)

	if err := s.syncDayWithGeneration(ctx, doctorID, date, generation); err != nil {
		return fmt.Errorf("calendar.sync_day.failed: %w", err)
	}
	return nil
}

func (s *CalendarService) syncDayWithGeneration(ctx context.Context, doctorID string, date json_types.Date, generation uint64) error {
	availability, err := s.clinicPort.GetDayAvailability(ctx, doctorID, date)
	if err != nil {
		return err
	}

	newSlots := availability.ToSlots(doctorID)

	// Ответы, пережившие смену врача или месяца, отбрасываются
	if !s.store.ReplaceForDoctorDateIfCurrent(doctorID, date, newSlots, generation) {
		s.logger.Debug("calendar.sync.stale_response_discarded", out.LogFields{
			"doctorId":   doctorID,
			"date":       date.String(),
			"generation": generation,
		})
		return nil
	}

	return nil
}
