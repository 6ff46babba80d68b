package calendar_service

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/ports/out"
)

type CalendarService struct {
	clinicPort out.ClinicAPIPort
	cachePort  out.CachePort
	logger     out.LoggerPort
	store      *SlotStore
}

func NewCalendarService(
	clinicPort out.ClinicAPIPort,
	cachePort out.CachePort,
	store *SlotStore,
	logger out.LoggerPort,
) *CalendarService {
	return &CalendarService{
		clinicPort: clinicPort,
		cachePort:  cachePort,
		store:      store,
		logger:     logger.WithModule("CalendarService"),
	}
}

func (s *CalendarService) SlotsForDay(doctorID string, date json_types.Date) []domain.Slot {
	return s.store.SlotsForDay(doctorID, date)
}

func (s *CalendarService) CountsForDay(doctorID string, date json_types.Date) domain.SlotCounts {
	return s.store.CountsForDay(doctorID, date)
}

func (s *CalendarService) CountsForMonth(doctorID string, year int, month time.Month) map[string]domain.SlotCounts {
	return s.store.CountsForMonth(doctorID, year, month)
}

func (s *CalendarService) GetDoctor(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	// Проверяем кэш только если он включен
	if s.cachePort != nil {
		if doctor, exists := s.cachePort.GetDoctor(ctx, doctorID); exists {
			s.logger.Debug("doctor.cache.hit", out.LogFields{
				"doctorId": doctorID,
			})
			return doctor, nil
		}
	}

	doctor, err := s.clinicPort.GetDoctorDetails(ctx, doctorID)
	if err != nil {
		s.logger.Error("doctor.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("doctor.fetch_failed: %w", err)
	}

	if s.cachePort != nil {
		s.cachePort.StoreDoctor(ctx, *doctor)
	}

	return doctor, nil
}

func (s *CalendarService) GetDashboardCounts(ctx context.Context) (domain.DashboardCounts, error) {
	if s.cachePort != nil {
		if counts, exists := s.cachePort.GetDashboardCounts(ctx); exists {
			s.logger.Debug("dashboard.cache.hit", out.LogFields{})
			return counts, nil
		}
	}

	counts, err := s.clinicPort.GetDashboardCounts(ctx)
	if err != nil {
		s.logger.Error("dashboard.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("dashboard.fetch_failed: %w", err)
	}

	if s.cachePort != nil {
		s.cachePort.StoreDashboardCounts(ctx, counts)
	}

	return counts, nil
}
