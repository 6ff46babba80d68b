package calendar_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/ports/out"
)

// CreateSlot создает один локальный слот
func (s *CalendarService) CreateSlot(ctx context.Context, slot domain.Slot) (*domain.Slot, error) {
	if slot.ID == "" {
		slot.ID = domain.NewLocalSlotID()
	}

	if err := s.store.Insert(slot); err != nil {
		return nil, fmt.Errorf("slot.create.failed: %w", err)
	}

	s.logger.Info("slot.created", out.LogFields{
		"slotId":   slot.ID,
		"doctorId": slot.DoctorID,
		"date":     slot.Date.String(),
		"time":     slot.Time.String(),
	})

	return &slot, nil
}

// BulkCreate разворачивает рабочее окно в свободные слоты по всем
// дням запроса. Времена, на которые слот уже существует, пропускаются.
func (s *CalendarService) BulkCreate(ctx context.Context, doctorID string, req domain.BulkRequest) ([]domain.Slot, error) {
	if doctorID == "" {
		return nil, domain.ErrDoctorRequired
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("slot.bulk_create.invalid: %w", err)
	}

	times := GenerateTimes(req.StartTime, req.EndTime, req.SlotDuration, req.BreakDuration)

	created := make([]domain.Slot, 0)
	for _, date := range req.Dates() {
		for _, t := range times {
			if s.store.HasSlot(doctorID, date, t) {
				continue
			}

			slot := domain.Slot{
				ID:       domain.NewLocalSlotID(),
				DoctorID: doctorID,
				Date:     date,
				Time:     t,
				Duration: req.SlotDuration,
				Status:   domain.SlotStatusAvailable,
			}
			created = append(created, slot)
		}
	}

	if err := s.store.BulkInsert(created); err != nil {
		return nil, fmt.Errorf("slot.bulk_create.failed: %w", err)
	}

	s.logger.Info("slot.bulk_created", out.LogFields{
		"doctorId": doctorID,
		"count":    len(created),
	})

	return created, nil
}

// BlockSlot блокирует слот. Сначала блокировка уходит на бэкенд,
// локальное состояние меняется только после его подтверждения.
func (s *CalendarService) BlockSlot(ctx context.Context, slotID string) error {
	slot, exists := s.store.Get(slotID)
	if !exists {
		return fmt.Errorf("%s: %w", slotID, domain.ErrSlotNotFound)
	}
	if slot.Status == domain.SlotStatusBooked {
		return fmt.Errorf("%s: %w", slotID, domain.ErrSlotBooked)
	}

	if err := s.clinicPort.BlockSlots(ctx, slot.DoctorID, slot.Date, []json_types.ClockTime{slot.Time}); err != nil {
		s.logger.Error("slot.block.api_failed", out.LogFields{
			"slotId": slotID,
			"error":  err.Error(),
		})
		return fmt.Errorf("slot.block.api_failed: %w", err)
	}

	if err := s.store.SetStatus(slotID, domain.SlotStatusBlocked, nil, ""); err != nil {
		return err
	}

	s.logger.Info("slot.blocked", out.LogFields{
		"slotId": slotID,
	})
	return nil
}

// UnblockSlot снимает блокировку, так же через бэкенд
func (s *CalendarService) UnblockSlot(ctx context.Context, slotID string) error {
	slot, exists := s.store.Get(slotID)
	if !exists {
		return fmt.Errorf("%s: %w", slotID, domain.ErrSlotNotFound)
	}

	if err := s.clinicPort.UnblockSlots(ctx, slot.DoctorID, slot.Date, []json_types.ClockTime{slot.Time}); err != nil {
		s.logger.Error("slot.unblock.api_failed", out.LogFields{
			"slotId": slotID,
			"error":  err.Error(),
		})
		return fmt.Errorf("slot.unblock.api_failed: %w", err)
	}

	if err := s.store.SetStatus(slotID, domain.SlotStatusAvailable, nil, ""); err != nil {
		return err
	}

	s.logger.Info("slot.unblocked", out.LogFields{
		"slotId": slotID,
	})
	return nil
}

// CancelSlot отменяет бронь: слот снова свободен, причина отмены
// остается в заметках
func (s *CalendarService) CancelSlot(ctx context.Context, slotID string, reason string) error {
	slot, exists := s.store.Get(slotID)
	if !exists {
		return fmt.Errorf("%s: %w", slotID, domain.ErrSlotNotFound)
	}
	if slot.Status != domain.SlotStatusBooked {
		return fmt.Errorf("%s: %w", slotID, domain.ErrSlotNotBooked)
	}

	note := "Cancelled"
	if reason != "" {
		note = "Cancelled: " + reason
	}

	if err := s.store.SetStatus(slotID, domain.SlotStatusAvailable, nil, note); err != nil {
		return err
	}

	s.logger.Info("slot.cancelled", out.LogFields{
		"slotId": slotID,
		"reason": reason,
	})
	return nil
}

// RescheduleSlot переносит бронь: создается новый забронированный слот
// на новое время, исходный освобождается с отметкой о переносе
func (s *CalendarService) RescheduleSlot(ctx context.Context, slotID string, date json_types.Date, t json_types.ClockTime) (*domain.Slot, error) {
	slot, exists := s.store.Get(slotID)
	if !exists {
		return nil, fmt.Errorf("%s: %w", slotID, domain.ErrSlotNotFound)
	}
	if slot.Status != domain.SlotStatusBooked {
		return nil, fmt.Errorf("%s: %w", slotID, domain.ErrSlotNotBooked)
	}

	newSlot := domain.Slot{
		ID:       domain.NewLocalSlotID(),
		DoctorID: slot.DoctorID,
		Date:     date,
		Time:     t,
		Duration: slot.Duration,
		Status:   domain.SlotStatusBooked,
		Patient:  slot.Patient,
	}

	if err := s.store.Insert(newSlot); err != nil {
		return nil, fmt.Errorf("slot.reschedule.failed: %w", err)
	}

	note := fmt.Sprintf("Rescheduled to %s %s", date.String(), t.String())
	if err := s.store.SetStatus(slotID, domain.SlotStatusAvailable, nil, note); err != nil {
		// Откатываем созданный слот, чтобы не оставить две брони
		_ = s.store.Remove(newSlot.ID)
		return nil, err
	}

	s.logger.Info("slot.rescheduled", out.LogFields{
		"slotId":    slotID,
		"newSlotId": newSlot.ID,
		"date":      date.String(),
		"time":      t.String(),
	})

	return &newSlot, nil
}

// DeleteSlot удаляет слот из хранилища. Для забронированных слотов
// удаление запрещено на уровне хранилища.
func (s *CalendarService) DeleteSlot(ctx context.Context, slotID string) error {
	if err := s.store.Remove(slotID); err != nil {
		return fmt.Errorf("slot.delete.failed: %w", err)
	}

	s.logger.Info("slot.deleted", out.LogFields{
		"slotId": slotID,
	})
	return nil
}
