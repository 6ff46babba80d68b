package calendar_service

import (
	"fmt"
	"sync"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
)

// SlotStore - единственное разделяемое хранилище слотов.
// Живет в памяти процесса, мутируется только через свои методы.
// Поколения (generations) нужны, чтобы отбрасывать ответы
// синхронизаций, которые были запущены до смены врача или месяца.
type SlotStore struct {
	mu          sync.RWMutex
	slots       []domain.Slot
	generations map[string]uint64
}

func NewSlotStore() *SlotStore {
	return &SlotStore{
		slots:       make([]domain.Slot, 0),
		generations: make(map[string]uint64),
	}
}

// NextGeneration открывает новое поколение синхронизации для врача.
// Все незавершенные синхронизации предыдущих поколений становятся
// устаревшими, их результаты не применяются.
func (s *SlotStore) NextGeneration(doctorID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generations[doctorID]++
	return s.generations[doctorID]
}

func (s *SlotStore) Generation(doctorID string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.generations[doctorID]
}

func (s *SlotStore) Insert(slot domain.Slot) error {
	if err := slot.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.slots {
		if existing.DoctorID == slot.DoctorID && existing.Date.Equal(slot.Date) && existing.Time == slot.Time {
			return fmt.Errorf("%s %s %s: %w", slot.DoctorID, slot.Date, slot.Time, domain.ErrSlotExists)
		}
	}

	s.slots = append(s.slots, slot)
	return nil
}

func (s *SlotStore) BulkInsert(slots []domain.Slot) error {
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots = append(s.slots, slots...)
	return nil
}

// ReplaceForDoctorDate атомарно удаляет все слоты пары (врач, день)
// и вставляет новый набор. Это единственная мутация реконсилиации:
// после нее для дня не остается ни дублей, ни устаревших слотов.
func (s *SlotStore) ReplaceForDoctorDate(doctorID string, date json_types.Date, newSlots []domain.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replaceLocked(doctorID, date, newSlots)
}

// ReplaceForDoctorDateIfCurrent применяет замену только если поколение
// синхронизации все еще актуально. Возвращает false для устаревших.
func (s *SlotStore) ReplaceForDoctorDateIfCurrent(doctorID string, date json_types.Date, newSlots []domain.Slot, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generations[doctorID] != generation {
		return false
	}

	s.replaceLocked(doctorID, date, newSlots)
	return true
}

func (s *SlotStore) replaceLocked(doctorID string, date json_types.Date, newSlots []domain.Slot) {
	kept := s.slots[:0]
	for _, slot := range s.slots {
		if slot.DoctorID == doctorID && slot.Date.Equal(date) {
			continue
		}
		kept = append(kept, slot)
	}
	s.slots = append(kept, newSlots...)
}

// Get возвращает копию слота по идентификатору
func (s *SlotStore) Get(slotID string) (*domain.Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, slot := range s.slots {
		if slot.ID == slotID {
			found := slot
			return &found, true
		}
	}
	return nil, false
}

// SetStatus переводит слот в новый статус.
// Инвариант booked<->patient проверяется здесь, а не в UI.
// Заметка добавляется к существующим, история не затирается.
func (s *SlotStore) SetStatus(slotID string, status domain.SlotStatus, patient *domain.Patient, notesAppend string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.slots {
		if s.slots[i].ID != slotID {
			continue
		}

		updated := s.slots[i]
		updated.Status = status
		updated.Patient = patient
		updated.AppendNote(notesAppend)

		if err := updated.Validate(); err != nil {
			return err
		}

		s.slots[i] = updated
		return nil
	}

	return fmt.Errorf("%s: %w", slotID, domain.ErrSlotNotFound)
}

// Remove удаляет слот. Забронированный слот удалить нельзя,
// сначала его нужно отменить.
func (s *SlotStore) Remove(slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.slots {
		if s.slots[i].ID != slotID {
			continue
		}

		if s.slots[i].Status == domain.SlotStatusBooked {
			return fmt.Errorf("%s: %w", slotID, domain.ErrSlotBooked)
		}

		s.slots = append(s.slots[:i], s.slots[i+1:]...)
		return nil
	}

	return fmt.Errorf("%s: %w", slotID, domain.ErrSlotNotFound)
}

// HasSlot проверяет наличие слота по ключу (врач, день, время)
func (s *SlotStore) HasSlot(doctorID string, date json_types.Date, t json_types.ClockTime) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, slot := range s.slots {
		if slot.DoctorID == doctorID && slot.Date.Equal(date) && slot.Time == t {
			return true
		}
	}
	return false
}

func (s *SlotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.slots)
}
