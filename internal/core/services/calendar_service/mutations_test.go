package calendar_service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
)

func TestCreateSlotAssignsLocalID(t *testing.T) {
	service, _ := newTestService(newFakeClinicAPI())

	slot, err := service.CreateSlot(context.Background(), domain.Slot{
		DoctorID: "doc-1",
		Date:     mustDate(t, "2024-03-01"),
		Time:     mustClock(t, "09:00"),
		Duration: 30,
		Status:   domain.SlotStatusAvailable,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(slot.ID, "local-") {
		t.Fatalf("expected local id, got %s", slot.ID)
	}

	_, err = service.CreateSlot(context.Background(), domain.Slot{
		DoctorID: "doc-1",
		Date:     mustDate(t, "2024-03-01"),
		Time:     mustClock(t, "09:00"),
		Duration: 30,
		Status:   domain.SlotStatusAvailable,
	})
	if !errors.Is(err, domain.ErrSlotExists) {
		t.Fatalf("expected ErrSlotExists, got %v", err)
	}
}

func TestCreateSlotRejectsInvalid(t *testing.T) {
	service, _ := newTestService(newFakeClinicAPI())

	_, err := service.CreateSlot(context.Background(), domain.Slot{
		DoctorID: "doc-1",
		Date:     mustDate(t, "2024-03-01"),
		Time:     mustClock(t, "09:00"),
		Duration: 0,
		Status:   domain.SlotStatusAvailable,
	})
	if !errors.Is(err, domain.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestBulkCreateOverRange(t *testing.T) {
	service, _ := newTestService(newFakeClinicAPI())

	// 2024-03-04 понедельник .. 2024-03-10 воскресенье
	start := mustDate(t, "2024-03-04")
	end := mustDate(t, "2024-03-10")

	created, err := service.BulkCreate(context.Background(), "doc-1", domain.BulkRequest{
		StartTime:        mustClock(t, "09:00"),
		EndTime:          mustClock(t, "10:00"),
		SlotDuration:     30,
		StartDate:        &start,
		EndDate:          &end,
		SelectedWeekdays: []time.Weekday{time.Monday, time.Wednesday},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}

	// 2 дня по 2 слота
	if len(created) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(created))
	}

	monday := service.SlotsForDay("doc-1", mustDate(t, "2024-03-04"))
	if len(monday) != 2 || monday[0].Time.String() != "09:00" || monday[1].Time.String() != "09:30" {
		t.Fatalf("unexpected monday slots: %v", monday)
	}
	if tuesday := service.SlotsForDay("doc-1", mustDate(t, "2024-03-05")); len(tuesday) != 0 {
		t.Fatalf("tuesday must be empty, got %v", tuesday)
	}
}

func TestBulkCreateSkipsExistingTimes(t *testing.T) {
	service, store := newTestService(newFakeClinicAPI())

	existing := testSlot("existing", "doc-1", "2024-03-04", "09:00", domain.SlotStatusBlocked, nil)
	if err := store.Insert(existing); err != nil {
		t.Fatalf("insert: %v", err)
	}

	date := mustDate(t, "2024-03-04")
	created, err := service.BulkCreate(context.Background(), "doc-1", domain.BulkRequest{
		StartTime:    mustClock(t, "09:00"),
		EndTime:      mustClock(t, "10:00"),
		SlotDuration: 30,
		Date:         &date,
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	if len(created) != 1 || created[0].Time.String() != "09:30" {
		t.Fatalf("expected only 09:30 to be created, got %v", created)
	}

	// Существующий слот не перезаписан
	slot, _ := store.Get("existing")
	if slot.Status != domain.SlotStatusBlocked {
		t.Fatalf("existing slot must be untouched, got %s", slot.Status)
	}
}

func TestBulkCreateValidation(t *testing.T) {
	service, _ := newTestService(newFakeClinicAPI())

	_, err := service.BulkCreate(context.Background(), "doc-1", domain.BulkRequest{
		StartTime:    mustClock(t, "09:00"),
		EndTime:      mustClock(t, "10:00"),
		SlotDuration: 30,
	})
	if !errors.Is(err, domain.ErrBulkDateRequired) {
		t.Fatalf("expected ErrBulkDateRequired, got %v", err)
	}

	start := mustDate(t, "2024-03-10")
	end := mustDate(t, "2024-03-04")
	_, err = service.BulkCreate(context.Background(), "doc-1", domain.BulkRequest{
		StartTime:    mustClock(t, "09:00"),
		EndTime:      mustClock(t, "10:00"),
		SlotDuration: 30,
		StartDate:    &start,
		EndDate:      &end,
	})
	if !errors.Is(err, domain.ErrBulkRangeInverted) {
		t.Fatalf("expected ErrBulkRangeInverted, got %v", err)
	}
}

func TestBlockSlotGoesThroughBackend(t *testing.T) {
	api := newFakeClinicAPI()
	service, store := newTestService(api)

	if err := store.Insert(testSlot("a", "doc-1", "2024-03-01", "09:00", domain.SlotStatusAvailable, nil)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := service.BlockSlot(context.Background(), "a"); err != nil {
		t.Fatalf("block: %v", err)
	}
	if api.blockCalls != 1 {
		t.Fatalf("expected 1 backend block call, got %d", api.blockCalls)
	}

	slot, _ := store.Get("a")
	if slot.Status != domain.SlotStatusBlocked {
		t.Fatalf("expected blocked, got %s", slot.Status)
	}

	if err := service.UnblockSlot(context.Background(), "a"); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if api.unblockCalls != 1 {
		t.Fatalf("expected 1 backend unblock call, got %d", api.unblockCalls)
	}
	slot, _ = store.Get("a")
	if slot.Status != domain.SlotStatusAvailable {
		t.Fatalf("expected available, got %s", slot.Status)
	}
}

func TestBlockSlotBackendFailureKeepsLocalState(t *testing.T) {
	api := newFakeClinicAPI()
	api.blockErr = &domain.HTTPError{Status: 500}
	service, store := newTestService(api)

	if err := store.Insert(testSlot("a", "doc-1", "2024-03-01", "09:00", domain.SlotStatusAvailable, nil)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := service.BlockSlot(context.Background(), "a"); err == nil {
		t.Fatal("expected error when backend rejects block")
	}

	slot, _ := store.Get("a")
	if slot.Status != domain.SlotStatusAvailable {
		t.Fatalf("local state must stay available after backend failure, got %s", slot.Status)
	}
}

func TestBlockBookedSlotRejected(t *testing.T) {
	api := newFakeClinicAPI()
	service, store := newTestService(api)

	patient := &domain.Patient{Name: "Иванов И.И."}
	if err := store.Insert(testSlot("a", "doc-1", "2024-03-01", "09:00", domain.SlotStatusBooked, patient)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := service.BlockSlot(context.Background(), "a"); !errors.Is(err, domain.ErrSlotBooked) {
		t.Fatalf("expected ErrSlotBooked, got %v", err)
	}
	if api.blockCalls != 0 {
		t.Fatal("backend must not be called for booked slot")
	}
}

func TestCancelSlot(t *testing.T) {
	service, store := newTestService(newFakeClinicAPI())

	patient := &domain.Patient{Name: "Иванов И.И."}
	if err := store.Insert(testSlot("a", "doc-1", "2024-03-01", "09:00", domain.SlotStatusBooked, patient)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := service.CancelSlot(context.Background(), "a", "patient request"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	slot, _ := store.Get("a")
	if slot.Status != domain.SlotStatusAvailable {
		t.Fatalf("expected available, got %s", slot.Status)
	}
	if slot.Patient != nil {
		t.Fatal("cancelled slot must have no patient")
	}
	if slot.Notes != "Cancelled: patient request" {
		t.Fatalf("unexpected notes: %q", slot.Notes)
	}

	// Отмена свободного слота запрещена
	if err := service.CancelSlot(context.Background(), "a", ""); !errors.Is(err, domain.ErrSlotNotBooked) {
		t.Fatalf("expected ErrSlotNotBooked, got %v", err)
	}
}

func TestRescheduleSlot(t *testing.T) {
	service, store := newTestService(newFakeClinicAPI())

	patient := &domain.Patient{Name: "Иванов И.И.", Reason: "checkup"}
	if err := store.Insert(testSlot("a", "doc-1", "2024-03-01", "09:00", domain.SlotStatusBooked, patient)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	newSlot, err := service.RescheduleSlot(context.Background(), "a", mustDate(t, "2024-03-08"), mustClock(t, "11:00"))
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	if newSlot.Status != domain.SlotStatusBooked || newSlot.Patient == nil || newSlot.Patient.Name != "Иванов И.И." {
		t.Fatalf("patient must move to the new slot: %+v", newSlot)
	}
	if newSlot.Date.String() != "2024-03-08" || newSlot.Time.String() != "11:00" {
		t.Fatalf("unexpected new slot placement: %+v", newSlot)
	}

	original, _ := store.Get("a")
	if original.Status != domain.SlotStatusAvailable || original.Patient != nil {
		t.Fatalf("original slot must be freed: %+v", original)
	}
	if original.Notes != "Rescheduled to 2024-03-08 11:00" {
		t.Fatalf("unexpected notes: %q", original.Notes)
	}
}

func TestDeleteSlot(t *testing.T) {
	service, store := newTestService(newFakeClinicAPI())

	patient := &domain.Patient{Name: "Иванов И.И."}
	if err := store.BulkInsert([]domain.Slot{
		testSlot("free", "doc-1", "2024-03-01", "09:00", domain.SlotStatusAvailable, nil),
		testSlot("booked", "doc-1", "2024-03-01", "09:30", domain.SlotStatusBooked, patient),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := service.DeleteSlot(context.Background(), "free"); err != nil {
		t.Fatalf("delete free: %v", err)
	}
	if err := service.DeleteSlot(context.Background(), "booked"); !errors.Is(err, domain.ErrSlotBooked) {
		t.Fatalf("expected ErrSlotBooked, got %v", err)
	}
	if err := service.DeleteSlot(context.Background(), "missing"); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestGetDoctorUsesPort(t *testing.T) {
	service, _ := newTestService(newFakeClinicAPI())

	doctor, err := service.GetDoctor(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("get doctor: %v", err)
	}
	if doctor.ID != "doc-1" || doctor.Name != "Dr. Test" {
		t.Fatalf("unexpected doctor: %+v", doctor)
	}
}
