package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/clinic-schedule-calendar/internal/config"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/ports/out"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/services/calendar_service"
)

type nopLogger struct{}

func (l nopLogger) Debug(event string, fields out.LogFields)       {}
func (l nopLogger) Info(event string, fields out.LogFields)        {}
func (l nopLogger) Warn(event string, fields out.LogFields)        {}
func (l nopLogger) Error(event string, fields out.LogFields)       {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

type fakeClinicAPI struct {
	days map[string][]domain.AvailabilityWindow
}

func (f *fakeClinicAPI) GetDayAvailability(ctx context.Context, doctorID string, date json_types.Date) (*domain.DayAvailability, error) {
	return &domain.DayAvailability{Date: date, Slots: f.days[date.String()]}, nil
}

func (f *fakeClinicAPI) GetDoctorDetails(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	return &domain.Doctor{ID: doctorID, Name: "Dr. Test"}, nil
}

func (f *fakeClinicAPI) GetDashboardCounts(ctx context.Context) (domain.DashboardCounts, error) {
	return domain.DashboardCounts{"appointments": 7}, nil
}

func (f *fakeClinicAPI) BlockSlots(ctx context.Context, doctorID string, date json_types.Date, times []json_types.ClockTime) error {
	return nil
}

func (f *fakeClinicAPI) UnblockSlots(ctx context.Context, doctorID string, date json_types.Date, times []json_types.ClockTime) error {
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *calendar_service.SlotStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.BasicClients = []config.ConfigBasicClient{
		{Username: "test", Password: "secret"},
	}

	store := calendar_service.NewSlotStore()
	service := calendar_service.NewCalendarService(
		&fakeClinicAPI{days: map[string][]domain.AvailabilityWindow{}},
		nil,
		store,
		nopLogger{},
	)

	router := gin.New()
	controller := NewCalendarController(service, cfg)
	controller.RegisterRoutes(router)

	return router, store
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("test", "secret")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", recorder.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.SetBasicAuth("test", "wrong")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong password, got %d", recorder.Code)
	}
}

func TestCreateAndFetchSlot(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/api/v1/slots", gin.H{
		"doctorId": "doc-1",
		"date":     "2024-03-01",
		"time":     "09:00",
		"duration": 30,
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder = doRequest(router, http.MethodGet, "/api/v1/slots/doc-1/2024-03-01", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Slots  []domain.Slot     `json:"slots"`
			Counts domain.SlotCounts `json:"counts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !response.Success {
		t.Fatal("expected success response")
	}
	if len(response.Data.Slots) != 1 || response.Data.Slots[0].Time.String() != "09:00" {
		t.Fatalf("unexpected slots: %+v", response.Data.Slots)
	}
	if response.Data.Counts.Total != 1 || response.Data.Counts.Available != 1 {
		t.Fatalf("unexpected counts: %+v", response.Data.Counts)
	}
}

func TestCreateSlotValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/api/v1/slots", gin.H{
		"doctorId": "doc-1",
		"date":     "2024-03-01",
		"time":     "09:00",
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing duration, got %d", recorder.Code)
	}
}

func TestMonthViewShape(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/v1/calendar/doc-1/2024/2", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response struct {
		Data struct {
			Matrix      [][]*string                  `json:"matrix"`
			Counts      map[string]domain.SlotCounts `json:"counts"`
			FailedDates []json_types.Date            `json:"failedDates"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(response.Data.Matrix) != 5 {
		t.Fatalf("expected 5 weeks for Feb 2024, got %d", len(response.Data.Matrix))
	}
	for i, row := range response.Data.Matrix {
		if len(row) != 7 {
			t.Fatalf("row %d: expected 7 cells, got %d", i, len(row))
		}
	}
	if len(response.Data.Counts) != 29 {
		t.Fatalf("expected 29 day entries, got %d", len(response.Data.Counts))
	}
	if len(response.Data.FailedDates) != 0 {
		t.Fatalf("unexpected failed dates: %v", response.Data.FailedDates)
	}

	recorder = doRequest(router, http.MethodGet, "/api/v1/calendar/doc-1/2024/13", nil)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month 13, got %d", recorder.Code)
	}
}

func TestBlockUnblockDeleteFlow(t *testing.T) {
	router, store := newTestRouter(t)

	date, _ := json_types.ParseDate("2024-03-01")
	slot := domain.Slot{
		ID:       "slot-1",
		DoctorID: "doc-1",
		Date:     date,
		Time:     json_types.NewClockTime(9, 0),
		Duration: 30,
		Status:   domain.SlotStatusAvailable,
	}
	if err := store.Insert(slot); err != nil {
		t.Fatalf("seed: %v", err)
	}

	recorder := doRequest(router, http.MethodPost, "/api/v1/slots/slot-1/block", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("block: expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	stored, _ := store.Get("slot-1")
	if stored.Status != domain.SlotStatusBlocked {
		t.Fatalf("expected blocked, got %s", stored.Status)
	}

	recorder = doRequest(router, http.MethodPost, "/api/v1/slots/slot-1/unblock", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("unblock: expected 200, got %d", recorder.Code)
	}

	recorder = doRequest(router, http.MethodDelete, "/api/v1/slots/slot-1", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", recorder.Code)
	}

	recorder = doRequest(router, http.MethodDelete, "/api/v1/slots/slot-1", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing slot, got %d", recorder.Code)
	}
}

func TestDeleteBookedSlotConflict(t *testing.T) {
	router, store := newTestRouter(t)

	date, _ := json_types.ParseDate("2024-03-01")
	slot := domain.Slot{
		ID:       "booked-1",
		DoctorID: "doc-1",
		Date:     date,
		Time:     json_types.NewClockTime(10, 0),
		Duration: 30,
		Status:   domain.SlotStatusBooked,
		Patient:  &domain.Patient{Name: "Иванов И.И."},
	}
	if err := store.Insert(slot); err != nil {
		t.Fatalf("seed: %v", err)
	}

	recorder := doRequest(router, http.MethodDelete, "/api/v1/slots/booked-1", nil)
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409 for booked slot, got %d", recorder.Code)
	}
}

func TestDashboardAndDoctor(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/v1/dashboard", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", recorder.Code)
	}

	recorder = doRequest(router, http.MethodGet, "/api/v1/doctors/doc-1", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("doctor: expected 200, got %d", recorder.Code)
	}

	var response struct {
		Data domain.Doctor `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if response.Data.Name != "Dr. Test" {
		t.Fatalf("unexpected doctor: %+v", response.Data)
	}
}
