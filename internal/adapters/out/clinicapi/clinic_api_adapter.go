package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/suchimauz/clinic-schedule-calendar/internal/config"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/ports/out"
)

// Единый конверт ответов клиник-бэкенда
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type ClinicAPIAdapter struct {
	client  *http.Client
	baseURL string
	token   string
	logger  out.LoggerPort
}

func NewClinicAPIAdapter(cfg *config.Config, logger out.LoggerPort) *ClinicAPIAdapter {
	return &ClinicAPIAdapter{
		client:  &http.Client{Timeout: time.Duration(cfg.ClinicAPI.TimeoutSeconds) * time.Second},
		baseURL: cfg.ClinicAPI.URL,
		token:   cfg.ClinicAPI.Token,
		logger:  logger,
	}
}

func (a *ClinicAPIAdapter) GetDayAvailability(ctx context.Context, doctorID string, date json_types.Date) (*domain.DayAvailability, error) {
	url := fmt.Sprintf("%s/list-doctor-availability/%s/%s/", a.baseURL, doctorID, date.String())

	empty := &domain.DayAvailability{Date: date, Slots: []domain.AvailabilityWindow{}}

	var envelope apiEnvelope
	status, err := a.doJSON(ctx, http.MethodGet, url, nil, &envelope)
	if err != nil {
		a.logger.Error("clinicapi.availability.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"error":    err.Error(),
		})
		return nil, err
	}

	// У врача нет расписания на этот день - это не ошибка
	if status == http.StatusNotFound {
		a.logger.Debug("clinicapi.availability.not_found", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
		})
		return empty, nil
	}

	if err := classifyStatus(status); err != nil {
		a.logger.Error("clinicapi.availability.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"status":   status,
		})
		return nil, err
	}

	if !envelope.Success || len(envelope.Data) == 0 {
		return empty, nil
	}

	var availability domain.DayAvailability
	if err := json.Unmarshal(envelope.Data, &availability); err != nil {
		a.logger.Error("clinicapi.availability.decode_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"error":    err.Error(),
		})
		return nil, err
	}

	if availability.Date.IsZero() {
		availability.Date = date
	}

	a.logger.Debug("clinicapi.availability.fetch_success", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
		"slots":    len(availability.Slots),
	})

	return &availability, nil
}

func (a *ClinicAPIAdapter) GetDoctorDetails(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	a.logger.Info("clinicapi.doctor.fetch", out.LogFields{
		"doctorId": doctorID,
	})

	url := fmt.Sprintf("%s/doctor-details/%s/", a.baseURL, doctorID)

	var envelope apiEnvelope
	status, err := a.doJSON(ctx, http.MethodGet, url, nil, &envelope)
	if err != nil {
		return nil, err
	}
	if err := classifyStatus(status); err != nil {
		return nil, err
	}

	var doctor domain.Doctor
	if err := json.Unmarshal(envelope.Data, &doctor); err != nil {
		a.logger.Error("clinicapi.doctor.decode_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	if doctor.ID == "" {
		doctor.ID = doctorID
	}

	return &doctor, nil
}

func (a *ClinicAPIAdapter) GetDashboardCounts(ctx context.Context) (domain.DashboardCounts, error) {
	a.logger.Info("clinicapi.dashboard.fetch", out.LogFields{})

	url := fmt.Sprintf("%s/dashboard-counts/", a.baseURL)

	var envelope apiEnvelope
	status, err := a.doJSON(ctx, http.MethodGet, url, nil, &envelope)
	if err != nil {
		return nil, err
	}
	if err := classifyStatus(status); err != nil {
		return nil, err
	}

	var counts domain.DashboardCounts
	if err := json.Unmarshal(envelope.Data, &counts); err != nil {
		a.logger.Error("clinicapi.dashboard.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return counts, nil
}

type blockUnblockRequest struct {
	DoctorID string                 `json:"doctor_id"`
	Date     json_types.Date        `json:"date"`
	Slots    []json_types.ClockTime `json:"slots"`
}

func (a *ClinicAPIAdapter) BlockSlots(ctx context.Context, doctorID string, date json_types.Date, times []json_types.ClockTime) error {
	return a.blockUnblock(ctx, http.MethodPost, "clinicapi.slots.block", doctorID, date, times)
}

func (a *ClinicAPIAdapter) UnblockSlots(ctx context.Context, doctorID string, date json_types.Date, times []json_types.ClockTime) error {
	return a.blockUnblock(ctx, http.MethodDelete, "clinicapi.slots.unblock", doctorID, date, times)
}

func (a *ClinicAPIAdapter) blockUnblock(ctx context.Context, method, event, doctorID string, date json_types.Date, times []json_types.ClockTime) error {
	a.logger.Info(event, out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
		"slots":    len(times),
	})

	url := fmt.Sprintf("%s/slots-block-unblock/", a.baseURL)
	body := blockUnblockRequest{
		DoctorID: doctorID,
		Date:     date,
		Slots:    times,
	}

	var envelope apiEnvelope
	status, err := a.doJSON(ctx, method, url, body, &envelope)
	if err != nil {
		a.logger.Error(event+"_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"error":    err.Error(),
		})
		return err
	}

	if err := classifyStatus(status); err != nil {
		a.logger.Error(event+"_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"status":   status,
		})
		return err
	}

	if !envelope.Success {
		return fmt.Errorf("%s rejected: %s", event, envelope.Message)
	}

	return nil
}

// doJSON выполняет запрос и декодирует конверт ответа.
// Ошибка возвращается только для транспортных сбоев, статус - всегда.
func (a *ClinicAPIAdapter) doJSON(ctx context.Context, method, url string, body interface{}, envelope *apiEnvelope) (int, error) {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Тело вне 2xx может быть не конвертом, не настаиваем на декодировании
	if decodeErr := json.NewDecoder(resp.Body).Decode(envelope); decodeErr != nil && resp.StatusCode < 300 {
		return resp.StatusCode, decodeErr
	}

	return resp.StatusCode, nil
}

// classifyStatus переводит статус ответа в ошибку предметной области
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return &domain.HTTPError{Status: status}
	}
}
