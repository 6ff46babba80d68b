package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/clinic-schedule-calendar/internal/config"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/json_types"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/ports/in"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/services/calendar_service"
)

type CalendarController struct {
	useCase in.CalendarUseCase
	cfg     *config.Config
}

func NewCalendarController(useCase in.CalendarUseCase, cfg *config.Config) *CalendarController {
	return &CalendarController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *CalendarController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/calendar/:doctorId/:year/:month", c.monthView)
		api.GET("/slots/:doctorId/:date", c.daySlots)
		api.POST("/slots", c.createSlot)
		api.POST("/slots/bulk", c.bulkCreateSlots)
		api.POST("/slots/:id/block", c.blockSlot)
		api.POST("/slots/:id/unblock", c.unblockSlot)
		api.POST("/slots/:id/cancel", c.cancelSlot)
		api.POST("/slots/:id/reschedule", c.rescheduleSlot)
		api.DELETE("/slots/:id", c.deleteSlot)
		api.GET("/doctors/:doctorId", c.doctorDetails)
		api.GET("/dashboard", c.dashboard)
	}
}

func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, gin.H{
		"success": status < 400,
		"data":    data,
		"message": message,
	})
}

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound) || errors.Is(err, domain.ErrNotFound):
		respond(ctx, http.StatusNotFound, nil, err.Error())
	case errors.Is(err, domain.ErrSlotBooked) ||
		errors.Is(err, domain.ErrSlotNotBooked) ||
		errors.Is(err, domain.ErrSlotExists):
		respond(ctx, http.StatusConflict, nil, err.Error())
	case errors.Is(err, domain.ErrInvalidDuration) ||
		errors.Is(err, domain.ErrPatientRequired) ||
		errors.Is(err, domain.ErrPatientNotAllowed) ||
		errors.Is(err, domain.ErrUnknownStatus) ||
		errors.Is(err, domain.ErrDoctorRequired) ||
		errors.Is(err, domain.ErrDateRequired) ||
		errors.Is(err, domain.ErrBulkDateRequired) ||
		errors.Is(err, domain.ErrBulkRangeInverted):
		respond(ctx, http.StatusBadRequest, nil, err.Error())
	case errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden):
		respond(ctx, http.StatusBadGateway, nil, err.Error())
	default:
		var syncErr *domain.PartialSyncError
		if errors.As(err, &syncErr) {
			respond(ctx, http.StatusBadGateway, nil, "failed to load month availability")
			return
		}
		respond(ctx, http.StatusInternalServerError, nil, err.Error())
	}
}

// monthView синхронизирует месяц и возвращает матрицу календаря,
// агрегаты по дням и дни, которые не удалось загрузить
func (c *CalendarController) monthView(ctx *gin.Context) {
	doctorID := ctx.Param("doctorId")

	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year < 1 {
		respond(ctx, http.StatusBadRequest, nil, "invalid year")
		return
	}

	monthNum, err := strconv.Atoi(ctx.Param("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		respond(ctx, http.StatusBadRequest, nil, "invalid month")
		return
	}
	month := time.Month(monthNum)

	report, err := c.useCase.SyncMonth(ctx.Request.Context(), doctorID, year, month)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, gin.H{
		"matrix":      calendar_service.BuildMonthMatrix(year, month),
		"counts":      c.useCase.CountsForMonth(doctorID, year, month),
		"failedDates": report.FailedDates,
	}, "")
}

func (c *CalendarController) daySlots(ctx *gin.Context) {
	doctorID := ctx.Param("doctorId")

	date, err := json_types.ParseDate(ctx.Param("date"))
	if err != nil {
		respond(ctx, http.StatusBadRequest, nil, "invalid date format, expected YYYY-MM-DD")
		return
	}

	if ctx.Query("refresh") == "true" {
		if err := c.useCase.SyncDay(ctx.Request.Context(), doctorID, date); err != nil {
			respondError(ctx, err)
			return
		}
	}

	respond(ctx, http.StatusOK, gin.H{
		"slots":  c.useCase.SlotsForDay(doctorID, date),
		"counts": c.useCase.CountsForDay(doctorID, date),
	}, "")
}

type createSlotRequest struct {
	DoctorID string               `json:"doctorId" binding:"required"`
	Date     json_types.Date      `json:"date" binding:"required"`
	Time     json_types.ClockTime `json:"time"`
	Duration int                  `json:"duration" binding:"required"`
	Notes    string               `json:"notes"`
}

func (c *CalendarController) createSlot(ctx *gin.Context) {
	var req createSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, nil, err.Error())
		return
	}

	slot, err := c.useCase.CreateSlot(ctx.Request.Context(), domain.Slot{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Time:     req.Time,
		Duration: req.Duration,
		Status:   domain.SlotStatusAvailable,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, slot, "")
}

type bulkCreateRequest struct {
	DoctorID string             `json:"doctorId" binding:"required"`
	Request  domain.BulkRequest `json:"request" binding:"required"`
}

func (c *CalendarController) bulkCreateSlots(ctx *gin.Context) {
	var req bulkCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, nil, err.Error())
		return
	}

	slots, err := c.useCase.BulkCreate(ctx.Request.Context(), req.DoctorID, req.Request)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, gin.H{
		"created": len(slots),
		"slots":   slots,
	}, "")
}

func (c *CalendarController) blockSlot(ctx *gin.Context) {
	if err := c.useCase.BlockSlot(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "slot blocked")
}

func (c *CalendarController) unblockSlot(ctx *gin.Context) {
	if err := c.useCase.UnblockSlot(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "slot unblocked")
}

type cancelSlotRequest struct {
	Reason string `json:"reason"`
}

func (c *CalendarController) cancelSlot(ctx *gin.Context) {
	var req cancelSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, nil, err.Error())
		return
	}

	if err := c.useCase.CancelSlot(ctx.Request.Context(), ctx.Param("id"), req.Reason); err != nil {
		respondError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "slot cancelled")
}

type rescheduleSlotRequest struct {
	Date json_types.Date      `json:"date" binding:"required"`
	Time json_types.ClockTime `json:"time"`
}

func (c *CalendarController) rescheduleSlot(ctx *gin.Context) {
	var req rescheduleSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, http.StatusBadRequest, nil, err.Error())
		return
	}

	slot, err := c.useCase.RescheduleSlot(ctx.Request.Context(), ctx.Param("id"), req.Date, req.Time)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, slot, "slot rescheduled")
}

func (c *CalendarController) deleteSlot(ctx *gin.Context) {
	if err := c.useCase.DeleteSlot(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "slot deleted")
}

func (c *CalendarController) doctorDetails(ctx *gin.Context) {
	doctor, err := c.useCase.GetDoctor(ctx.Request.Context(), ctx.Param("doctorId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, doctor, "")
}

func (c *CalendarController) dashboard(ctx *gin.Context) {
	counts, err := c.useCase.GetDashboardCounts(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, counts, "")
}

func (c *CalendarController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
