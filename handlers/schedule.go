package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"panelwise/config"
	"panelwise/models"
	"panelwise/services/scheduling"
	"panelwise/utils"
)

// ScheduleHandler exposes the scheduling core over HTTP.
type ScheduleHandler struct {
	Svc scheduling.SchedulingService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(svc scheduling.SchedulingService) *ScheduleHandler {
	return &ScheduleHandler{Svc: svc}
}

// requestContext derives the whole-request deadline every scheduling
// call runs under.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	deadline := time.Duration(config.AppConfig.RequestDeadlineSecs) * time.Second
	if deadline <= 0 {
		deadline = 30 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), deadline)
}

// tagRequest attaches a correlation id to the response and logs.
func tagRequest(c *gin.Context) string {
	requestID := uuid.New().String()
	c.Header("X-Request-ID", requestID)
	return requestID
}

// respondSchedulingError maps the scheduling error taxonomy onto HTTP
// statuses.
func respondSchedulingError(c *gin.Context, requestID string, err error) {
	logger := utils.GetLogger()
	kind := scheduling.KindOf(err)
	logger.Warn("scheduling request failed",
		zap.String("requestID", requestID), zap.String("kind", string(kind)), zap.Error(err))

	status := http.StatusInternalServerError
	switch kind {
	case scheduling.KindBadRequest:
		status = http.StatusBadRequest
	case scheduling.KindNotFound:
		status = http.StatusNotFound
	case scheduling.KindPolicyViolation:
		status = http.StatusUnprocessableEntity
	case scheduling.KindProviderError:
		status = http.StatusBadGateway
	case scheduling.KindTimeout:
		status = http.StatusGatewayTimeout
	}

	message := err.Error()
	var se *scheduling.Error
	if errors.As(err, &se) {
		message = se.Reason
	}
	utils.JSONError(c, status, string(kind), message)
}

// ComputeSlotsHandler returns working-hours-gated slots for a panel.
func (h *ScheduleHandler) ComputeSlotsHandler(c *gin.Context) {
	requestID := tagRequest(c)
	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, string(scheduling.KindBadRequest), "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	res, err := h.Svc.ComputeAvailableSlots(ctx, req)
	if err != nil {
		respondSchedulingError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ComputeAllSlotsHandler returns full-day slots, gated by busy
// intervals only.
func (h *ScheduleHandler) ComputeAllSlotsHandler(c *gin.Context) {
	requestID := tagRequest(c)
	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, string(scheduling.KindBadRequest), "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	res, err := h.Svc.ComputeAllSlots(ctx, req)
	if err != nil {
		respondSchedulingError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": res.Slots})
}

// CheckSlotHandler validates one proposed interval.
func (h *ScheduleHandler) CheckSlotHandler(c *gin.Context) {
	requestID := tagRequest(c)
	var req models.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, string(scheduling.KindBadRequest), "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	res, err := h.Svc.CheckCustomSlot(ctx, req)
	if err != nil {
		respondSchedulingError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PanelEventsHandler lists each participant's events on a date.
// Query params: ids (comma-separated), date, timezone.
func (h *ScheduleHandler) PanelEventsHandler(c *gin.Context) {
	requestID := tagRequest(c)
	ids := strings.Split(c.Query("ids"), ",")
	date := c.Query("date")
	zone := c.Query("timezone")

	ctx, cancel := requestContext(c)
	defer cancel()
	res, err := h.Svc.GetPanelEvents(ctx, ids, date, zone)
	if err != nil {
		respondSchedulingError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
