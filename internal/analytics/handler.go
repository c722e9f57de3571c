package analytics

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eleven-am/chat-analytics/internal/dto"
	"github.com/eleven-am/chat-analytics/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetSummary)
	g.POST("", h.Record)
	g.GET("/:sessionId", h.GetSessionAnalytics)
}

func snapshotToResponse(s *SessionAnalytics) dto.SessionAnalyticsResponse {
	return dto.SessionAnalyticsResponse{
		ID:              s.ID,
		SessionID:       s.SessionID,
		MessageCount:    s.MessageCount,
		SessionDuration: s.SessionDuration,
		CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// GetSummary godoc
// @Summary      Aggregated chat analytics
// @Description  Computes totals, average response time, hourly message histogram and recent sessions per day
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  analytics.Summary
// @Failure      500  {object}  shared.APIError
// @Router       /analytics [get]
func (h *Handler) GetSummary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to compute summary", "error", err)
		return shared.InternalError("summary_failed", "failed to compute analytics")
	}
	return c.JSON(http.StatusOK, summary)
}

// Record godoc
// @Summary      Report session counters
// @Description  Creates or replaces the analytics snapshot of a session
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        request  body      dto.RecordAnalyticsRequest  true  "Session counters"
// @Success      200      {object}  dto.SessionAnalyticsResponse
// @Failure      400      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /analytics [post]
func (h *Handler) Record(c echo.Context) error {
	var req dto.RecordAnalyticsRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	if req.SessionID == "" {
		return shared.InvalidField("missing_session_id", "sessionId", "sessionId is required")
	}

	var messageCount, duration int64
	if req.MessageCount != nil {
		messageCount = *req.MessageCount
	}
	if req.SessionDuration != nil {
		duration = *req.SessionDuration
	}
	if messageCount < 0 {
		return shared.InvalidField("invalid_message_count", "messageCount", "messageCount must not be negative")
	}
	if duration < 0 {
		return shared.InvalidField("invalid_session_duration", "sessionDuration", "sessionDuration must not be negative")
	}

	row, err := h.service.RecordSnapshot(c.Request().Context(), req.SessionID, messageCount, duration)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("session_not_found", "session not found")
		}
		h.logger.Error("failed to record analytics", "error", err, "session_id", req.SessionID)
		return shared.InternalError("record_failed", "failed to record analytics")
	}

	return c.JSON(http.StatusOK, snapshotToResponse(row))
}

// GetSessionAnalytics godoc
// @Summary      Get session analytics
// @Tags         analytics
// @Produce      json
// @Param        sessionId  path      string  true  "Client session identifier"
// @Success      200        {object}  dto.SessionAnalyticsResponse
// @Failure      404        {object}  shared.APIError
// @Failure      500        {object}  shared.APIError
// @Router       /analytics/{sessionId} [get]
func (h *Handler) GetSessionAnalytics(c echo.Context) error {
	sessionID := c.Param("sessionId")

	row, err := h.service.GetSnapshot(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("analytics_not_found", "analytics not found")
		}
		h.logger.Error("failed to get analytics", "error", err, "session_id", sessionID)
		return shared.InternalError("get_failed", "failed to get analytics")
	}

	return c.JSON(http.StatusOK, snapshotToResponse(row))
}
