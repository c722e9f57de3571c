package chat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/eleven-am/chat-analytics/internal/dto"
	"github.com/eleven-am/chat-analytics/internal/shared"
	"github.com/labstack/echo/v4"
)

// Invalidator is told about every successful write so derived data can
// be refreshed.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Handler struct {
	store       *Store
	invalidator Invalidator
	logger      *slog.Logger
}

func NewHandler(store *Store, invalidator Invalidator, logger *slog.Logger) *Handler {
	return &Handler{
		store:       store,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/sessions", h.CreateSession)
	g.GET("/sessions/:sessionId", h.GetSession)
	g.GET("/sessions/:sessionId/messages", h.ListMessages)
	g.POST("/messages", h.CreateMessage)
}

func (h *Handler) notify(ctx context.Context) {
	if h.invalidator != nil {
		h.invalidator.Invalidate(ctx)
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func sessionToResponse(s *Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:            s.ID,
		SessionID:     s.SessionID,
		CreatedAt:     formatTime(s.CreatedAt),
		LastMessageAt: formatTime(s.LastMessageAt),
	}
}

func messageToResponse(m *Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		SessionID: m.SessionID,
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: formatTime(m.Timestamp),
	}
}

// CreateSession godoc
// @Summary      Create a chat session
// @Description  Registers a client-generated session identifier on first contact
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateSessionRequest  true  "Session identifier"
// @Success      200      {object}  dto.SessionResponse
// @Failure      400      {object}  shared.APIError
// @Failure      409      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /chat/sessions [post]
func (h *Handler) CreateSession(c echo.Context) error {
	var req dto.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return shared.InvalidField("missing_session_id", "sessionId", "sessionId is required")
	}

	sess := &Session{SessionID: req.SessionID}
	if err := h.store.CreateSession(c.Request().Context(), sess); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return shared.Conflict("session_exists", "session already exists")
		}
		h.logger.Error("failed to create session", "error", err, "session_id", req.SessionID)
		return shared.InternalError("create_failed", "failed to create session")
	}

	h.notify(c.Request().Context())
	return c.JSON(http.StatusOK, sessionToResponse(sess))
}

// GetSession godoc
// @Summary      Get a chat session
// @Tags         chat
// @Produce      json
// @Param        sessionId  path      string  true  "Client session identifier"
// @Success      200        {object}  dto.SessionResponse
// @Failure      404        {object}  shared.APIError
// @Failure      500        {object}  shared.APIError
// @Router       /chat/sessions/{sessionId} [get]
func (h *Handler) GetSession(c echo.Context) error {
	sessionID := c.Param("sessionId")

	sess, err := h.store.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("session_not_found", "session not found")
		}
		h.logger.Error("failed to get session", "error", err, "session_id", sessionID)
		return shared.InternalError("get_failed", "failed to get session")
	}

	return c.JSON(http.StatusOK, sessionToResponse(sess))
}

// CreateMessage godoc
// @Summary      Append a chat message
// @Description  Persists a user or assistant message and bumps the session's last activity time
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateMessageRequest  true  "Message"
// @Success      200      {object}  dto.MessageResponse
// @Failure      400      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /chat/messages [post]
func (h *Handler) CreateMessage(c echo.Context) error {
	var req dto.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	if req.SessionID == "" {
		return shared.InvalidField("missing_session_id", "sessionId", "sessionId is required")
	}
	role := Role(req.Role)
	if !role.Valid() {
		return shared.InvalidField("invalid_role", "role", "role must be user or assistant")
	}
	if req.Content == "" {
		return shared.InvalidField("missing_content", "content", "content is required")
	}

	msg := &Message{
		SessionID: req.SessionID,
		Role:      role,
		Content:   req.Content,
	}
	if err := h.store.CreateMessage(c.Request().Context(), msg); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("session_not_found", "session not found")
		}
		h.logger.Error("failed to create message", "error", err, "session_id", req.SessionID)
		return shared.InternalError("create_failed", "failed to create message")
	}

	h.notify(c.Request().Context())
	return c.JSON(http.StatusOK, messageToResponse(msg))
}

// ListMessages godoc
// @Summary      List session messages
// @Description  Returns the session's messages ordered by timestamp
// @Tags         chat
// @Produce      json
// @Param        sessionId  path      string  true  "Client session identifier"
// @Success      200        {array}   dto.MessageResponse
// @Failure      500        {object}  shared.APIError
// @Router       /chat/sessions/{sessionId}/messages [get]
func (h *Handler) ListMessages(c echo.Context) error {
	sessionID := c.Param("sessionId")

	messages, err := h.store.ListSessionMessages(c.Request().Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to list messages", "error", err, "session_id", sessionID)
		return shared.InternalError("list_failed", "failed to list messages")
	}

	response := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		response[i] = messageToResponse(&messages[i])
	}

	return c.JSON(http.StatusOK, response)
}
