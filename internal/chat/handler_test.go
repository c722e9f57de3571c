package chat

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eleven-am/chat-analytics/internal/dto"
	"github.com/eleven-am/chat-analytics/internal/shared"
	"github.com/labstack/echo/v4"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.calls++
}

func newTestHandler(t *testing.T) (*Handler, *Store, *countingInvalidator) {
	store := setupTestStore(t)
	inv := &countingInvalidator{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, inv, logger), store, inv
}

func jsonContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d", status)
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != status {
		t.Errorf("expected status %d, got %d", status, httpErr.Code)
	}
	apiErr, ok := httpErr.Message.(*shared.APIError)
	if !ok {
		t.Fatalf("expected *shared.APIError message, got %T", httpErr.Message)
	}
	if apiErr.Code != code {
		t.Errorf("expected code %q, got %q", code, apiErr.Code)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, _, _ := newTestHandler(t)
	e := echo.New()
	h.RegisterRoutes(e.Group("/api/chat"))

	expected := map[string]string{
		"/api/chat/sessions":                     http.MethodPost,
		"/api/chat/sessions/:sessionId":          http.MethodGet,
		"/api/chat/sessions/:sessionId/messages": http.MethodGet,
		"/api/chat/messages":                     http.MethodPost,
	}

	registered := make(map[string]string)
	for _, r := range e.Routes() {
		registered[r.Path] = r.Method
	}

	for path, method := range expected {
		if registered[path] != method {
			t.Errorf("expected %s %s to be registered", method, path)
		}
	}
}

func TestHandler_CreateSession(t *testing.T) {
	h, store, inv := newTestHandler(t)

	c, rec := jsonContext(http.MethodPost, "/api/chat/sessions", `{"sessionId":"widget-1"}`)
	if err := h.CreateSession(c); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var resp dto.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SessionID != "widget-1" || resp.ID == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.CreatedAt == "" || resp.LastMessageAt == "" {
		t.Error("expected timestamps in response")
	}

	if _, err := store.GetSession(context.Background(), "widget-1"); err != nil {
		t.Errorf("expected session to be persisted: %v", err)
	}
	if inv.calls != 1 {
		t.Errorf("expected 1 invalidation, got %d", inv.calls)
	}
}

func TestHandler_CreateSession_UsesCamelCaseFields(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c, rec := jsonContext(http.MethodPost, "/api/chat/sessions", `{"sessionId":"camel"}`)
	if err := h.CreateSession(c); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	body := rec.Body.String()
	for _, field := range []string{`"sessionId"`, `"createdAt"`, `"lastMessageAt"`} {
		if !strings.Contains(body, field) {
			t.Errorf("expected %s in %s", field, body)
		}
	}
}

func TestHandler_CreateSession_Missing(t *testing.T) {
	h, _, inv := newTestHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/chat/sessions", `{"sessionId":"  "}`)
	assertHTTPError(t, h.CreateSession(c), http.StatusBadRequest, "missing_session_id")

	if inv.calls != 0 {
		t.Errorf("expected no invalidation, got %d", inv.calls)
	}
}

func TestHandler_CreateSession_InvalidBody(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/chat/sessions", `{not json`)
	assertHTTPError(t, h.CreateSession(c), http.StatusBadRequest, "invalid_request")
}

func TestHandler_CreateSession_Duplicate(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/chat/sessions", `{"sessionId":"dup"}`)
	if err := h.CreateSession(c); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	c, _ = jsonContext(http.MethodPost, "/api/chat/sessions", `{"sessionId":"dup"}`)
	assertHTTPError(t, h.CreateSession(c), http.StatusConflict, "session_exists")
}

func TestHandler_GetSession(t *testing.T) {
	h, store, _ := newTestHandler(t)
	_ = store.CreateSession(context.Background(), &Session{SessionID: "s1"})

	c, rec := jsonContext(http.MethodGet, "/api/chat/sessions/s1", "")
	c.SetParamNames("sessionId")
	c.SetParamValues("s1")

	if err := h.GetSession(c); err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}

	var resp dto.SessionResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.SessionID != "s1" {
		t.Errorf("expected sessionId s1, got %q", resp.SessionID)
	}
}

func TestHandler_GetSession_NotFound(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c, _ := jsonContext(http.MethodGet, "/api/chat/sessions/ghost", "")
	c.SetParamNames("sessionId")
	c.SetParamValues("ghost")

	assertHTTPError(t, h.GetSession(c), http.StatusNotFound, "session_not_found")
}

func TestHandler_CreateMessage(t *testing.T) {
	h, store, inv := newTestHandler(t)
	_ = store.CreateSession(context.Background(), &Session{SessionID: "s1"})

	c, rec := jsonContext(http.MethodPost, "/api/chat/messages", `{"sessionId":"s1","role":"user","content":"hello"}`)
	if err := h.CreateMessage(c); err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}

	var resp dto.MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Role != "user" || resp.Content != "hello" || resp.SessionID != "s1" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.ID == "" || resp.Timestamp == "" {
		t.Error("expected id and timestamp to be set")
	}
	if inv.calls != 1 {
		t.Errorf("expected 1 invalidation, got %d", inv.calls)
	}
}

func TestHandler_CreateMessage_InvalidRole(t *testing.T) {
	h, store, inv := newTestHandler(t)
	_ = store.CreateSession(context.Background(), &Session{SessionID: "s1"})

	c, _ := jsonContext(http.MethodPost, "/api/chat/messages", `{"sessionId":"s1","role":"system","content":"x"}`)
	assertHTTPError(t, h.CreateMessage(c), http.StatusBadRequest, "invalid_role")

	if inv.calls != 0 {
		t.Errorf("expected no invalidation, got %d", inv.calls)
	}
}

func TestHandler_CreateMessage_MissingContent(t *testing.T) {
	h, store, inv := newTestHandler(t)
	ctx := context.Background()
	_ = store.CreateSession(ctx, &Session{SessionID: "s1"})

	for _, body := range []string{
		`{"sessionId":"s1","role":"user"}`,
		`{"sessionId":"s1","role":"assistant","content":""}`,
	} {
		c, _ := jsonContext(http.MethodPost, "/api/chat/messages", body)
		assertHTTPError(t, h.CreateMessage(c), http.StatusBadRequest, "missing_content")
	}

	if _, messages, _ := store.Counts(ctx); messages != 0 {
		t.Errorf("expected no message persisted, got %d", messages)
	}
	if inv.calls != 0 {
		t.Errorf("expected no invalidation, got %d", inv.calls)
	}
}

func TestHandler_CreateMessage_MissingSession(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/chat/messages", `{"role":"user","content":"x"}`)
	assertHTTPError(t, h.CreateMessage(c), http.StatusBadRequest, "missing_session_id")
}

func TestHandler_CreateMessage_UnknownSession(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/chat/messages", `{"sessionId":"ghost","role":"user","content":"x"}`)
	assertHTTPError(t, h.CreateMessage(c), http.StatusNotFound, "session_not_found")
}

func TestHandler_ListMessages(t *testing.T) {
	h, store, _ := newTestHandler(t)
	ctx := context.Background()
	_ = store.CreateSession(ctx, &Session{SessionID: "s1"})
	_ = store.CreateMessage(ctx, &Message{SessionID: "s1", Role: RoleUser, Content: "q"})
	_ = store.CreateMessage(ctx, &Message{SessionID: "s1", Role: RoleAssistant, Content: "a"})

	c, rec := jsonContext(http.MethodGet, "/api/chat/sessions/s1/messages", "")
	c.SetParamNames("sessionId")
	c.SetParamValues("s1")

	if err := h.ListMessages(c); err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}

	var resp []dto.MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(resp))
	}
}

func TestHandler_ListMessages_EmptyIsArray(t *testing.T) {
	h, _, _ := newTestHandler(t)

	c, rec := jsonContext(http.MethodGet, "/api/chat/sessions/none/messages", "")
	c.SetParamNames("sessionId")
	c.SetParamValues("none")

	if err := h.ListMessages(c); err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty array, got %s", got)
	}
}

func TestHandler_NilInvalidator(t *testing.T) {
	store := setupTestStore(t)
	h := NewHandler(store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, _ := jsonContext(http.MethodPost, "/api/chat/sessions", `{"sessionId":"s1"}`)
	if err := h.CreateSession(c); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
}
