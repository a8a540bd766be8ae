package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-appointment-bot/internal/delivery/dto"
	"clinic-appointment-bot/pkg/validator"
)

type stubConversation struct {
	directive *dto.ReplyDirective
	err       error
	lastEvent *dto.InputEvent
}

func (s *stubConversation) HandleEvent(_ context.Context, event *dto.InputEvent) (*dto.ReplyDirective, error) {
	s.lastEvent = event
	return s.directive, s.err
}

func newTestHandler(stub *stubConversation) *EventHandler {
	return NewEventHandler(stub, validator.NewValidator())
}

func TestHandleEvent_Success(t *testing.T) {
	stub := &stubConversation{directive: &dto.ReplyDirective{ChatUserID: 42, Text: "hi"}}
	h := newTestHandler(stub)

	body := `{"chat_user_id": 42, "kind": "command", "payload": "/start"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleEvent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastEvent == nil || stub.lastEvent.ChatUserID != 42 {
		t.Fatalf("usecase did not receive the event: %+v", stub.lastEvent)
	}
	if !strings.Contains(rec.Body.String(), `"text":"hi"`) {
		t.Fatalf("expected directive in response, got %s", rec.Body.String())
	}
}

func TestHandleEvent_InvalidBody(t *testing.T) {
	h := newTestHandler(&stubConversation{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.HandleEvent(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleEvent_ValidationFailure(t *testing.T) {
	stub := &stubConversation{}
	h := newTestHandler(stub)

	// kind outside the closed set
	body := `{"chat_user_id": 42, "kind": "smoke-signal", "payload": "x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleEvent(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if stub.lastEvent != nil {
		t.Fatal("usecase must not be called on validation failure")
	}
}
