package handler

import (
	"encoding/json"
	"net/http"

	"clinic-appointment-bot/internal/delivery/dto"
	"clinic-appointment-bot/internal/usecase"
	"clinic-appointment-bot/pkg/response"
	"clinic-appointment-bot/pkg/validator"
)

// EventHandler is the collaborator boundary: the external chat transport posts
// inbound user events here and renders the returned reply directive.
type EventHandler struct {
	conversationUsecase usecase.ConversationUsecase
	validator           *validator.CustomValidator
}

func NewEventHandler(conversationUsecase usecase.ConversationUsecase, validator *validator.CustomValidator) *EventHandler {
	return &EventHandler{
		conversationUsecase: conversationUsecase,
		validator:           validator,
	}
}

func (h *EventHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.InputEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	directive, err := h.conversationUsecase.HandleEvent(r.Context(), &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Unprocessable event", nil)
		return
	}

	response.Success(w, http.StatusOK, "Event processed", directive)
}
