package dto

import "time"

// Event kinds delivered by the external chat transport.
const (
	EventKindCommand = "command"
	EventKindText    = "text"
	EventKindButton  = "button"
)

// Commands recognized by the conversation engine.
const (
	CommandStart  = "start"
	CommandLink   = "link"
	CommandBook   = "book"
	CommandMy     = "my"
	CommandCancel = "cancel"
)

// InputEvent is one inbound user action: a command, a free-text message or a
// button press. The transport supplies the chat user id on every event.
type InputEvent struct {
	ChatUserID    int64  `json:"chat_user_id" validate:"required"`
	DisplayHandle string `json:"display_handle,omitempty"`
	Kind          string `json:"kind" validate:"required,oneof=command text button"`
	Payload       string `json:"payload"`
}

// ReplyDirective is the single outbound channel back to the user. The
// transport renders Text as a message and QuickReplies as tap targets.
type ReplyDirective struct {
	ChatUserID   int64    `json:"chat_user_id"`
	Text         string   `json:"text"`
	QuickReplies []string `json:"suggested_quick_replies,omitempty"`
}

// AppointmentView is the read model returned for "my": the stored snapshot
// plus the scheduled time pre-formatted in the clinic zone.
type AppointmentView struct {
	PatientID        *int64    `json:"patient_id,omitempty"`
	FullName         string    `json:"full_name"`
	ScheduledAt      time.Time `json:"scheduled_at"`
	ScheduledAtLocal string    `json:"scheduled_at_local"`
}
