package entity

// ConversationState is the position of a chat user inside a multi-step flow.
type ConversationState string

const (
	StateIdle              ConversationState = "idle"
	StateAwaitingPassport  ConversationState = "awaiting_passport"
	StateAwaitingBirthDate ConversationState = "awaiting_birth_date"
	StateAwaitingFullName  ConversationState = "awaiting_full_name"
	StateAwaitingTime      ConversationState = "awaiting_appointment_time"
)

// Session is the transient per-chat-user record held only while a flow is in
// progress: the current state plus the scratch collected so far. It is
// discarded on completion, cancellation or flow failure, and expires on its
// own after the configured TTL so abandoned flows do not linger.
type Session struct {
	ChatUserID int64             `json:"chat_user_id"`
	State      ConversationState `json:"state"`
	Passport   string            `json:"passport,omitempty"`
	FullName   string            `json:"full_name,omitempty"`
}
