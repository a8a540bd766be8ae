package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-appointment-bot/internal/converter"
	"clinic-appointment-bot/internal/delivery/dto"
	"clinic-appointment-bot/internal/domain/entity"
	"clinic-appointment-bot/internal/domain/repository"
	"clinic-appointment-bot/internal/service"
	"clinic-appointment-bot/pkg/timeparse"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrIdentityMissing = errors.New("no identity binding for chat user")
	ErrPatientNotFound = errors.New("no patient matches passport and birth date")
)

const (
	minPassportLength = 5
	minFullNameLength = 2
)

// buttonCommands is the fixed label table mapping button payloads onto
// commands.
var buttonCommands = map[string]string{
	"Start":          dto.CommandStart,
	"Link account":   dto.CommandLink,
	"Book":           dto.CommandBook,
	"My appointment": dto.CommandMy,
	"Cancel":         dto.CommandCancel,
}

// User-facing reply texts.
const (
	msgGreeting = "Hi! I can help you book a clinic appointment.\n\n" +
		"Commands:\n" +
		"/book — book an appointment\n" +
		"/my — show my appointment\n" +
		"/link — link this chat to a patient record (passport + birth date)\n" +
		"/cancel — cancel the current input"

	msgAskPassport = "Let's link you to a patient record.\n\n" +
		"Send your passport number exactly as it is stored (series and number)."

	msgPassportTooShort = "That passport number looks too short. Please try again."

	msgAskBirthDate = "Now send your birth date.\n" +
		"Format: DD.MM.YYYY (for example 25.02.1999) or YYYY-MM-DD."

	msgBadBirthDate = "I could not read that date. Enter it like 25.02.1999 or 1999-02-25."

	msgPatientNotFound = "No patient in the database matches that passport and birth date.\n" +
		"Check both and try again: /link"

	msgLinkRequired = "To book an appointment I first need to link you to a patient record.\n" +
		"Run: /link"

	msgNoIdentity = "I do not know who you are in the database yet.\n" +
		"Link your account first: /link"

	msgAskFullName = "Send the full name the appointment should be booked under."

	msgFullNameTooShort = "That name looks too short. Please send the full name."

	msgAskTime = "Send the appointment date and time.\n" +
		"Format: YYYY-MM-DD HH:MM or DD.MM.YYYY HH:MM\n" +
		"For example: 2026-02-25 14:30"

	msgBadTime = "I could not read that date/time.\n" +
		"Write it like 2026-02-25 14:30 or 25.02.2026 14:30."

	msgPastTime = "That time is already in the past. Please enter a future time."

	msgLinkLost = "I lost your patient link. Run /link again."

	msgNoAppointment = "You have no appointment yet. Send /book to create one."

	msgCancelled = "Okay, cancelled."

	msgGenericError = "Something went wrong on our side. Please try again."
)

type ConversationUsecase interface {
	// HandleEvent processes one inbound user event and produces the reply to
	// render. It returns an error only for malformed events; store failures
	// are logged and answered with a generic reply, leaving the conversation
	// state unchanged so the user can retry the same step.
	HandleEvent(ctx context.Context, event *dto.InputEvent) (*dto.ReplyDirective, error)
}

type conversationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	identityRepo repository.IdentityRepository
	patientRepo  repository.PatientRepository
	sessions     *service.SessionStore
	strategy     BookingStrategy
	loc          *time.Location
	now          func() time.Time
}

func NewConversationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	identityRepo repository.IdentityRepository,
	patientRepo repository.PatientRepository,
	sessions *service.SessionStore,
	strategy BookingStrategy,
	loc *time.Location,
) ConversationUsecase {
	return &conversationUsecase{
		db:           db,
		log:          log,
		identityRepo: identityRepo,
		patientRepo:  patientRepo,
		sessions:     sessions,
		strategy:     strategy,
		loc:          loc,
		now:          time.Now,
	}
}

func (u *conversationUsecase) HandleEvent(ctx context.Context, event *dto.InputEvent) (*dto.ReplyDirective, error) {
	switch event.Kind {
	case dto.EventKindCommand:
		return u.handleCommand(ctx, event, normalizeCommand(event.Payload)), nil
	case dto.EventKindButton:
		command, ok := buttonCommands[event.Payload]
		if !ok {
			return u.reply(event, msgGreeting), nil
		}
		return u.handleCommand(ctx, event, command), nil
	case dto.EventKindText:
		return u.handleText(ctx, event), nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", event.Kind)
	}
}

func normalizeCommand(payload string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(payload), "/"))
}

func (u *conversationUsecase) handleCommand(ctx context.Context, event *dto.InputEvent, command string) *dto.ReplyDirective {
	switch command {
	case dto.CommandStart:
		return u.reply(event, msgGreeting)

	case dto.CommandCancel:
		if err := u.sessions.Delete(ctx, event.ChatUserID); err != nil {
			return u.failTurn(event, err)
		}
		return u.reply(event, msgCancelled)

	case dto.CommandLink:
		session := &entity.Session{ChatUserID: event.ChatUserID, State: entity.StateAwaitingPassport}
		if err := u.sessions.Put(ctx, session); err != nil {
			return u.failTurn(event, err)
		}
		return u.reply(event, msgAskPassport)

	case dto.CommandBook:
		return u.handleBook(ctx, event)

	case dto.CommandMy:
		return u.handleMy(ctx, event)

	default:
		return u.reply(event, msgGreeting)
	}
}

func (u *conversationUsecase) handleBook(ctx context.Context, event *dto.InputEvent) *dto.ReplyDirective {
	if err := u.strategy.Prepare(ctx, u.db, event.ChatUserID); err != nil {
		if errors.Is(err, ErrIdentityMissing) {
			return u.reply(event, msgLinkRequired)
		}
		return u.failTurn(event, err)
	}

	session := &entity.Session{ChatUserID: event.ChatUserID}
	if u.strategy.NeedsFullName() {
		session.State = entity.StateAwaitingFullName
		if err := u.sessions.Put(ctx, session); err != nil {
			return u.failTurn(event, err)
		}
		return u.reply(event, msgAskFullName)
	}

	session.State = entity.StateAwaitingTime
	if err := u.sessions.Put(ctx, session); err != nil {
		return u.failTurn(event, err)
	}
	return u.timePrompt(event)
}

// handleMy is a pure read: no state transition, no scratch.
func (u *conversationUsecase) handleMy(ctx context.Context, event *dto.InputEvent) *dto.ReplyDirective {
	if err := u.strategy.Prepare(ctx, u.db, event.ChatUserID); err != nil {
		if errors.Is(err, ErrIdentityMissing) {
			return u.reply(event, msgNoIdentity)
		}
		return u.failTurn(event, err)
	}

	appointment, err := u.strategy.Fetch(ctx, u.db, event.ChatUserID)
	if err != nil {
		return u.failTurn(event, err)
	}
	if appointment == nil {
		return u.reply(event, msgNoAppointment)
	}

	view := converter.AppointmentToView(appointment, u.loc)
	return u.reply(event, fmt.Sprintf("Your appointment:\nName: %s\nTime: %s", view.FullName, view.ScheduledAtLocal))
}

func (u *conversationUsecase) handleText(ctx context.Context, event *dto.InputEvent) *dto.ReplyDirective {
	session, err := u.sessions.Get(ctx, event.ChatUserID)
	if err != nil {
		return u.failTurn(event, err)
	}
	if session == nil || session.State == entity.StateIdle {
		return u.reply(event, msgGreeting)
	}

	switch session.State {
	case entity.StateAwaitingPassport:
		return u.handlePassportInput(ctx, event, session)
	case entity.StateAwaitingBirthDate:
		return u.handleBirthDateInput(ctx, event, session)
	case entity.StateAwaitingFullName:
		return u.handleFullNameInput(ctx, event, session)
	case entity.StateAwaitingTime:
		return u.handleTimeInput(ctx, event, session)
	default:
		// Unknown state can only come from an old record; start clean.
		if err := u.sessions.Delete(ctx, event.ChatUserID); err != nil {
			return u.failTurn(event, err)
		}
		return u.reply(event, msgGreeting)
	}
}

func (u *conversationUsecase) handlePassportInput(ctx context.Context, event *dto.InputEvent, session *entity.Session) *dto.ReplyDirective {
	passport := strings.TrimSpace(event.Payload)
	if len([]rune(passport)) < minPassportLength {
		return u.reply(event, msgPassportTooShort)
	}

	session.Passport = passport
	session.State = entity.StateAwaitingBirthDate
	if err := u.sessions.Put(ctx, session); err != nil {
		return u.failTurn(event, err)
	}
	return u.reply(event, msgAskBirthDate)
}

func (u *conversationUsecase) handleBirthDateInput(ctx context.Context, event *dto.InputEvent, session *entity.Session) *dto.ReplyDirective {
	birthDate, err := timeparse.ParseBirthDate(event.Payload)
	if err != nil {
		return u.reply(event, msgBadBirthDate)
	}

	patient, err := u.linkPatient(ctx, event, session.Passport, birthDate)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			// Scratch is discarded; the user restarts the flow from /link.
			if delErr := u.sessions.Delete(ctx, event.ChatUserID); delErr != nil {
				return u.failTurn(event, delErr)
			}
			return u.reply(event, msgPatientNotFound)
		}
		return u.failTurn(event, err)
	}

	if err := u.sessions.Delete(ctx, event.ChatUserID); err != nil {
		return u.failTurn(event, err)
	}
	return u.reply(event, fmt.Sprintf("Done! You are linked to patient:\n%s\n\nYou can book now: /book", patient.FullName))
}

// linkPatient looks up the patient by exact passport+birth date match and, if
// found, atomically creates or replaces the identity binding. No write happens
// when nothing matches, which also makes a repeated call idempotent.
func (u *conversationUsecase) linkPatient(ctx context.Context, event *dto.InputEvent, passport string, birthDate time.Time) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByPassportAndBirthDate(ctx, u.db, passport, birthDate)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	verifiedAt := u.now()
	identity := &entity.Identity{
		ChatUserID:    event.ChatUserID,
		PatientID:     &patient.ID,
		DisplayHandle: event.DisplayHandle,
		VerifiedAt:    &verifiedAt,
	}
	if err := u.identityRepo.UpsertPatientBinding(ctx, u.db, identity); err != nil {
		return nil, err
	}

	u.log.Infof("Linked chat user %d to patient %d", event.ChatUserID, patient.ID)
	return patient, nil
}

func (u *conversationUsecase) handleFullNameInput(ctx context.Context, event *dto.InputEvent, session *entity.Session) *dto.ReplyDirective {
	fullName := strings.TrimSpace(event.Payload)
	if len([]rune(fullName)) < minFullNameLength {
		return u.reply(event, msgFullNameTooShort)
	}

	session.FullName = fullName
	session.State = entity.StateAwaitingTime
	if err := u.sessions.Put(ctx, session); err != nil {
		return u.failTurn(event, err)
	}
	return u.timePrompt(event)
}

func (u *conversationUsecase) handleTimeInput(ctx context.Context, event *dto.InputEvent, session *entity.Session) *dto.ReplyDirective {
	scheduledAt, err := timeparse.ParseAppointmentTime(event.Payload, u.loc)
	if err != nil {
		return u.reply(event, msgBadTime)
	}
	if scheduledAt.Before(u.now()) {
		return u.reply(event, msgPastTime)
	}

	appointment, err := u.strategy.Save(ctx, u.db, event.ChatUserID, session.FullName, scheduledAt)
	if err != nil {
		if errors.Is(err, ErrIdentityMissing) {
			if delErr := u.sessions.Delete(ctx, event.ChatUserID); delErr != nil {
				return u.failTurn(event, delErr)
			}
			return u.reply(event, msgLinkLost)
		}
		return u.failTurn(event, err)
	}

	if err := u.sessions.Delete(ctx, event.ChatUserID); err != nil {
		return u.failTurn(event, err)
	}

	u.log.Infof("Booked chat user %d for %s", event.ChatUserID, appointment.ScheduledAt.Format(time.RFC3339))
	return u.reply(event, fmt.Sprintf("Done! You are booked for %s (%s).",
		scheduledAt.In(u.loc).Format(converter.LocalTimeFormat), u.loc.String()))
}

// timePrompt asks for the appointment time and suggests two bookable slots
// tomorrow plus the cancel command as quick replies.
func (u *conversationUsecase) timePrompt(event *dto.InputEvent) *dto.ReplyDirective {
	directive := u.reply(event, msgAskTime)
	directive.QuickReplies = u.suggestedSlots()
	return directive
}

func (u *conversationUsecase) suggestedSlots() []string {
	tomorrow := u.now().In(u.loc).AddDate(0, 0, 1)
	first := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 14, 30, 0, 0, u.loc)
	second := first.Add(30 * time.Minute)
	return []string{
		first.Format("2006-01-02 15:04"),
		second.Format("2006-01-02 15:04"),
		"/cancel",
	}
}

func (u *conversationUsecase) reply(event *dto.InputEvent, text string) *dto.ReplyDirective {
	return &dto.ReplyDirective{ChatUserID: event.ChatUserID, Text: text}
}

// failTurn surfaces a persistence failure as a generic reply. The session is
// left untouched so the user can retry the same step.
func (u *conversationUsecase) failTurn(event *dto.InputEvent, err error) *dto.ReplyDirective {
	u.log.Errorf("Turn failed for chat user %d: %+v", event.ChatUserID, err)
	return u.reply(event, msgGenericError)
}
