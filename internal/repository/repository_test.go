package repository

import (
	"context"
	"testing"
	"time"

	"clinic-appointment-bot/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return db, mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIdentityRepository_FindByChatUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdentityRepository()

	patientID := int64(7)
	verifiedAt := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "identities" WHERE chat_user_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"chat_user_id", "patient_id", "generic_user_id", "display_handle", "verified_at", "created_at"}).
			AddRow(int64(42), patientID, nil, "ivan", verifiedAt, time.Now()))

	identity, err := repo.FindByChatUserID(context.Background(), db, 42)
	if err != nil {
		t.Fatalf("FindByChatUserID returned error: %v", err)
	}
	if identity == nil || identity.PatientID == nil || *identity.PatientID != 7 {
		t.Fatalf("expected binding to patient 7, got %+v", identity)
	}
	if !identity.IsVerified() {
		t.Fatal("expected identity to be verified")
	}
	expectationsMet(t, mock)
}

func TestIdentityRepository_FindByChatUserID_Absent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdentityRepository()

	mock.ExpectQuery(`SELECT \* FROM "identities" WHERE chat_user_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"chat_user_id"}))

	identity, err := repo.FindByChatUserID(context.Background(), db, 42)
	if err != nil {
		t.Fatalf("expected absent row to map to nil, got error: %v", err)
	}
	if identity != nil {
		t.Fatalf("expected nil identity, got %+v", identity)
	}
	expectationsMet(t, mock)
}

func TestIdentityRepository_UpsertPatientBinding(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIdentityRepository()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "identities" .+ ON CONFLICT \("chat_user_id"\) DO UPDATE SET .+"patient_id".+"generic_user_id".+"verified_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	patientID := int64(7)
	verifiedAt := time.Now()
	identity := &entity.Identity{
		ChatUserID:    42,
		PatientID:     &patientID,
		DisplayHandle: "ivan",
		VerifiedAt:    &verifiedAt,
	}
	if err := repo.UpsertPatientBinding(context.Background(), db, identity); err != nil {
		t.Fatalf("UpsertPatientBinding returned error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestPatientRepository_FindByPassportAndBirthDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository()

	birthDate := time.Date(1999, 2, 25, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE passport = .+ AND birth_date = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "passport", "birth_date"}).
			AddRow(int64(7), "Ivanov I.I.", "1234 567890", birthDate))

	patient, err := repo.FindByPassportAndBirthDate(context.Background(), db, "1234 567890", birthDate)
	if err != nil {
		t.Fatalf("FindByPassportAndBirthDate returned error: %v", err)
	}
	if patient == nil || patient.ID != 7 || patient.FullName != "Ivanov I.I." {
		t.Fatalf("unexpected patient: %+v", patient)
	}
	expectationsMet(t, mock)
}

func TestPatientRepository_FindByPassportAndBirthDate_NoMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE passport = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	patient, err := repo.FindByPassportAndBirthDate(context.Background(), db, "0000", time.Now())
	if err != nil {
		t.Fatalf("expected no-match to map to nil, got error: %v", err)
	}
	if patient != nil {
		t.Fatalf("expected nil patient, got %+v", patient)
	}
	expectationsMet(t, mock)
}

func TestAppointmentRepository_UpsertForPatient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "appointments" .+ ON CONFLICT \("patient_id"\) WHERE patient_id IS NOT NULL DO UPDATE SET .+"scheduled_at".+ RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	patientID := int64(7)
	appointment := &entity.Appointment{
		PatientID:           &patientID,
		ChatUserID:          42,
		FullNameSnapshot:    "Ivanov I.I.",
		ScheduledAt:         time.Date(2026, 2, 25, 14, 30, 0, 0, time.UTC),
		CreatedByChatUserID: 42,
	}
	if err := repo.UpsertForPatient(context.Background(), db, appointment); err != nil {
		t.Fatalf("UpsertForPatient returned error: %v", err)
	}
	if appointment.ID != 1 {
		t.Fatalf("expected assigned id 1, got %d", appointment.ID)
	}
	expectationsMet(t, mock)
}

func TestAppointmentRepository_UpsertForChatUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "appointments" .+ ON CONFLICT \("chat_user_id"\) DO UPDATE SET .+ RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	appointment := &entity.Appointment{
		ChatUserID:          42,
		FullNameSnapshot:    "Petrov P.P.",
		ScheduledAt:         time.Date(2026, 2, 25, 14, 30, 0, 0, time.UTC),
		CreatedByChatUserID: 42,
	}
	if err := repo.UpsertForChatUser(context.Background(), db, appointment); err != nil {
		t.Fatalf("UpsertForChatUser returned error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestAppointmentRepository_FindForChatUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	scheduledAt := time.Date(2026, 2, 25, 14, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM "appointments" JOIN identities ON identities\.patient_id = appointments\.patient_id WHERE identities\.chat_user_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "patient_id", "chat_user_id", "full_name", "scheduled_at", "created_by_chat_user_id", "updated_at"}).
			AddRow(int64(1), int64(7), int64(42), "Ivanov I.I.", scheduledAt, int64(42), time.Now()))

	appointment, err := repo.FindForChatUser(context.Background(), db, 42)
	if err != nil {
		t.Fatalf("FindForChatUser returned error: %v", err)
	}
	if appointment == nil || !appointment.ScheduledAt.Equal(scheduledAt) {
		t.Fatalf("unexpected appointment: %+v", appointment)
	}
	expectationsMet(t, mock)
}

func TestAppointmentRepository_FindForChatUser_Absent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectQuery(`SELECT .+ FROM "appointments" JOIN identities`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	appointment, err := repo.FindForChatUser(context.Background(), db, 42)
	if err != nil {
		t.Fatalf("expected absent row to map to nil, got error: %v", err)
	}
	if appointment != nil {
		t.Fatalf("expected nil appointment, got %+v", appointment)
	}
	expectationsMet(t, mock)
}
