package usecase

import (
	"testing"
	"time"

	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"
	"patient-appointment-service/internal/repository"
	"patient-appointment-service/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointmentUsecase(t *testing.T) (AppointmentUsecase, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newTestDB(t)
	log := newTestLogger()

	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())
	uc := NewAppointmentUsecase(db, log, repository.NewAppointmentRepository(), repository.NewDoctorProfileRepository(), auditService)

	return uc, mock
}

func TestCreateAppointmentOwnedByCaller(t *testing.T) {
	uc, mock := newAppointmentUsecase(t)
	patientID := uuid.New()
	doctorID := uuid.New()
	appointmentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "doctor_profiles" WHERE user_id`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "specialization", "biography"}).
			AddRow(doctorID.String(), "Cardiology", ""))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id"`).
		WillReturnRows(userRow(doctorID, entity.RoleIDDoctor, "drx", "hash", "Dr. X"))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(appointmentID.String()))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	resp, err := uc.CreateAppointment(contextWithUser(patientID), &dto.CreateAppointmentRequest{
		DoctorID: doctorID.String(),
		Date:     "2024-01-01",
		Time:     "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, patientID, resp.PatientID)
	assert.Equal(t, doctorID, resp.DoctorID)
	assert.Equal(t, "2024-01-01", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), resp.Status)
	assert.Equal(t, "Dr. X", resp.DoctorName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentUnknownDoctor(t *testing.T) {
	uc, mock := newAppointmentUsecase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "doctor_profiles" WHERE user_id`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "specialization", "biography"}))
	mock.ExpectRollback()

	_, err := uc.CreateAppointment(contextWithUser(uuid.New()), &dto.CreateAppointmentRequest{
		DoctorID: uuid.New().String(),
		Date:     "2024-01-01",
		Time:     "10:00",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetMyAppointmentsScopedToCaller(t *testing.T) {
	uc, mock := newAppointmentUsecase(t)
	patientID := uuid.New()
	doctorID := uuid.New()
	now := time.Now()

	// The query filters on the caller's id; rows for other patients are
	// never requested.
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE patient_id`).
		WithArgs(patientID.String()).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(uuid.New().String(), patientID.String(), doctorID.String(), "2024-01-01", "10:00", "confirmed", now, now))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id"`).
		WillReturnRows(userRow(doctorID, entity.RoleIDDoctor, "drx", "hash", "Dr. X"))

	resp, err := uc.GetMyAppointments(contextWithUser(patientID))
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, patientID, resp.Appointments[0].PatientID)
	assert.Equal(t, "Dr. X", resp.Appointments[0].DoctorName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelAppointmentNotOwned(t *testing.T) {
	uc, mock := newAppointmentUsecase(t)
	owner := uuid.New()
	doctorID := uuid.New()
	appointmentID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(appointmentID.String(), owner.String(), doctorID.String(), "2024-01-01", "10:00", "confirmed", now, now))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id"`).
		WillReturnRows(userRow(doctorID, entity.RoleIDDoctor, "drx", "hash", "Dr. X"))

	err := uc.CancelAppointment(contextWithUser(uuid.New()), appointmentID)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestCancelAppointmentAlreadyCancelled(t *testing.T) {
	uc, mock := newAppointmentUsecase(t)
	owner := uuid.New()
	doctorID := uuid.New()
	appointmentID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(appointmentID.String(), owner.String(), doctorID.String(), "2024-01-01", "10:00", "cancelled", now, now))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id"`).
		WillReturnRows(userRow(doctorID, entity.RoleIDDoctor, "drx", "hash", "Dr. X"))

	err := uc.CancelAppointment(contextWithUser(owner), appointmentID)
	assert.ErrorIs(t, err, ErrAppointmentAlreadyCancelled)
}

func TestCancelAppointment(t *testing.T) {
	uc, mock := newAppointmentUsecase(t)
	owner := uuid.New()
	doctorID := uuid.New()
	appointmentID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(appointmentID.String(), owner.String(), doctorID.String(), "2024-01-01", "10:00", "confirmed", now, now))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id"`).
		WillReturnRows(userRow(doctorID, entity.RoleIDDoctor, "drx", "hash", "Dr. X"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	err := uc.CancelAppointment(contextWithUser(owner), appointmentID)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteAppointmentRequiresOwningDoctor(t *testing.T) {
	uc, mock := newAppointmentUsecase(t)
	patientID := uuid.New()
	doctorID := uuid.New()
	appointmentID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(appointmentID.String(), patientID.String(), doctorID.String(), "2024-01-01", "10:00", "confirmed", now, now))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id"`).
		WillReturnRows(userRow(doctorID, entity.RoleIDDoctor, "drx", "hash", "Dr. X"))

	// A different doctor cannot complete it
	err := uc.CompleteAppointment(contextWithUser(uuid.New()), appointmentID)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}
