package usecase

import (
	"context"
	"database/sql/driver"
	"io"
	"strings"
	"testing"
	"time"

	"patient-appointment-service/internal/delivery/http/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func contextWithUser(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, userID)
}

var userColumns = []string{"id", "role_id", "username", "password", "full_name", "is_active", "created_at", "updated_at"}

func userRow(id uuid.UUID, roleID int, username, passwordHash, fullName string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userColumns).
		AddRow(id.String(), roleID, username, passwordHash, fullName, true, now, now)
}

var appointmentColumns = []string{"id", "patient_id", "doctor_id", "date", "time", "status", "created_at", "updated_at"}

func roleRow(id int, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "role_name", "description"}).AddRow(id, name, "")
}

// bcryptHash matches any bcrypt digest that is not the given plaintext.
type bcryptHash struct {
	plaintext string
}

func (m bcryptHash) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return s != m.plaintext && strings.HasPrefix(s, "$2")
}
