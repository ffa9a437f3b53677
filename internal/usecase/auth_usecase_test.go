package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"patient-appointment-service/config"
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"
	"patient-appointment-service/internal/repository"
	"patient-appointment-service/internal/service"
	"patient-appointment-service/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecase(t *testing.T) (AuthUsecase, sqlmock.Sqlmock, *jwt.JWTService, *miniredis.Miniredis) {
	t.Helper()

	db, mock := newTestDB(t)
	log := newTestLogger()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})

	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())
	uc := NewAuthUsecase(db, log, repository.NewUserRepository(), repository.NewRoleRepository(), repository.NewDoctorProfileRepository(), auditService, jwtService, redisClient)

	return uc, mock, jwtService, mr
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	uc, mock, _, _ := newAuthUsecase(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE role_name`).
		WillReturnRows(roleRow(entity.RoleIDPatient, entity.RolePatient))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WithArgs(entity.RoleIDPatient, "alice", bcryptHash{plaintext: "secret"}, "Alice Smith", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	resp, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Password: "secret",
		FullName: "Alice Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, entity.RolePatient, resp.Role)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	uc, mock, _, _ := newAuthUsecase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE role_name`).
		WillReturnRows(roleRow(entity.RoleIDPatient, entity.RolePatient))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"})
	mock.ExpectRollback()

	_, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Password: "secret",
		FullName: "Alice Smith",
	})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterFailsWhenRoleUnseeded(t *testing.T) {
	uc, mock, _, _ := newAuthUsecase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE role_name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role_name", "description"}))
	mock.ExpectRollback()

	_, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Password: "secret",
		FullName: "Alice Smith",
	})
	assert.ErrorIs(t, err, ErrRoleNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownUser(t *testing.T) {
	uc, mock, _, _ := newAuthUsecase(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := uc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	uc, mock, _, _ := newAuthUsecase(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username`).
		WillReturnRows(userRow(uuid.New(), entity.RoleIDPatient, "alice", string(hash), "Alice Smith"))

	_, err = uc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLogoutLifecycle(t *testing.T) {
	uc, mock, jwtService, mr := newAuthUsecase(t)
	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username`).
		WillReturnRows(userRow(userID, entity.RoleIDPatient, "alice", string(hash), "Alice Smith"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	tokens, err := uc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	accessClaims, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := jwtService.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)

	// Session established: both token ids live in Redis
	assert.True(t, mr.Exists(fmt.Sprintf("access_token:%s:%s", userID, accessClaims.TokenID)))
	assert.True(t, mr.Exists(fmt.Sprintf("refresh_token:%s:%s", userID, refreshClaims.TokenID)))

	require.NoError(t, uc.Logout(context.Background(), accessClaims.TokenID, refreshClaims.TokenID))
	assert.False(t, mr.Exists(fmt.Sprintf("access_token:%s:%s", userID, accessClaims.TokenID)))
	assert.False(t, mr.Exists(fmt.Sprintf("refresh_token:%s:%s", userID, refreshClaims.TokenID)))

	// Logging out an already-dead session is a no-op
	require.NoError(t, uc.Logout(context.Background(), accessClaims.TokenID, refreshClaims.TokenID))
}

func TestRefreshTokenRevoked(t *testing.T) {
	uc, _, jwtService, _ := newAuthUsecase(t)

	token, _, err := jwtService.GenerateRefreshToken(uuid.New(), "alice", entity.RoleIDPatient)
	require.NoError(t, err)

	// Token parses but was never stored in Redis
	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: token})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	uc, _, jwtService, _ := newAuthUsecase(t)

	token, _, err := jwtService.GenerateAccessToken(uuid.New(), "alice", entity.RoleIDPatient)
	require.NoError(t, err)

	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: token})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetCurrentUserNotFound(t *testing.T) {
	uc, mock, _, _ := newAuthUsecase(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
