package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"patient-appointment-service/config"
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/usecase"
	"patient-appointment-service/pkg/jwt"
	"patient-appointment-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubAuthUsecase struct {
	registerErr error
	loginErr    error
}

func (s *stubAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &dto.UserResponse{ID: uuid.New(), Username: req.Username, FullName: req.FullName, Role: "patient"}, nil
}

func (s *stubAuthUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: uuid.New(), Username: req.Username, Role: "doctor"}, nil
}

func (s *stubAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, nil
}

func (s *stubAuthUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	return nil
}

func (s *stubAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, nil
}

func (s *stubAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID}, nil
}

func newAuthHandler(stub *stubAuthUsecase) *AuthHandler {
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "s", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	return NewAuthHandler(stub, validator.NewValidator(), jwtService)
}

func TestRegisterHandlerConflict(t *testing.T) {
	h := newAuthHandler(&stubAuthUsecase{registerErr: usecase.ErrUsernameAlreadyExists})

	body := `{"username":"alice","password":"secret","full_name":"Alice Smith"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterHandlerAcceptsShortPassword(t *testing.T) {
	h := newAuthHandler(&stubAuthUsecase{})

	// No minimum length; any non-empty password is accepted
	body := `{"username":"bob","password":"pw1","full_name":"Bob Marley"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestRegisterHandlerValidation(t *testing.T) {
	h := newAuthHandler(&stubAuthUsecase{})

	// Missing password
	body := `{"username":"alice","full_name":"Alice Smith"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	h := newAuthHandler(&stubAuthUsecase{loginErr: usecase.ErrInvalidCredentials})

	body := `{"username":"alice","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandlerSuccess(t *testing.T) {
	h := newAuthHandler(&stubAuthUsecase{})

	body := `{"username":"alice","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
}
