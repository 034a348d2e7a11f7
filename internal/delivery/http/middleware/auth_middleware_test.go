package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(user *entity.User) (string, error) {
	args := m.Called(user)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockUserLookup struct {
	mock.Mock
}

func (m *mockUserLookup) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserLookup) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserLookup) EmailInUse(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, exclude)

	return args.Bool(0), args.Error(1)
}

func (m *mockUserLookup) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserLookup) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserLookup) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserLookup) List(ctx context.Context, params repository.ListUsersParams) ([]*entity.User, int64, error) {
	args := m.Called(ctx, params)
	users, _ := args.Get(0).([]*entity.User)

	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserLookup) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

func newTestContext(method, target, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(new(mockTokenService), new(mockUserLookup))
	c, _ := newTestContext(http.MethodGet, "/auth/profile", "")

	err := m.Authenticate(okHandler)(c)

	assert.ErrorIs(t, err, domainerrors.ErrTokenRequired)
}

func TestAuthenticate_NotBearer(t *testing.T) {
	m := NewAuthMiddleware(new(mockTokenService), new(mockUserLookup))
	c, _ := newTestContext(http.MethodGet, "/auth/profile", "Basic abc123")

	err := m.Authenticate(okHandler)(c)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	tokenSvc := new(mockTokenService)
	tokenSvc.On("ValidateToken", "stale").Return(nil, errors.Wrap(jwt.ErrTokenExpired, "token expired"))

	m := NewAuthMiddleware(tokenSvc, new(mockUserLookup))
	c, _ := newTestContext(http.MethodGet, "/auth/profile", "Bearer stale")

	err := m.Authenticate(okHandler)(c)

	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestAuthenticate_UserRowGone(t *testing.T) {
	userID := uuid.New()

	tokenSvc := new(mockTokenService)
	tokenSvc.On("ValidateToken", "orphan").Return(&service.Claims{UserID: userID}, nil)

	userRepo := new(mockUserLookup)
	userRepo.On("FindByID", mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	m := NewAuthMiddleware(tokenSvc, userRepo)
	c, _ := newTestContext(http.MethodGet, "/auth/profile", "Bearer orphan")

	err := m.Authenticate(okHandler)(c)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.Equal(t, "INVALID_TOKEN", appErr.ErrorCode())
}

func TestAuthenticate_SetsCurrentUser(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "user@example.com", Role: entity.RoleUser}

	tokenSvc := new(mockTokenService)
	tokenSvc.On("ValidateToken", "good").Return(&service.Claims{UserID: user.ID}, nil)

	userRepo := new(mockUserLookup)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	m := NewAuthMiddleware(tokenSvc, userRepo)
	c, _ := newTestContext(http.MethodGet, "/auth/profile", "Bearer good")

	var seen *entity.User
	err := m.Authenticate(func(c echo.Context) error {
		seen, _ = deliverycontext.GetCurrentUser(c)

		return okHandler(c)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, user, seen)
}

func TestOptionalAuthenticate_ProceedsAnonymously(t *testing.T) {
	tokenSvc := new(mockTokenService)
	tokenSvc.On("ValidateToken", "garbage").Return(nil, errors.New("bad signature"))

	m := NewAuthMiddleware(tokenSvc, new(mockUserLookup))
	c, rec := newTestContext(http.MethodGet, "/stores", "Bearer garbage")

	var identified bool
	err := m.OptionalAuthenticate(func(c echo.Context) error {
		_, identified = deliverycontext.GetCurrentUser(c)

		return okHandler(c)
	})(c)

	require.NoError(t, err)
	assert.False(t, identified)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthenticate_AttachesViewer(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser}

	tokenSvc := new(mockTokenService)
	tokenSvc.On("ValidateToken", "good").Return(&service.Claims{UserID: user.ID}, nil)

	userRepo := new(mockUserLookup)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	m := NewAuthMiddleware(tokenSvc, userRepo)
	c, _ := newTestContext(http.MethodGet, "/stores", "Bearer good")

	var seen *entity.User
	err := m.OptionalAuthenticate(func(c echo.Context) error {
		seen, _ = deliverycontext.GetCurrentUser(c)

		return okHandler(c)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, user, seen)
}

func TestRequireRoles(t *testing.T) {
	m := NewAuthMiddleware(new(mockTokenService), new(mockUserLookup))

	tests := []struct {
		name    string
		user    *entity.User
		allowed []entity.Role
		wantErr error
	}{
		{
			name:    "admin allowed",
			user:    &entity.User{Role: entity.RoleAdmin},
			allowed: []entity.Role{entity.RoleAdmin},
		},
		{
			name:    "role in set",
			user:    &entity.User{Role: entity.RoleStoreOwner},
			allowed: []entity.Role{entity.RoleAdmin, entity.RoleStoreOwner},
		},
		{
			name:    "role not in set",
			user:    &entity.User{Role: entity.RoleUser},
			allowed: []entity.Role{entity.RoleAdmin},
			wantErr: domainerrors.ErrInsufficientRole,
		},
		{
			name:    "no identity",
			allowed: []entity.Role{entity.RoleAdmin},
			wantErr: domainerrors.ErrNoUserContext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodGet, "/users", "")
			if tt.user != nil {
				deliverycontext.SetCurrentUser(c, tt.user)
			}

			err := m.RequireRoles(tt.allowed...)(okHandler)(c)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHandleHTTPError_Envelopes(t *testing.T) {
	em := NewErrorMiddleware(testLogger())

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantErrors  bool
	}{
		{
			name: "validation error carries fields",
			err: domainerrors.NewValidationError([]domainerrors.FieldError{
				{Field: "email", Message: "email must be a valid email address", Value: "nope"},
			}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation failed",
			wantErrors:  true,
		},
		{
			name:        "app error maps status and message",
			err:         domainerrors.ErrStoreNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Store not found",
		},
		{
			name:        "wrapped app error still maps",
			err:         errors.Wrap(domainerrors.ErrRatingConflict, "submit rating"),
			wantStatus:  http.StatusConflict,
			wantMessage: "Rating was submitted concurrently, please retry",
		},
		{
			name:        "echo http error passes through",
			err:         echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			wantStatus:  http.StatusMethodNotAllowed,
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "unknown error hides details",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/stores", "")

			em.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Success bool                      `json:"success"`
				Message string                    `json:"message"`
				Errors  []domainerrors.FieldError `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
			if tt.wantErrors {
				require.Len(t, body.Errors, 1)
				assert.Equal(t, "email", body.Errors[0].Field)
			} else {
				assert.Empty(t, body.Errors)
			}
		})
	}
}
