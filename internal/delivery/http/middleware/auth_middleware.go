// Package middleware contains the HTTP-layer middleware: authentication,
// authorization and the centralized error handler.
package middleware

import (
	"strings"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware validates bearer tokens and resolves the calling user.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate requires a valid bearer token and a still-existing user row.
// The resolved user is placed on the echo context for downstream handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.resolveUser(c)
		if err != nil {
			return err
		}

		deliverycontext.SetCurrentUser(c, user)

		return next(c)
	}
}

// OptionalAuthenticate resolves the calling user when a valid token is
// presented and proceeds anonymously otherwise. Store listings use it to
// attach the viewer's own rating without gating public reads.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user, err := m.resolveUser(c); err == nil {
			deliverycontext.SetCurrentUser(c, user)
		}

		return next(c)
	}
}

// RequireRoles allows the request through only when the authenticated user
// holds one of the given roles. It must run after Authenticate.
func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := deliverycontext.GetCurrentUser(c)
			if !ok {
				return domainerrors.ErrNoUserContext
			}

			if !allowed.Contains(user.Role) {
				return domainerrors.ErrInsufficientRole
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) resolveUser(c echo.Context) (*entity.User, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, domainerrors.ErrTokenRequired
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return nil, domainerrors.ErrInvalidToken
	}

	claims, err := m.tokenSvc.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired
		}

		return nil, domainerrors.ErrInvalidToken
	}

	// Re-check the user row so deleted accounts lose access immediately even
	// while their tokens are still within TTL.
	user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken.WithDetails("user not found")
		}

		return nil, errors.WithStack(err)
	}

	return user, nil
}
