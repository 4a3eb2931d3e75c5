package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopping-list-api/internal/domain/user"
	"shopping-list-api/internal/logger"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity is the verified caller of a request.
type Identity struct {
	UserID uuid.UUID
	Admin  bool
}

// TokenAuthenticator turns an Authorization header into an Identity. It is
// safe for concurrent use.
type TokenAuthenticator struct {
	users  user.Repository
	secret string
}

func NewTokenAuthenticator(users user.Repository, secret string) *TokenAuthenticator {
	return &TokenAuthenticator{users: users, secret: secret}
}

// Resolve fails with TOKEN_MISSING when no bearer value is present and with
// TOKEN_INVALID for anything that does not verify to an existing user.
func (a *TokenAuthenticator) Resolve(ctx context.Context, header string) (*Identity, error) {
	token, err := bearerToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := utils.ValidateToken(token, a.secret)
	if err != nil {
		logger.Debug("Token rejected",
			zap.Error(err),
			zap.String("event", "token_rejected"),
		)
		return nil, appErrors.ErrTokenInvalid
	}

	u, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			logger.Warn("Token for unknown user",
				zap.String("user_id", claims.UserID.String()),
				zap.String("event", "token_user_not_found"),
			)
			return nil, appErrors.ErrTokenInvalid
		}
		return nil, appErrors.Internal(fmt.Errorf("failed to resolve token user: %w", err))
	}

	return &Identity{UserID: u.ID, Admin: u.Admin}, nil
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", appErrors.ErrTokenMissing
	}

	scheme, value, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", appErrors.ErrTokenInvalid
	}

	value = strings.TrimSpace(value)
	if !found || value == "" {
		return "", appErrors.ErrTokenMissing
	}
	if strings.ContainsAny(value, " \t") {
		return "", appErrors.ErrTokenInvalid
	}

	return value, nil
}
