package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopping-list-api/internal/config"
	domainUser "shopping-list-api/internal/domain/user"
	"shopping-list-api/internal/logger"
	appErrors "shopping-list-api/pkg/errors"
	"shopping-list-api/pkg/pagination"
	"shopping-list-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errSelfDelete = appErrors.ErrForbidden.WithMessage("you cannot delete yourself")

// Service implements user use cases
type Service struct {
	userRepo domainUser.Repository
	config   *config.Config
}

// NewService creates a new user service
func NewService(userRepo domainUser.Repository, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		config:   cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	email := strings.ToLower(req.Email)

	// Check if user already exists
	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domainUser.User{
		Username:       req.Username,
		Email:          email,
		PasswordHashed: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, appErrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("username", user.Username),
		zap.String("event", "user_registered"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(user.ID, s.config.JWT.Secret, s.config.JWT.Expiry())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Bool("admin", user.Admin),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		User:        ToUserResponse(user),
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt,
	}, nil
}

// ForgotPassword issues a reset token for the email, replacing any earlier one.
// The token is returned to the caller; there is no e-mail delivery.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) (*ResetTokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "password_reset_requested_non_existent_email"),
			)
			return nil, appErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	resetToken := &domainUser.PasswordResetToken{
		Email:     user.Email,
		Token:     utils.GenerateResetToken(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userRepo.SavePasswordResetToken(ctx, resetToken); err != nil {
		return nil, fmt.Errorf("failed to create reset token: %w", err)
	}

	logger.Info("Password reset token generated",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("token_id", resetToken.ID.String()),
		zap.String("event", "password_reset_token_generated"),
	)

	return &ResetTokenResponse{
		Token:     resetToken.Token,
		ExpiresAt: resetToken.CreatedAt.Add(s.config.Cleanup.ResetTokenTTL),
	}, nil
}

// ResetPassword sets a new password for the owner of token and consumes it.
func (s *Service) ResetPassword(ctx context.Context, token string, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewValidationError(err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return appErrors.NewValidationError(err)
	}

	resetToken, err := s.userRepo.GetPasswordResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainUser.ErrResetTokenNotFound) {
			logger.Warn("Password reset attempt with invalid token",
				zap.String("event", "password_reset_failed_invalid_token"),
			)
			return appErrors.ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to get reset token: %w", err)
	}

	if resetToken.IsExpired(s.config.Cleanup.ResetTokenTTL) {
		if err := s.userRepo.DeletePasswordResetToken(ctx, resetToken.ID); err != nil {
			logger.Error("Failed to delete expired reset token",
				zap.String("token_id", resetToken.ID.String()),
				zap.Error(err),
			)
		}
		return appErrors.ErrResetTokenInvalid
	}

	user, err := s.userRepo.GetByEmail(ctx, resetToken.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.userRepo.DeletePasswordResetToken(ctx, resetToken.ID); err != nil {
		logger.Error("Failed to consume password reset token",
			zap.String("user_id", user.ID.String()),
			zap.String("token_id", resetToken.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("token_id", resetToken.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

// SearchUsers lists non-admin users other than the caller.
func (s *Service) SearchUsers(ctx context.Context, callerID uuid.UUID, params pagination.Params) (*pagination.Result[*UserResponse], error) {
	users, total, err := s.userRepo.Search(ctx, callerID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	page, err := pagination.NewResult(users, total, params)
	if err != nil {
		if errors.Is(err, appErrors.ErrEmptyResult) {
			return nil, appErrors.ErrEmptyResult.WithMessage("No users matching the criteria were found")
		}
		return nil, err
	}

	return pagination.Map(page, ToUserResponse), nil
}

// ListUsers is the admin view of every non-admin account.
func (s *Service) ListUsers(ctx context.Context, adminID uuid.UUID, params pagination.Params) (*pagination.Result[*UserResponse], error) {
	return s.SearchUsers(ctx, adminID, params)
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, callerID, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if callerID != userID {
		return nil, appErrors.ErrForbidden.WithMessage("you do not have permission to edit this profile")
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError(err)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Password != nil && *req.Password != "" {
		if err := utils.ValidatePassword(*req.Password); err != nil {
			return nil, appErrors.NewValidationError(err)
		}
		hashedPassword, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHashed = hashedPassword
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domainUser.ErrUserAlreadyExists):
			return nil, appErrors.ErrUserAlreadyExists
		case errors.Is(err, domainUser.ErrUserNotFound):
			return nil, appErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("Profile updated",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToUserResponse(user), nil
}

// DeleteProfile removes the caller's own account and everything it owns.
func (s *Service) DeleteProfile(ctx context.Context, callerID, userID uuid.UUID) error {
	if callerID != userID {
		return appErrors.ErrForbidden.WithMessage("you do not have permission to delete this profile")
	}

	return s.delete(ctx, userID)
}

// DeleteUser is the admin removal of another account.
func (s *Service) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if adminID == userID {
		return errSelfDelete
	}

	return s.delete(ctx, userID)
}

// EnsureAdmin creates the configured administrator when no admin exists yet.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	exists, err := s.userRepo.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}
	if exists {
		return nil
	}

	cfg := s.config.Admin
	if cfg.Email == "" || cfg.Password == "" {
		logger.Warn("No admin user exists and none is configured",
			zap.String("event", "admin_seed_skipped"),
		)
		return nil
	}

	email, err := utils.ValidateAndSanitizeEmail(cfg.Email)
	if err != nil {
		return fmt.Errorf("invalid ADMIN_EMAIL: %w", err)
	}
	if err := utils.ValidatePassword(cfg.Password); err != nil {
		return fmt.Errorf("invalid ADMIN_PASSWORD: %w", err)
	}

	username := utils.SanitizeName(cfg.Username)
	if username == "" {
		username = "admin"
	}

	hashedPassword, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := &domainUser.User{
		Username:       username,
		Email:          email,
		PasswordHashed: hashedPassword,
		Admin:          true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	logger.Info("Admin user created",
		zap.String("user_id", admin.ID.String()),
		zap.String("email", admin.Email),
		zap.String("event", "admin_seeded"),
	)

	return nil
}

func (s *Service) delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.Info("User deleted successfully",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_deleted"),
	)

	return nil
}

func (s *Service) getUser(ctx context.Context, userID uuid.UUID) (*domainUser.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
