package gormdb

import (
	"context"
	"errors"
	"fmt"
	"shopping-list-api/internal/domain/user"
	"shopping-list-api/internal/infrastructure/database/gormdb/models"
	"shopping-list-api/pkg/pagination"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now().UTC()
	u.ID = uuid.New()
	u.Email = strings.ToLower(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKeyError(err) {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.Email = strings.ToLower(u.Email)
	u.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"username":   u.Username,
			"email":      u.Email,
			"updated_at": u.UpdatedAt,
		})

	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hashed": passwordHash,
			"updated_at":      time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dbModel models.UserModel
		if err := tx.First(&dbModel, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return user.ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		ownedLists := func() *gorm.DB {
			return tx.Model(&models.ShoppingListModel{}).Select("id").Where("owner_id = ?", userID)
		}

		steps := []struct {
			what  string
			query *gorm.DB
			model interface{}
		}{
			{"shared lists", tx.Where("list_id IN (?) OR owner_id = ? OR friend_id = ?", ownedLists(), userID, userID), &models.SharedListModel{}},
			{"items", tx.Where("list_id IN (?)", ownedLists()), &models.ShoppingListItemModel{}},
			{"shopping lists", tx.Where("owner_id = ?", userID), &models.ShoppingListModel{}},
			{"friend links", tx.Where("requester_id = ? OR recipient_id = ?", userID, userID), &models.FriendLinkModel{}},
			{"reset tokens", tx.Where("email = ?", dbModel.Email), &models.PasswordResetTokenModel{}},
		}
		for _, step := range steps {
			if err := step.query.Delete(step.model).Error; err != nil {
				return fmt.Errorf("failed to delete %s: %w", step.what, err)
			}
		}

		if err := tx.Delete(&models.UserModel{}, "id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) Search(ctx context.Context, excludeID uuid.UUID, params pagination.Params) ([]*user.User, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("admin = ? AND id <> ?", false, excludeID)

	rows, total, err := findPage[models.UserModel](query, params, "username")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search users: %w", err)
	}

	return toUserEntities(rows), total, nil
}

func (r *UserRepository) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).Where("admin = ?", true).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) SavePasswordResetToken(ctx context.Context, token *user.PasswordResetToken) error {
	token.ID = uuid.New()
	token.Email = strings.ToLower(token.Email)
	token.CreatedAt = time.Now().UTC()

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", token.Email).Delete(&models.PasswordResetTokenModel{}).Error; err != nil {
			return fmt.Errorf("failed to replace reset token: %w", err)
		}
		if err := tx.Create(toPasswordResetTokenModel(token)).Error; err != nil {
			return fmt.Errorf("failed to create reset token: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) GetPasswordResetToken(ctx context.Context, token string) (*user.PasswordResetToken, error) {
	var dbModel models.PasswordResetTokenModel
	err := r.db.DB.WithContext(ctx).Where("token = ?", token).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrResetTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return toPasswordResetTokenEntity(&dbModel), nil
}

func (r *UserRepository) DeletePasswordResetToken(ctx context.Context, tokenID uuid.UUID) error {
	if err := r.db.DB.WithContext(ctx).Delete(&models.PasswordResetTokenModel{}, "id = ?", tokenID).Error; err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}

func (r *UserRepository) DeleteExpiredResetTokens(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	result := r.db.DB.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.PasswordResetTokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired reset tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHashed: u.PasswordHashed,
		Admin:          u.Admin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		PasswordHashed: m.PasswordHashed,
		Admin:          m.Admin,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toUserEntities(rows []models.UserModel) []*user.User {
	users := make([]*user.User, len(rows))
	for i := range rows {
		users[i] = toUserEntity(&rows[i])
	}
	return users
}

func toPasswordResetTokenModel(t *user.PasswordResetToken) *models.PasswordResetTokenModel {
	return &models.PasswordResetTokenModel{
		ID:        t.ID,
		Email:     t.Email,
		Token:     t.Token,
		CreatedAt: t.CreatedAt,
	}
}

func toPasswordResetTokenEntity(m *models.PasswordResetTokenModel) *user.PasswordResetToken {
	return &user.PasswordResetToken{
		ID:        m.ID,
		Email:     m.Email,
		Token:     m.Token,
		CreatedAt: m.CreatedAt,
	}
}
