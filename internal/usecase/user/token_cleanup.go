package user

import (
	"context"
	"time"

	"shopping-list-api/internal/logger"

	"go.uber.org/zap"
)

// StartTokenCleanupJob periodically deletes password reset tokens older than
// the configured TTL until ctx is cancelled.
func (s *Service) StartTokenCleanupJob(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Token cleanup job started",
		zap.Duration("interval", interval),
	)

	s.cleanupExpiredTokens(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupExpiredTokens(ctx)
		}
	}
}

func (s *Service) cleanupExpiredTokens(ctx context.Context) {
	olderThan := s.config.Cleanup.ResetTokenTTL
	deleted, err := s.userRepo.DeleteExpiredResetTokens(ctx, olderThan)
	if err != nil {
		logger.Error("Failed to delete expired reset tokens", zap.Error(err))
		return
	}

	logger.Debug("Expired reset tokens cleaned up",
		zap.Duration("older_than", olderThan),
		zap.Int64("deleted", deleted),
	)
}
