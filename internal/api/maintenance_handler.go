package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"jobportal/internal/apperr"
	"jobportal/internal/api/middleware"
	"jobportal/internal/database"
	"jobportal/internal/uploads"
)

const (
	repairLockKey = "lock:maintenance:resume-url-repair"
	repairLockTTL = 10 * time.Minute
)

// repairLocker is the slice of the redis client the repair job needs for its
// one-shot guard. redis.UniversalClient satisfies it.
type repairLocker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// MaintenanceHandler serves one-off data-repair jobs.
type MaintenanceHandler struct {
	db     *gorm.DB
	locker repairLocker
	logger *slog.Logger
}

// NewMaintenanceHandler constructs the maintenance handler.
func NewMaintenanceHandler(db *gorm.DB, locker repairLocker, logger *slog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		db:     db,
		locker: locker,
		logger: logger,
	}
}

// RepairResumeURLs rewrites resume URLs stored under the image-serving path
// to the raw document path. Saves run sequentially and the first failure
// aborts the rest; rewrites already saved are kept, and the failure response
// does not report how many succeeded. Best effort, not transactional.
func (h *MaintenanceHandler) RepairResumeURLs(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	// One-shot guard: a second concurrent invocation is rejected. Redis
	// being unreachable does not block the job.
	acquired, err := h.locker.SetNX(ctx, repairLockKey, "1", repairLockTTL).Result()
	if err == nil && !acquired {
		c.JSON(http.StatusConflict, gin.H{"message": "repair already running", "success": false})
		return
	}
	if err == nil {
		defer func() {
			_ = h.locker.Del(context.Background(), repairLockKey).Err()
		}()
	}

	var users []database.User
	if err := h.db.WithContext(ctx).
		Where("profile_resume_url LIKE ? AND profile_resume_url LIKE ?", "%/image/upload/%", "%.pdf").
		Find(&users).Error; err != nil {
		Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("find broken resume urls: %w", err)))
		return
	}

	updated := 0
	for i := range users {
		fixed := uploads.FixPdfURL(users[i].Profile.ResumeURL)
		if fixed == users[i].Profile.ResumeURL {
			continue
		}
		users[i].Profile.ResumeURL = fixed
		if err := h.db.WithContext(ctx).Save(&users[i]).Error; err != nil {
			Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("save user %d: %w", users[i].ID, err)))
			return
		}
		updated++
	}

	logger.Info("resume urls repaired", slog.Int("updated", updated))
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Fixed %d resume URLs", updated),
		"success": true,
	})
}
