package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/easyhomework/backend/internal/models"
)

const (
	activityKeep = 50
	activityTTL  = TokenTTL
)

// ActivityLog wraps Redis to remember recent teacher logins per parent
// account. A nil *ActivityLog is a valid, disabled log.
type ActivityLog struct {
	rdb *redis.Client
}

func NewActivityLog(rdb *redis.Client) *ActivityLog {
	if rdb == nil {
		return nil
	}
	return &ActivityLog{rdb: rdb}
}

func activityKey(parentID string) string {
	return "teacher_logins:" + parentID
}

// Record pushes entry onto the parent's list, keeping the newest entries.
func (l *ActivityLog) Record(ctx context.Context, parentID string, entry models.TeacherLogin) error {
	if l == nil {
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := activityKey(parentID)
	pipe := l.rdb.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, activityKeep-1)
	pipe.Expire(ctx, key, activityTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record teacher login: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *ActivityLog) Recent(ctx context.Context, parentID string, limit int) ([]models.TeacherLogin, error) {
	out := []models.TeacherLogin{}
	if l == nil {
		return out, nil
	}
	if limit <= 0 || limit > activityKeep {
		limit = activityKeep
	}
	vals, err := l.rdb.LRange(ctx, activityKey(parentID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list teacher logins: %w", err)
	}
	for _, v := range vals {
		var e models.TeacherLogin
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
