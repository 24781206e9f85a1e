package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	DeveloperKeyPrefix = "developer:%d"
	ProjectKeyPrefix   = "project:%d"
)

const (
	UserTTL      = 5 * time.Minute
	DeveloperTTL = 10 * time.Minute
	ProjectTTL   = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func DeveloperKey(profileID uint) string {
	return fmt.Sprintf(DeveloperKeyPrefix, profileID)
}

func ProjectKey(projectID uint) string {
	return fmt.Sprintf(ProjectKeyPrefix, projectID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateDeveloper(ctx context.Context, profileID uint) {
	Invalidate(ctx, DeveloperKey(profileID))
}

func InvalidateProject(ctx context.Context, projectID uint) {
	Invalidate(ctx, ProjectKey(projectID))
}
