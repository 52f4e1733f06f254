package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%d"
	postKeyPrefix = "post:%d"
	postsListKey  = "posts:list"
	homeKey       = "posts:home"
)

const (
	UserTTL      = 5 * time.Minute
	PostTTL      = 2 * time.Minute
	PostsListTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func PostsListKey() string {
	return postsListKey
}

func HomeKey() string {
	return homeKey
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePost drops the post detail plus every listing that embeds its
// vote count or comments.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), postsListKey, homeKey)
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, postsListKey, homeKey)
}
