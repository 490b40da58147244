package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// AvailabilityCache はセッションの残り枚数キャッシュを管理する
// 予約成功時に必ず Invalidate され、次回読み込みで再計算される
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache は新しいAvailabilityCacheを作成する
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// Get はセッションの残り枚数をキャッシュから取得する
func (c *AvailabilityCache) Get(ctx context.Context, sessionID string) (int, error) {
	key := c.availabilityKey(sessionID)
	val, err := c.client.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// Set はセッションの残り枚数をキャッシュに保存する
func (c *AvailabilityCache) Set(ctx context.Context, sessionID string, available int, ttl time.Duration) error {
	key := c.availabilityKey(sessionID)
	if err := c.client.Set(ctx, key, available, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はセッションのキャッシュを無効化する
func (c *AvailabilityCache) Invalidate(ctx context.Context, sessionID string) error {
	key := c.availabilityKey(sessionID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) availabilityKey(sessionID string) string {
	return fmt.Sprintf("sessions:available:%s", sessionID)
}
