package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrLockNotAcquired = errors.New("ロックを取得できませんでした")
	ErrLockNotOwned    = errors.New("ロックの所有者ではありません")
)

// SessionLock は Redis を使用したセッション単位の分散ロック
// 同一セッションへの予約をプロセスをまたいで直列化する
type SessionLock struct {
	client *redis.Client
	key    string
	value  string
	ttl    time.Duration
}

// LockManager はセッションロックを管理する
type LockManager struct {
	client *redis.Client
}

// NewLockManager は新しいLockManagerを作成する
func NewLockManager(client *redis.Client) *LockManager {
	return &LockManager{client: client}
}

// AcquireSessionLock は指定セッションのロックを取得する
// グローバルロックではなくセッション単位のキーのため、無関係なセッションの予約は直列化されない
func (m *LockManager) AcquireSessionLock(ctx context.Context, sessionID string, ttl time.Duration) (*SessionLock, error) {
	lockKey := fmt.Sprintf("lock:session:%s", sessionID)
	lockValue := uuid.New().String()

	// SetNX でキーが存在しない場合のみ設定する
	ok, err := m.client.SetNX(ctx, lockKey, lockValue, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}

	return &SessionLock{
		client: m.client,
		key:    lockKey,
		value:  lockValue,
		ttl:    ttl,
	}, nil
}

// AcquireSessionLockWithRetry はリトライ付きでセッションロックを取得する
func (m *LockManager) AcquireSessionLockWithRetry(ctx context.Context, sessionID string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (*SessionLock, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		lock, err := m.AcquireSessionLock(ctx, sessionID, ttl)
		if err == nil {
			return lock, nil
		}
		lastErr = err
		if !errors.Is(err, ErrLockNotAcquired) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, lastErr
}

// Release はロックを解放する（Lua スクリプトで所有者確認と削除をアトミックに実行）
func (l *SessionLock) Release(ctx context.Context) error {
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`
	result, err := l.client.Eval(ctx, script, []string{l.key}, l.value).Int()
	if err != nil {
		return fmt.Errorf("ロック解放に失敗: %w", err)
	}
	if result == 0 {
		return ErrLockNotOwned
	}
	return nil
}

// Extend はロックの有効期限を延長する
func (l *SessionLock) Extend(ctx context.Context, ttl time.Duration) error {
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("PEXPIRE", KEYS[1], ARGV[2])
		else
			return 0
		end
	`
	result, err := l.client.Eval(ctx, script, []string{l.key}, l.value, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("ロック延長に失敗: %w", err)
	}
	if result == 0 {
		return ErrLockNotOwned
	}
	l.ttl = ttl
	return nil
}
