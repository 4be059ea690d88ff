package locks

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

const lockTTL = 15 * time.Second

type RedisClaimLock struct {
	client rueidis.Client
	prefix string
}

func NewRedisClaimLock(client rueidis.Client, prefix string) *RedisClaimLock {
	return &RedisClaimLock{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisClaimLock) key(accountID uint) string {
	return fmt.Sprintf("%s:%d", r.prefix, accountID)
}

func (r *RedisClaimLock) Acquire(ctx context.Context, accountID uint) error {
	cmd := r.client.B().Set().
		Key(r.key(accountID)).
		Value("1").
		Nx().
		Px(lockTTL).
		Build()

	result := r.client.Do(ctx, cmd)
	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return ErrClaimLocked
		}
		return err
	}

	return nil
}

func (r *RedisClaimLock) Release(ctx context.Context, accountID uint) error {
	cmd := r.client.B().Del().Key(r.key(accountID)).Build()
	return r.client.Do(ctx, cmd).Error()
}
