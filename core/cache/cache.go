package cache

import (
	"campusflow/core/constants"
	"context"
	"strings"
	"time"
)

// Cache holds short-lived state: token blacklist, login throttling, reset codes and oauth state.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	AddToTokenBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)

	IncrementLoginAttempt(ctx context.Context, email string) (int64, error)
	ResetLoginAttempts(ctx context.Context, email string) error
	IsLoginBlocked(ctx context.Context, email string) (bool, error)
}

func loginKey(email string) string {
	return constants.RedisKeyLoginAttempt + strings.ToLower(strings.TrimSpace(email))
}

// base implements the derived helpers on top of the primitive operations.
type base struct {
	prim interface {
		Get(ctx context.Context, key string) (string, bool, error)
		Set(ctx context.Context, key, value string, ttl time.Duration) error
		Del(ctx context.Context, key string) error
		Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	}
}

func (b base) AddToTokenBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.prim.Set(ctx, constants.RedisKeyTokenBlacklist+tokenID, "1", ttl)
}

func (b base) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	_, ok, err := b.prim.Get(ctx, constants.RedisKeyTokenBlacklist+tokenID)
	return ok, err
}

// IncrementLoginAttempt counts a failure; the counter expires after the block window.
func (b base) IncrementLoginAttempt(ctx context.Context, email string) (int64, error) {
	return b.prim.Incr(ctx, loginKey(email), constants.BlockDuration)
}

func (b base) ResetLoginAttempts(ctx context.Context, email string) error {
	return b.prim.Del(ctx, loginKey(email))
}

func (b base) IsLoginBlocked(ctx context.Context, email string) (bool, error) {
	raw, ok, err := b.prim.Get(ctx, loginKey(email))
	if err != nil || !ok {
		return false, err
	}
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false, nil
		}
		n = n*10 + int(r-'0')
	}
	return n >= constants.MaxLoginAttempts, nil
}
