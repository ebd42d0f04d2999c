package sessiongate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var errDecodeThrottled = errors.New("decode throttled")

// ErrThrottleUnavailable wraps redis failures inside the decode throttle.
// The throttle fails open on it: an unreachable counter store must not lock
// every holder of a valid cookie out.
var ErrThrottleUnavailable = errors.New("decode throttle unavailable")

// decodeThrottle counts failed token decodes per client IP in a fixed
// cooldown window. It stores abuse counters only, never session state.
type decodeThrottle struct {
	redis    *redis.Client
	max      int64
	cooldown time.Duration
}

func newDecodeThrottle(redisClient *redis.Client, cfg SecurityConfig) *decodeThrottle {
	return &decodeThrottle{
		redis:    redisClient,
		max:      int64(cfg.MaxDecodeFailures),
		cooldown: cfg.DecodeCooldown,
	}
}

func (t *decodeThrottle) key(ip string) string {
	return "sg:df:" + ip
}

func (t *decodeThrottle) Check(ctx context.Context, ip string) error {
	if ip == "" {
		return nil
	}
	count, err := t.redis.Get(ctx, t.key(ip)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrThrottleUnavailable, err)
	}
	if count >= t.max {
		return errDecodeThrottled
	}
	return nil
}

func (t *decodeThrottle) RecordFailure(ctx context.Context, ip string) error {
	if ip == "" {
		return nil
	}
	count, err := t.redis.Incr(ctx, t.key(ip)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrThrottleUnavailable, err)
	}
	if count == 1 {
		if err := t.redis.Expire(ctx, t.key(ip), t.cooldown).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrThrottleUnavailable, err)
		}
	}
	if count >= t.max {
		return errDecodeThrottled
	}
	return nil
}

func (t *decodeThrottle) Reset(ctx context.Context, ip string) error {
	if ip == "" {
		return nil
	}
	if err := t.redis.Del(ctx, t.key(ip)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrThrottleUnavailable, err)
	}
	return nil
}
