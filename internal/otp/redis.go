package otp

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

// DefaultKeyPrefix namespaces registry keys in a shared Redis.
const DefaultKeyPrefix = "otp"

const (
	fieldCodeHash = "code_hash"
	fieldVerified = "verified"
	fieldIssuedAt = "issued_at"

	// fieldGeneration survives Consume so Restore can detect a newer issue.
	fieldGeneration = "gen"

	maxWatchRetries = 4
)

// ErrRegistryUnavailable wraps Redis transport failures.
var ErrRegistryUnavailable = errors.New("otp registry unavailable")

// RedisRegistry is a Registry backed by one Redis hash per email. Read-modify-write
// operations run under WATCH/MULTI and retry when another client touched the key.
type RedisRegistry struct {
	client *redis.Client
	prefix string
	opts   options
}

// NewRedisRegistry returns a registry using client. An empty prefix falls back to DefaultKeyPrefix.
func NewRedisRegistry(client *redis.Client, prefix string, opts ...Option) *RedisRegistry {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisRegistry{client: client, prefix: prefix, opts: buildOptions(opts)}
}

func (r *RedisRegistry) key(email string) string {
	return r.prefix + ":" + email
}

// Ping checks connectivity to Redis.
func (r *RedisRegistry) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRegistry) unavailable(err error, op, email string) error {
	return oops.
		In("otp").
		Code("OTP_REGISTRY_UNAVAILABLE").
		With("operation", op).
		With("email", email).
		Wrapf(errors.Join(ErrRegistryUnavailable, err), "redis %s", op)
}

// write stores the code fields of e. The generation field is left to the caller.
func (r *RedisRegistry) write(ctx context.Context, pipe redis.Pipeliner, key string, e Entry) {
	pipe.HSet(ctx, key,
		fieldCodeHash, e.CodeHash,
		fieldVerified, strconv.FormatBool(e.Verified),
		fieldIssuedAt, strconv.FormatInt(e.IssuedAt.UnixMilli(), 10),
	)
	r.expire(ctx, pipe, key, e)
}

func (r *RedisRegistry) expire(ctx context.Context, pipe redis.Pipeliner, key string, e Entry) {
	if r.opts.ttl > 0 {
		remaining := e.IssuedAt.Add(r.opts.ttl).Sub(r.opts.now())
		if remaining < time.Millisecond {
			remaining = time.Millisecond
		}
		pipe.PExpire(ctx, key, remaining)
	}
}

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// read loads the entry at key. ok is false when the key holds no code or the code is
// logically expired; the returned Entry still carries the stored generation.
func (r *RedisRegistry) read(ctx context.Context, c hashReader, key string) (Entry, bool, error) {
	fields, err := c.HGetAll(ctx, key).Result()
	if err != nil {
		return Entry{}, false, err
	}
	gen, _ := strconv.ParseUint(fields[fieldGeneration], 10, 64)
	ms, err := strconv.ParseInt(fields[fieldIssuedAt], 10, 64)
	if err != nil {
		return Entry{Generation: gen}, false, nil
	}
	verified, _ := strconv.ParseBool(fields[fieldVerified])
	e := Entry{
		CodeHash:   fields[fieldCodeHash],
		Verified:   verified,
		IssuedAt:   time.UnixMilli(ms).UTC(),
		Generation: gen,
	}
	if e.CodeHash == "" || r.opts.expired(e) {
		return Entry{Generation: gen}, false, nil
	}
	return e, true, nil
}

// Issue overwrites the entry for email with a fresh unverified code.
func (r *RedisRegistry) Issue(ctx context.Context, email string) (string, error) {
	code, err := r.opts.generate()
	if err != nil {
		return "", err
	}
	key := r.key(email)
	e := Entry{CodeHash: HashCode(code), IssuedAt: r.opts.now()}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, fieldGeneration, 1)
		r.write(ctx, pipe, key, e)
		return nil
	})
	if err != nil {
		return "", r.unavailable(err, "issue", email)
	}
	return code, nil
}

// Verify marks the entry verified if code matches the stored hash.
func (r *RedisRegistry) Verify(ctx context.Context, email, code string) error {
	key := r.key(email)
	for i := 0; i < maxWatchRetries; i++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			e, ok, err := r.read(ctx, tx, key)
			if err != nil {
				return err
			}
			if !ok || !CodeEqual(code, e.CodeHash) {
				return ErrInvalidOTP
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HSet(ctx, key, fieldVerified, "true")
				return nil
			})
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrInvalidOTP) {
			return err
		}
		if err != nil {
			return r.unavailable(err, "verify", email)
		}
		return nil
	}
	// Lost every race against concurrent issues; the code we checked is stale.
	return ErrInvalidOTP
}

// Consume clears and returns the entry if verified. The generation field stays behind.
func (r *RedisRegistry) Consume(ctx context.Context, email string) (Entry, error) {
	key := r.key(email)
	for i := 0; i < maxWatchRetries; i++ {
		var claimed Entry
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			e, ok, err := r.read(ctx, tx, key)
			if err != nil {
				return err
			}
			if !ok || !e.Verified {
				return ErrNotVerified
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HDel(ctx, key, fieldCodeHash, fieldVerified, fieldIssuedAt)
				return nil
			})
			if err != nil {
				return err
			}
			claimed = e
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrNotVerified) {
			return Entry{}, err
		}
		if err != nil {
			return Entry{}, r.unavailable(err, "consume", email)
		}
		return claimed, nil
	}
	return Entry{}, ErrNotVerified
}

// Restore writes e back if the key holds no live code and no issue happened after e.
func (r *RedisRegistry) Restore(ctx context.Context, email string, e Entry) error {
	if r.opts.expired(e) {
		return nil
	}
	key := r.key(email)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, live, err := r.read(ctx, tx, key)
		if err != nil {
			return err
		}
		if live || cur.Generation != e.Generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			r.write(ctx, pipe, key, e)
			return nil
		})
		return err
	}, key)
	// A failed transaction means the key was written concurrently; the newer entry wins.
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return r.unavailable(err, "restore", email)
	}
	return nil
}

var _ Registry = (*RedisRegistry)(nil)
