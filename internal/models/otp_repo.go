package models

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPTTL is how long a one-time code stays valid.
const OTPTTL = 10 * time.Minute

const otpKeyPrefix = "otp:"

// OTPRepo is a time-bounded key-value store for one-time codes, owned by
// the authentication flow. Codes expire on their own and are deleted on
// first successful verification.
type OTPRepo interface {
	StoreOTP(ctx context.Context, email, code string, ttl time.Duration) error
	VerifyOTP(ctx context.Context, email, code string) error
}

type RedisOTPRepo struct {
	client *redis.Client
}

func RedisNewOTPRepo(client *redis.Client) *RedisOTPRepo {
	return &RedisOTPRepo{client: client}
}

func (r *RedisOTPRepo) StoreOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("%w: redis client is not initialized", ErrStorageUnavailable)
	}
	if err := r.client.Set(ctx, otpKeyPrefix+email, code, ttl).Err(); err != nil {
		return fmt.Errorf("%w: storing OTP: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// VerifyOTP checks the stored code for the email. A missing key means the
// code expired or was never sent; a mismatch leaves the code in place for
// another attempt; a match consumes it.
func (r *RedisOTPRepo) VerifyOTP(ctx context.Context, email, code string) error {
	if r.client == nil {
		return fmt.Errorf("%w: redis client is not initialized", ErrStorageUnavailable)
	}

	stored, err := r.client.Get(ctx, otpKeyPrefix+email).Result()
	if err == redis.Nil {
		return ErrOTPNotSent
	}
	if err != nil {
		return fmt.Errorf("%w: reading OTP: %v", ErrStorageUnavailable, err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrOTPInvalid
	}

	if err := r.client.Del(ctx, otpKeyPrefix+email).Err(); err != nil {
		return fmt.Errorf("%w: consuming OTP: %v", ErrStorageUnavailable, err)
	}
	return nil
}
