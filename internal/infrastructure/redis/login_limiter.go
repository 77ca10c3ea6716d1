// Package redis contiene los adaptadores sobre Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

var _ auth.LoginThrottle = (*LoginLimiter)(nil)

const keyPrefix = "stockroom:login:fail:"

// commands subconjunto de goredis.Cmdable que usa el limitador.
type commands interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Incr(ctx context.Context, key string) *goredis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// LoginLimiter cuenta logins fallidos por username en una ventana fija.
// Si Redis no responde el login sigue permitido (fail open) y se registra el error.
type LoginLimiter struct {
	client      commands
	maxAttempts int
	window      time.Duration
	log         *logger.Logger
}

// NewLoginLimiter construye el limitador. maxAttempts <= 0 lo desactiva.
func NewLoginLimiter(client goredis.Cmdable, maxAttempts int, window time.Duration, log *logger.Logger) *LoginLimiter {
	return newLoginLimiter(client, maxAttempts, window, log)
}

func newLoginLimiter(client commands, maxAttempts int, window time.Duration, log *logger.Logger) *LoginLimiter {
	if log == nil {
		log = logger.Nop()
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window, log: log}
}

// NewClient abre el cliente y hace ping. Acepta host:port o redis://host:port.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"),
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func key(username string) string {
	return keyPrefix + strings.ToLower(username)
}

// Allow false cuando el username ya alcanzó maxAttempts fallos dentro de la ventana.
func (l *LoginLimiter) Allow(ctx context.Context, username string) (bool, error) {
	if l.maxAttempts <= 0 {
		return true, nil
	}
	val, err := l.client.Get(ctx, key(username)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return true, nil
		}
		l.log.Warn().Err(err).Str("username", username).Msg("login limiter: redis get failed")
		return true, nil
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return true, nil
	}
	return count < l.maxAttempts, nil
}

// Fail suma un intento fallido; el primero fija la expiración de la ventana.
func (l *LoginLimiter) Fail(ctx context.Context, username string) error {
	if l.maxAttempts <= 0 {
		return nil
	}
	k := key(username)
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		l.log.Warn().Err(err).Str("username", username).Msg("login limiter: redis incr failed")
		return nil
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			l.log.Warn().Err(err).Str("username", username).Msg("login limiter: redis expire failed")
		}
	}
	if count == int64(l.maxAttempts) {
		l.log.Info().Str("username", username).Dur("window", l.window).Msg("login bloqueado por intentos fallidos")
	}
	return nil
}

// Reset borra el contador tras un login exitoso.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if err := l.client.Del(ctx, key(username)).Err(); err != nil {
		l.log.Warn().Err(err).Str("username", username).Msg("login limiter: redis del failed")
	}
	return nil
}
