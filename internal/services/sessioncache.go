package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/types"
	"github.com/modulehub/modulehub-backend/internal/utils"
)

// SessionCache keeps session rows in redis keyed by token so an authorized
// request usually skips the postgres read. A nil *SessionCache is valid and
// means caching is disabled; every method is a no-op then. The store stays
// authoritative: a cache miss falls back to postgres.
type SessionCache struct {
	log    *logger.Logger
	client *redis.Client
}

func NewSessionCache(log *logger.Logger) *SessionCache {
	serviceLog := log.With("service", "SessionCache")
	addr := utils.GetEnv("REDIS_ADDR", "", log)
	if addr == "" {
		serviceLog.Info("REDIS_ADDR not set, session caching disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetEnv("REDIS_PASSWORD", "", log),
		DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
	})
	serviceLog.Info("Session caching enabled", "addr", addr)
	return &SessionCache{log: serviceLog, client: client}
}

func (sc *SessionCache) Get(ctx context.Context, token string) *types.Session {
	if sc == nil {
		return nil
	}
	raw, err := sc.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		return nil
	}
	var session types.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		sc.log.Warn("Dropping undecodable cached session", "error", err)
		sc.Delete(ctx, token)
		return nil
	}
	return &session
}

func (sc *SessionCache) Set(ctx context.Context, session *types.Session) {
	if sc == nil || session == nil {
		return
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := sc.client.Set(ctx, sessionKey(session.Token), raw, ttl).Err(); err != nil {
		sc.log.Warn("Failed to cache session", "error", err)
	}
}

func (sc *SessionCache) Delete(ctx context.Context, token string) {
	if sc == nil {
		return
	}
	if err := sc.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		sc.log.Warn("Failed to evict cached session", "error", err)
	}
}

func sessionKey(token string) string {
	return "session:" + token
}
