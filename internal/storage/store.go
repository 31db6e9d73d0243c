package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/observability"
)

// Store is the key-value persistence adapter every state service goes
// through. Writes report success or failure and never panic; reads leave the
// destination untouched on a missing or corrupt document so the caller's
// default survives.
type Store interface {
	Save(ctx context.Context, key string, value interface{}) bool
	Load(ctx context.Context, key string, dest interface{}) bool
	Remove(ctx context.Context, keys ...string) bool
	ClearAppData(ctx context.Context) bool
}

type redisStore struct {
	client  *redis.Client
	schemas *SchemaSet
	logger  zerolog.Logger
}

// NewRedisStore constructs a Store backed by Redis. The schema set may be nil
// to skip document validation on load.
func NewRedisStore(client *redis.Client, schemas *SchemaSet, logger zerolog.Logger) Store {
	return &redisStore{
		client:  client,
		schemas: schemas,
		logger:  logger.With().Str("component", "storage").Logger(),
	}
}

func (s *redisStore) Save(ctx context.Context, key string, value interface{}) bool {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to serialize document")
		observability.StorageOps().WithLabelValues("save", "error").Inc()
		return false
	}

	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to persist document")
		observability.StorageOps().WithLabelValues("save", "error").Inc()
		return false
	}

	observability.StorageOps().WithLabelValues("save", "ok").Inc()
	return true
}

func (s *redisStore) Load(ctx context.Context, key string, dest interface{}) bool {
	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Error().Err(err).Str("key", key).Msg("failed to read document")
			observability.StorageOps().WithLabelValues("load", "error").Inc()
		} else {
			observability.StorageOps().WithLabelValues("load", "miss").Inc()
		}
		return false
	}

	if s.schemas != nil {
		if err := s.schemas.Validate(key, payload); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("persisted document failed schema validation, using default")
			observability.StorageOps().WithLabelValues("load", "invalid").Inc()
			return false
		}
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("corrupt persisted document, using default")
		observability.StorageOps().WithLabelValues("load", "invalid").Inc()
		return false
	}

	observability.StorageOps().WithLabelValues("load", "ok").Inc()
	return true
}

func (s *redisStore) Remove(ctx context.Context, keys ...string) bool {
	if len(keys) == 0 {
		return true
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error().Err(err).Strs("keys", keys).Msg("failed to remove documents")
		observability.StorageOps().WithLabelValues("remove", "error").Inc()
		return false
	}

	observability.StorageOps().WithLabelValues("remove", "ok").Inc()
	return true
}

func (s *redisStore) ClearAppData(ctx context.Context) bool {
	return s.Remove(ctx, appDataKeys()...)
}
