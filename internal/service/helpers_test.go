package service

import (
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rooby-labs/konexa-go-api/internal/storage"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return storage.NewRedisStore(client, nil, testLogger())
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
