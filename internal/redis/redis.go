package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(address, username, password string, db int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       db,
	})
	if err := Rdb.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("ping redis at %s: %w", address, err)
	}
	log.Info().Str("address", address).Msg("connected to redis")
	return nil
}

func Close() {
	if Rdb == nil {
		return
	}
	if err := Rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close redis client")
	}
}
