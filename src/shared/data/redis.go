package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamAudit = "listabot.audit"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishAudit appends an audit event to the bot's stream for external
// consumers. Callers treat failures as best-effort.
func PublishAudit(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamAudit,
		Values: payload,
	}).Result()
	return err
}
