package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// ModerationStream receives one entry per moderation action taken by the
// bot; external tooling tails it for audit.
const ModerationStream = "quokka.moderation"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishModerationEvent appends an audit entry to the moderation stream.
// A nil client disables publishing.
func PublishModerationEvent(ctx context.Context, rdb *redis.Client, values map[string]interface{}) error {
	if rdb == nil {
		return nil
	}
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: ModerationStream,
		Values: values,
	}).Result()
	return err
}
