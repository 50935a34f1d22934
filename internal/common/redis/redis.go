package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/eNoodles/user-service/internal/common/constants"
)

// New connects a Redis client and verifies the connection with a ping.
// A failed ping is a fatal configuration problem for the caller to report.
func New(addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.RedisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
