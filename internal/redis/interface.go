package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the redis surface repositories are built against
type Client interface {
	redis.UniversalClient
}
