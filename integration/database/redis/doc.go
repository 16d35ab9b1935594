// Package redis provides Redis connection management and a renewal store
// built on go-redis.
//
// Configuration:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//		KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"sitecert"`
//	}
//
// Connect validates the URL (redis:// or rediss://), retries with an
// exponentially growing delay and verifies the client with a ping:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewRenewalStore(client, redis.WithKeyPrefix(cfg.KeyPrefix))
//
// # Storage Layout
//
// Each renewal is stored as a JSON string under "{prefix}:renewal:{id}". The
// sorted set "{prefix}:renewals" indexes the ids by creation time in
// microseconds so List returns renewals in creation order. Writes update the
// record and the index in one MULTI/EXEC transaction.
//
// # Errors
//
//   - ErrFailedToParseRedisConnString: malformed or non-redis URL
//   - ErrRedisNotReady: no successful ping within the retry budget
//   - ErrEmptyConnectionURL: no URL configured
//   - ErrHealthcheckFailed: health check ping failed
package redis
