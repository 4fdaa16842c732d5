// Package redis connects to Redis for the notifier's shared state.
//
// Three components use the client it returns: the pub/sub event source
// (events.RedisSource), the single-use unsubscribe token ledger
// (unsubscribe.RedisRevocations) and the Redis-backed settings store
// (settings.RedisStore).
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Healthcheck adapts the client to the readiness probe of the HTTP server:
//
//	httpserver.WithReadinessCheck("redis", redis.Healthcheck(client))
//
// Errors wrap the go-redis error with errors.Join, so both the sentinel and
// the driver error can be matched with errors.Is.
package redis
