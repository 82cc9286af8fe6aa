// Package redis connects to the Redis server backing the alternative
// session store.
//
// Connect parses a redis:// URL, pings the server and retries according to
// Config. Healthcheck wraps a ping for readiness checks.
//
//	client, err := redis.Connect(ctx, redis.Config{
//	    ConnectionURL: "redis://localhost:6379/0",
//	    RetryAttempts: 3,
//	    RetryInterval: time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Errors are joined with the package sentinels and can be matched with
// errors.Is.
package redis
