// Package health runs dependency probes before long running work starts.
//
// Probes follow the func(context.Context) error signature exported by the
// integration packages:
//
//	err := health.Readiness(ctx, log,
//		health.Check{Name: "sqlite", Fn: sqlite.Healthcheck(db)},
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	)
package health
