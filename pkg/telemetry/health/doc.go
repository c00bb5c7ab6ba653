// Package health provides liveness and readiness endpoints for sieve watch.
//
// A watch process registers one check per component it depends on:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("schema", func(ctx context.Context) error {
//	    return lastReloadErr()
//	})
//	checker.RegisterCheck("history", store.Ping)
//
//	health.Mount(mux, checker, version, commit, buildTime)
//
// /readyz answers 503 while any check fails, e.g. after a schema edit that
// introduced a collision and before it is fixed.
package health
