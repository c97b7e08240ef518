// Package metrics exposes Prometheus collectors for the renderer supervisor,
// server-side rendering, sessions and HTTP responses.
//
// Each Metrics value owns its registry, so tests and multiple app instances
// never collide on the global default registerer.
//
//	m := metrics.New()
//	sup := ssr.New(ssr.Config{}, ssr.WithStateHook(m.SSRState))
//	sessions := session.NewManager(cookies, cfg, session.WithRecorder(m))
//	r.Use(m.Middleware)
//	r.Method(http.MethodGet, "/metrics", m.Handler())
package metrics
