// Package app wires the service together: configuration, cookie sessions,
// the Inertia bridge, the SSR supervisor, metrics and the HTTP server.
//
//	a, err := app.New(ctx, cfg, app.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	return a.Run(ctx)
//
// Run starts the renderer before serving and stops it on every return path.
// Routes:
//
//	GET  /              Index page with the auth prop
//	GET  /contact       Contact page
//	GET  /login         Login page
//	POST /login         attaches the demo principal, no credential check
//	GET  /logout        Logout page
//	POST /logout        clears the session cookie
//	POST /echo          echoes the request body
//	GET  /hey           plain text greeting
//	GET  /health/live   liveness
//	GET  /health/ready  readiness, 503 until serving and after shutdown starts
//	GET  /metrics       Prometheus exposition
//	GET  /bundle/*      frontend build output
package app
