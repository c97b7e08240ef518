// Package ssr supervises the optional server-side rendering process.
//
// The renderer is an external node program built by the frontend toolchain
// (dist/ssr/ssr.js by default). Whether it runs is decided once at startup by
// Evaluate:
//
//   - an explicit "off" switch disables it;
//   - an explicit "on" switch skips the mode and dev-server checks;
//   - otherwise the service must run in prod mode with no dev server detected;
//   - in every case the artifact must exist on disk.
//
// A Supervisor moves through NotStarted, Running and Terminated, or settles in
// NeverStarted when the gate rejects or the launch fails. Neither outcome is
// fatal: pages fall back to client-side rendering.
//
//	sup := ssr.New(ssr.Config{}, ssr.WithLogger(log))
//	defer func() { _ = sup.Stop() }()
//
//	devURL, devActive := ssr.DetectDevServer(ctx, ssr.DetectConfig{})
//	_ = sup.Start(ctx, ssr.Gate{Mode: cfg.Mode(), Switch: cfg.SSR(), DevServerActive: devActive})
//
// Stop is safe to call from every shutdown path, including deferred calls while
// a panic unwinds. Only the first call on a running supervisor signals the
// process group; the renderer gets a grace period before it is killed.
//
// Client posts page objects to the renderer's /render endpoint.
package ssr
