// Package server runs an http.Handler with production timeouts and graceful
// shutdown.
//
// The listener is bound synchronously in Start, so a port conflict is reported
// before the application considers itself up. Timeouts come from SERVER_*
// environment variables:
//
//	cfg, err := server.ConfigFromEnv(appCfg.Addr(), nil)
//	if err != nil {
//		return err
//	}
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Run returns a function suitable for errgroup.Group.Go: it serves until the
// context is canceled, then drains in-flight requests for at most the
// shutdown timeout.
package server
