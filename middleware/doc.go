// Package middleware provides net/http middleware for the web surface:
// request IDs, structured request logging, security headers and request
// body limits. Every constructor returns func(http.Handler) http.Handler and
// plugs into chi's Use.
//
//	r := chi.NewRouter()
//	r.Use(
//		middleware.RequestID(),
//		middleware.Logging(log),
//		middleware.SecurityHeaders(middleware.BalancedSecurity),
//		middleware.BodyLimit(1<<20),
//	)
package middleware
