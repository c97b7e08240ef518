// Package session keeps a login identity in a single protected cookie.
//
// The session (an ID, the principal and its deadline) is serialised to JSON
// and stored through a cookie.Manager, either encrypted (Private, the default)
// or signed (Signed). Nothing is kept on the server, so logging out only
// clears the cookie on the client.
//
//	sessions := session.NewManager(cookies, session.Config{
//		Name:   cfg.CookieName(),
//		TTL:    cfg.CookieTTL(),
//		Secure: cfg.CookieSecure(),
//	})
//	r.Use(sessions.Middleware)
//
//	func whoami(w http.ResponseWriter, r *http.Request) {
//		if p, ok := session.Current(r.Context()); ok {
//			fmt.Fprintf(w, "hello %s", p)
//		}
//	}
//
// Login rotates the session ID and embeds the expiry in the payload, so an
// expired cookie is rejected even if the client ignores Max-Age. Login does
// not check credentials.
package session
