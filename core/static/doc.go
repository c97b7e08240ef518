// Package static serves the frontend build output.
//
//	bundle, err := static.Dir("public/bundle",
//		static.WithStripPrefix("/bundle"),
//		static.WithCacheControl(static.ImmutableCacheControl),
//	)
//	if err != nil {
//		return err
//	}
//	r.Handle("/bundle/*", bundle)
//
// Directory listings are never served; a directory answers only when it
// holds an index.html. Requests are cleaned by http.FileServer, so paths
// cannot escape the root.
package static
