// Package inertia renders pages for an Inertia.js frontend built with Vite.
//
// A first visit receives the root HTML template with the page object embedded
// in a data-page attribute, plus the script and stylesheet tags for the Vite
// entrypoints. Subsequent visits made by the client router carry the
// X-Inertia header and receive the page object as JSON.
//
//	assets, err := inertia.LoadAssets(inertia.AssetsConfig{DevServerURL: devURL})
//	if err != nil {
//		return err
//	}
//	bridge := inertia.New(inertia.DefaultTemplate(), assets,
//		inertia.WithBaseURL(cfg.BaseURL()),
//		inertia.WithSSR(sup, ssr.NewClient(sup.URL())),
//	)
//
//	func contact(w http.ResponseWriter, r *http.Request) {
//		_ = bridge.Render(w, r, "Contact", inertia.Props{"user": user})
//	}
//
// The asset version is derived from the manifest contents, or "development"
// while the Vite dev server is serving the entrypoints. A client holding a
// stale version gets 409 Conflict with X-Inertia-Location and reloads.
//
// When the SSR supervisor is running, HTML responses are rendered by the node
// renderer. Any renderer error falls back to client-side rendering.
package inertia
