package inertia

import (
	"net/http"
	"strings"
)

// Protocol headers.
const (
	HeaderInertia          = "X-Inertia"
	HeaderVersion          = "X-Inertia-Version"
	HeaderLocation         = "X-Inertia-Location"
	HeaderPartialComponent = "X-Inertia-Partial-Component"
	HeaderPartialData      = "X-Inertia-Partial-Data"
)

// Props are the page properties handed to the frontend component.
type Props map[string]any

// LazyProp is evaluated only when the prop is sent. Partial reloads that do
// not ask for it skip the call.
type LazyProp func() any

// AlwaysProp is sent on every visit, including partial reloads that did not
// ask for it.
type AlwaysProp struct {
	Value any
}

// Always marks v as always included.
func Always(v any) AlwaysProp {
	return AlwaysProp{Value: v}
}

// Page is the object exchanged with the client router.
type Page struct {
	Component string `json:"component"`
	Props     Props  `json:"props"`
	URL       string `json:"url"`
	Version   string `json:"version"`
}

// IsInertia reports whether r was issued by the client router.
func IsInertia(r *http.Request) bool {
	return r.Header.Get(HeaderInertia) == "true"
}

// resolveProps applies partial reload filtering and evaluates lazy props.
func resolveProps(r *http.Request, component string, props Props) Props {
	only := partialKeys(r, component)

	out := make(Props, len(props))
	for k, v := range props {
		if always, ok := v.(AlwaysProp); ok {
			out[k] = always.Value
			continue
		}
		if only != nil && !only[k] {
			continue
		}
		if lazy, ok := v.(LazyProp); ok {
			v = lazy()
		}
		out[k] = v
	}
	return out
}

// partialKeys returns the requested prop names, or nil for a full visit.
func partialKeys(r *http.Request, component string) map[string]bool {
	if !IsInertia(r) || r.Header.Get(HeaderPartialComponent) != component {
		return nil
	}
	data := r.Header.Get(HeaderPartialData)
	if data == "" {
		return nil
	}
	keys := make(map[string]bool)
	for _, k := range strings.Split(data, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys[k] = true
		}
	}
	return keys
}
