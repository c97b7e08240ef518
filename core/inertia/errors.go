package inertia

import "errors"

var (
	ErrManifest      = errors.New("inertia: failed to load asset manifest")
	ErrEntryNotFound = errors.New("inertia: entrypoint missing from manifest")
	ErrTemplate      = errors.New("inertia: failed to render root template")
	ErrEncode        = errors.New("inertia: failed to encode page")
)
