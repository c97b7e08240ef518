package ssr

import "errors"

var (
	ErrAlreadyStarted = errors.New("ssr: supervisor already started")
	ErrLaunch         = errors.New("ssr: failed to launch renderer")
	ErrTerminate      = errors.New("ssr: failed to terminate renderer")
	ErrRender         = errors.New("ssr: render request failed")
)
