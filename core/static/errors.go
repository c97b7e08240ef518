package static

import "errors"

var ErrDirUnavailable = errors.New("static: directory unavailable")
