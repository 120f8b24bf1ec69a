package patch

import "errors"

var ErrPatch = errors.New("patch error")
