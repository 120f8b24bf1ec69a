package libdiff

import "errors"

// ErrConflict is returned when a change does not fit the document it is
// applied to.
var ErrConflict = errors.New("diff conflict")
