package tree

import "errors"

var ErrEdit = errors.New("edit error")
