package schema

import "errors"

var (
	ErrConstraint = errors.New("constraint violation")
	ErrManifest   = errors.New("invalid manifest")
)
