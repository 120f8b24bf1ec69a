package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/plistkit/token"
)

var (
	ErrParse = errors.New("parse error")
	// ErrInvalidXML is returned for every malformed plist XML document.
	ErrInvalidXML = fmt.Errorf("%w: invalid xml", ErrParse)
)

// PosError is an ErrInvalidXML located in the input.
type PosError struct {
	Pos *token.Pos
	Msg string
}

func (e *PosError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidXML, e.Msg, e.Pos)
}

func (e *PosError) Unwrap() error { return ErrInvalidXML }
