package docs

import "errors"

var (
	ErrUnknownKind  = errors.New("unknown documentation kind")
	ErrKindMismatch = errors.New("entry does not match its kind")
	ErrMissingName  = errors.New("entry has no name")
)
