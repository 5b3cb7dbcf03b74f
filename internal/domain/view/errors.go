package view

import "errors"

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownRegion  = errors.New("unknown region")
	ErrNotConfirmed   = errors.New("action requires confirmation")
)
