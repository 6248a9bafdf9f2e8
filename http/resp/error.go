package resp

import (
	"errors"

	"github.com/xy-planning-network/dispatch"
)

var (
	ErrBadConfig   = dispatch.ErrBadConfig
	ErrMissingData = dispatch.ErrMissingData
	ErrNotFound    = errors.New("not found")
	ErrNotValid    = dispatch.ErrNotValid
)
