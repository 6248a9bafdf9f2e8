package session

import "errors"

var (
	ErrNoBean    = errors.New("no bean")
	ErrNoSession = errors.New("no session")
	ErrNotValid  = errors.New("not valid")
	ErrNoUser    = errors.New("no user")
)
