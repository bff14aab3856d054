package auth

import "errors"

var (
	ErrUnknownRole = errors.New("auth: account has no known role")
	ErrSession     = errors.New("auth: session could not be saved")
)
