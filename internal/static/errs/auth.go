package errs

import "errors"

var InvalidCredentials = errors.New("invalid credentials")

var (
	InternalError   = errors.New("internal error")
	GeneratingToken = errors.New("error generating token")
	EmailRequired   = errors.New("email is required")
	AccountDisabled = errors.New("account is disabled")
	Forbidden       = errors.New("insufficient permissions")
)
