package auth

import "errors"

// ErrInvalidCredentials indicates an unknown email or a wrong password. The two
// cases are deliberately indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")
