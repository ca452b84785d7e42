package services

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
)

// resolveEmail picks the email a "my ..." listing runs against. An empty
// request means the caller's own email; anyone else's is refused.
func resolveEmail(requester, requested string) (string, error) {
	if requested == "" {
		return requester, nil
	}
	if requested != requester {
		return "", ErrForbidden
	}
	return requested, nil
}
