package role

import "errors"

type Role string

const (
	Admin    Role = "admin"
	Verifier Role = "verifier"
	User     Role = "user"
)

var ErrUnknown = errors.New("unknown role")

func (r Role) Valid() bool {
	switch r {
	case Admin, Verifier, User:
		return true
	}
	return false
}

// Parse accepts the wire form used in tokens and route guards.
func Parse(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrUnknown
	}
	return r, nil
}
