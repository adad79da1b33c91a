package utils

import (
	"github.com/google/uuid"
)

// GenerateSessionToken returns an opaque token; the token itself carries no
// user information, the binding lives in the sessions table.
func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
