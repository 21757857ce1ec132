package validators

import (
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid auth token")

// ParseBearer extracts the token from an Authorization header value.
func ParseBearer(header string) (string, error) {
	token := strings.TrimSpace(header)
	if len(token) < 7 || !strings.EqualFold(token[:7], "bearer ") {
		return "", ErrInvalidToken
	}
	token = strings.TrimSpace(token[7:])
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}
