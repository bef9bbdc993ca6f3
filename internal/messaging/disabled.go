package messaging

import (
	"context"
	"errors"
)

// Disabled stands in when no gateway credentials are configured. Every
// send fails with a clear error instead of a nil dereference.
type Disabled struct{}

func (Disabled) Send(ctx context.Context, to, body string) (string, error) {
	return "", errors.New("messaging gateway is not configured")
}
