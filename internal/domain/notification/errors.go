package notification

import "errors"

var (
	ErrRecipientUnknown = errors.New("notification recipient has no delivery address")
	ErrQueueClosed      = errors.New("notification queue is closed")
)
