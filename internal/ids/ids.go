package ids

import (
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// AccountNumber returns a client-generated customer account number. The
// upstream API accepts any unique string; v4 UUIDs keep collisions
// implausible without server coordination.
func AccountNumber() string {
	return uuid.NewString()
}

// RequestID returns a sortable correlation id attached to outgoing gateway
// requests.
func RequestID() string {
	return ksuid.New().String()
}
