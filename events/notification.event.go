package events

import (
	"nimbusBackend/types"
	"time"
)

// NotificationEventData A user-facing notification about a command outcome or an
// instance state change. Dispatched by the instance service and consumed by the
// status message service. An empty receiver list means broadcast.
type NotificationEventData struct {
	Source    string
	Content   string
	Timestamp time.Time
	Severity  types.Severity
	Receivers []string
}
