package output

import "context"

// Notifier delivers best-effort messages about an event. Callers log and
// ignore the returned error.
type Notifier interface {
	Notify(ctx context.Context, eventID, message string) error
}
