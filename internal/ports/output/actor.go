package output

import "context"

// ActorResolver returns the id of the authenticated caller. The id is trusted as-is.
type ActorResolver interface {
	CurrentActorID(ctx context.Context) (string, error)
}
