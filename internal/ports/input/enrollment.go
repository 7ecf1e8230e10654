package input

import "context"

// JoinResult is the outcome of a join attempt. Only JoinJoined mutates state.
type JoinResult string

const (
	JoinJoined        JoinResult = "joined"
	JoinAlreadyJoined JoinResult = "already_joined"
	JoinFull          JoinResult = "full"
)

type EnrollmentUseCase interface {
	Join(ctx context.Context, eventID, userID string) (JoinResult, error)
	Leave(ctx context.Context, eventID, userID string) error
}
