package output

import "context"

// Store is the transactional backing store for events and their rows.
type Store interface {
	EventRepository
	ParticipantRepository
	ClubParticipationRepository

	// WithinTx runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Nested calls join the outer transaction.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
