package application

import (
	"context"
	"strings"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
	"clubxp/internal/ports/input"
	"clubxp/internal/ports/output"
	"clubxp/pkg/logger"
	"clubxp/pkg/metrics"
)

var _ input.EnrollmentUseCase = (*EnrollmentService)(nil)

// EnrollmentService handles users joining and leaving intra-club events.
type EnrollmentService struct {
	store output.Store
	settings
}

func NewEnrollmentService(store output.Store, opts ...Option) *EnrollmentService {
	return &EnrollmentService{store: store, settings: newSettings("enrollment", opts)}
}

// Join enrolls userID unless already enrolled or the event is at capacity.
// The existence check, the count and the insert run in one transaction with
// the event row locked, so concurrent joins never overbook.
func (s *EnrollmentService) Join(ctx context.Context, eventID, userID string) (input.JoinResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domain.Invalid("user id is required")
	}

	var (
		result input.JoinResult
		event  *entities.Event
	)
	err := s.store.WithinTx(ctx, func(tx output.Store) error {
		var err error
		event, err = tx.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if err := checkIntraOpen(event); err != nil {
			return err
		}

		existing, err := tx.GetParticipant(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = input.JoinAlreadyJoined
			return nil
		}

		count, err := tx.CountParticipants(ctx, eventID)
		if err != nil {
			return err
		}
		if count >= event.Capacity {
			result = input.JoinFull
			return nil
		}

		inserted, err := tx.InsertParticipant(ctx, &entities.Participant{
			EventID:  eventID,
			UserID:   userID,
			JoinedAt: s.now().UTC(),
		})
		if err != nil {
			return err
		}
		result = input.JoinJoined
		if !inserted {
			result = input.JoinAlreadyJoined
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	metrics.RecordJoin(string(result))
	s.log.Debug(ctx, "join",
		logger.String("event_id", eventID),
		logger.String("user_id", userID),
		logger.String("result", string(result)),
	)
	if result == input.JoinJoined {
		s.notify(ctx, eventID, output.KeyJoin, map[string]any{
			"UserID": userID,
			"Title":  event.Title,
		})
	}
	return result, nil
}

// Leave removes the enrollment if present. Leaving twice is not an error.
func (s *EnrollmentService) Leave(ctx context.Context, eventID, userID string) error {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := checkIntraOpen(event); err != nil {
		return err
	}
	deleted, err := s.store.DeleteParticipant(ctx, eventID, strings.TrimSpace(userID))
	if err != nil {
		return err
	}
	if deleted {
		metrics.RecordLeave()
	}
	return nil
}

func checkIntraOpen(event *entities.Event) error {
	if event.Type != entities.EventTypeIntra {
		return domain.Newf(domain.ErrWrongEventType, "enrollment is only open on intra events")
	}
	if !event.IsUpcoming() {
		return domain.Newf(domain.ErrEventClosed, "event status is %s", event.Status)
	}
	return nil
}
