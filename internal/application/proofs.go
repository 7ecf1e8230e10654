package application

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"clubxp/internal/domain/entities"
	"clubxp/internal/ports/input"
	"clubxp/internal/ports/output"
	"clubxp/pkg/logger"
	"clubxp/pkg/metrics"
)

var errNoObjectStorage = errors.New("object storage is not configured")

// uploadProofs uploads photos concurrently. A failed photo is logged and
// reported, never fatal. URIs keep the order of the input photos.
func (s *EventService) uploadProofs(ctx context.Context, event *entities.Event, photos []output.Object) ([]string, []input.UploadFailure) {
	if len(photos) == 0 {
		return nil, nil
	}

	uris := make([]string, len(photos))
	errs := make([]error, len(photos))

	var g errgroup.Group
	g.SetLimit(s.uploadConcurrency)
	for i, photo := range photos {
		i, photo := i, photo
		g.Go(func() error {
			if s.objects == nil {
				errs[i] = errNoObjectStorage
				return nil
			}
			if len(photo.Body) == 0 {
				errs[i] = errors.New("empty photo")
				return nil
			}
			uri, err := s.objects.Upload(ctx, photo)
			if err != nil {
				errs[i] = fmt.Errorf("upload photo %d: %w", i, err)
				return nil
			}
			uris[i] = uri
			return nil
		})
	}
	_ = g.Wait()

	var (
		ok       = make([]string, 0, len(photos))
		failures []input.UploadFailure
	)
	for i, err := range errs {
		if err == nil {
			ok = append(ok, uris[i])
			continue
		}
		metrics.RecordUploadFailure()
		s.log.Warn(ctx, "proof upload failed, skipping",
			logger.String("event_id", event.ID),
			logger.Int("index", i),
			logger.String("name", photos[i].Name),
			logger.String("content_type", photos[i].ContentType),
			logger.Error(err),
		)
		failures = append(failures, input.UploadFailure{Index: i, Name: photos[i].Name, Err: err})
	}
	return ok, failures
}
