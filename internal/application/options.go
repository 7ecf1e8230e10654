package application

import (
	"context"
	"time"

	"clubxp/internal/domain"
	"clubxp/internal/ports/output"
	"clubxp/pkg/logger"
	"clubxp/pkg/metrics"
)

const defaultUploadConcurrency = 4

// settings are the collaborators shared by every service.
type settings struct {
	notifier          output.Notifier
	translator        output.Translator
	actors            output.ActorResolver
	objects           output.ObjectStorage
	locale            string
	now               func() time.Time
	log               logger.Logger
	uploadConcurrency int
}

// Option configures a service.
type Option func(*settings)

// WithNotifier sets the sink that receives join, invitation and completion messages.
func WithNotifier(n output.Notifier) Option {
	return func(s *settings) { s.notifier = n }
}

// WithTranslator sets how notification messages are rendered.
func WithTranslator(t output.Translator, locale string) Option {
	return func(s *settings) {
		s.translator = t
		s.locale = locale
	}
}

// WithActorResolver sets the source of the caller id when an input leaves it empty.
func WithActorResolver(r output.ActorResolver) Option {
	return func(s *settings) { s.actors = r }
}

// WithObjectStorage sets where proof photos are uploaded.
func WithObjectStorage(o output.ObjectStorage) Option {
	return func(s *settings) { s.objects = o }
}

// WithUploadConcurrency bounds parallel photo uploads.
func WithUploadConcurrency(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.uploadConcurrency = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

func newSettings(name string, opts []Option) settings {
	s := settings{
		now:               time.Now,
		uploadConcurrency: defaultUploadConcurrency,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = logger.Named(name)
	}
	return s
}

func (s *settings) render(key output.MessageKey, data map[string]any) string {
	if s.translator == nil {
		return string(key)
	}
	return s.translator.T(s.locale, key, data)
}

// notify delivers a message and swallows failures: notifications never
// change the outcome of the operation that triggered them.
func (s *settings) notify(ctx context.Context, eventID string, key output.MessageKey, data map[string]any) {
	if s.notifier == nil {
		return
	}
	msg := s.render(key, data)
	if err := s.notifier.Notify(context.WithoutCancel(ctx), eventID, msg); err != nil {
		metrics.RecordNotificationFailure()
		s.log.Warn(ctx, "notification failed",
			logger.String("event_id", eventID),
			logger.String("key", string(key)),
			logger.Error(err),
		)
	}
}

// actorID returns explicit when set, otherwise the resolved caller.
func (s *settings) actorID(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if s.actors == nil {
		return "", nil
	}
	id, err := s.actors.CurrentActorID(ctx)
	if err != nil {
		return "", domain.Newf(domain.ErrNotAuthorized, "resolve actor: %v", err)
	}
	return id, nil
}
