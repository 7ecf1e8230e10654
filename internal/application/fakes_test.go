package application_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
	"clubxp/internal/ports/output"
	"clubxp/pkg/logger"
)

func init() {
	if err := logger.InitWriter(io.Discard); err != nil {
		panic(err)
	}
}

var base = time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

type notifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *notifier) Notify(_ context.Context, eventID, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, eventID+"|"+message)
	return nil
}

func (n *notifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// translator renders "key:Title" so tests can tell messages apart.
type translator struct{}

func (translator) T(_ string, key output.MessageKey, data map[string]any) string {
	return fmt.Sprintf("%s:%v", key, data["Title"])
}

type actor string

func (a actor) CurrentActorID(context.Context) (string, error) {
	if a == "" {
		return "", errors.New("no session")
	}
	return string(a), nil
}

// storage fails every object whose name is listed in fail.
type storage struct {
	fail map[string]bool
}

func (s *storage) Upload(_ context.Context, obj output.Object) (string, error) {
	if s.fail[obj.Name] {
		return "", errors.New("bucket unavailable")
	}
	return "mem://proofs/" + obj.Name, nil
}

// brokenStore fails when a completion is written.
type brokenStore struct {
	output.Store
}

func (b *brokenStore) WithinTx(ctx context.Context, fn func(tx output.Store) error) error {
	return b.Store.WithinTx(ctx, func(tx output.Store) error {
		return fn(&brokenStore{Store: tx})
	})
}

func (b *brokenStore) SaveCompletion(context.Context, string, entities.Completion) error {
	return domain.Persistence(errors.New("connection reset"))
}
