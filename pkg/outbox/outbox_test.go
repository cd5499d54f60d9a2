package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"portfolio/pkg/trace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memStore struct {
	events map[int64]*Event
	failed []int64
	sent   []int64
}

func newMemStore(events ...*Event) *memStore {
	s := &memStore{events: map[int64]*Event{}}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *memStore) byStatus(status string) []*Event {
	var out []*Event
	for id := int64(1); id <= int64(len(s.events)); id++ {
		if e, ok := s.events[id]; ok && e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

func (s *memStore) GetPendingEvents(_ context.Context, limit int) ([]*Event, error) {
	out := s.byStatus(StatusPending)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) GetFailedEvents(_ context.Context, _ int) ([]*Event, error) {
	return s.byStatus(StatusFailed), nil
}

func (s *memStore) GetEventByID(_ context.Context, id int64) (*Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}
	return e, nil
}

func (s *memStore) MarkAsSent(_ context.Context, id int64) error {
	s.events[id].Status = StatusSent
	s.sent = append(s.sent, id)
	return nil
}

func (s *memStore) MarkAsFailed(_ context.Context, id int64, maxRetries int) error {
	e := s.events[id]
	e.RetryCount++
	if e.RetryCount >= maxRetries {
		e.Status = StatusFailed
	}
	s.failed = append(s.failed, id)
	return nil
}

type published struct {
	key     string
	body    string
	traceID string
}

type fakePublisher struct {
	out  []published
	fail map[string]bool
}

func (p *fakePublisher) Publish(ctx context.Context, key string, payload any) error {
	if p.fail[key] {
		return errors.New("channel closed")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	p.out = append(p.out, published{key: key, body: string(b), traceID: trace.FromContext(ctx)})
	return nil
}

func event(id int64, key, status string) *Event {
	return &Event{
		ID:         id,
		RoutingKey: key,
		Payload:    json.RawMessage(`{"kinds":["projects"]}`),
		TraceID:    fmt.Sprintf("trace-%d", id),
		Status:     status,
	}
}

func TestDispatcher_PublishesPendingAndMarksSent(t *testing.T) {
	store := newMemStore(
		event(1, "content.updated", StatusPending),
		event(2, "content.updated", StatusSent),
		event(3, "content.updated", StatusPending),
	)
	pub := &fakePublisher{}
	d := NewDispatcher(store, pub, zap.NewNop())

	sent := d.processPendingEvents(context.Background())

	assert.Equal(t, 2, sent)
	assert.Equal(t, []int64{1, 3}, store.sent)
	require.Len(t, pub.out, 2)
	assert.JSONEq(t, `{"kinds":["projects"]}`, pub.out[0].body)
	assert.Equal(t, "trace-1", pub.out[0].traceID)
	assert.Equal(t, "trace-3", pub.out[1].traceID)

	// nothing left
	assert.Equal(t, 0, d.processPendingEvents(context.Background()))
}

func TestDispatcher_FailureCountsTowardsMaxRetries(t *testing.T) {
	store := newMemStore(event(1, "content.updated", StatusPending))
	pub := &fakePublisher{fail: map[string]bool{"content.updated": true}}
	d := NewDispatcher(store, pub, zap.NewNop()).WithMaxRetries(2)

	assert.Equal(t, 0, d.processPendingEvents(context.Background()))
	assert.Equal(t, StatusPending, store.events[1].Status)

	assert.Equal(t, 0, d.processPendingEvents(context.Background()))
	assert.Equal(t, StatusFailed, store.events[1].Status)
	assert.Equal(t, []int64{1, 1}, store.failed)
	assert.Empty(t, store.sent)
}

func TestDispatcher_BatchSize(t *testing.T) {
	store := newMemStore(
		event(1, "a", StatusPending),
		event(2, "b", StatusPending),
		event(3, "c", StatusPending),
	)
	d := NewDispatcher(store, &fakePublisher{}, zap.NewNop()).WithBatchSize(2)
	assert.Equal(t, 2, d.processPendingEvents(context.Background()))
	assert.Equal(t, 1, d.processPendingEvents(context.Background()))
}

func TestDispatcher_StartStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewDispatcher(newMemStore(), &fakePublisher{}, zap.NewNop())
	assert.NoError(t, d.Start(ctx))
}

func TestReplayService_ReplayEvent(t *testing.T) {
	store := newMemStore(event(1, "content.updated", StatusFailed))
	pub := &fakePublisher{}
	svc := NewReplayService(store, pub)

	require.NoError(t, svc.ReplayEvent(context.Background(), 1))
	assert.Equal(t, StatusSent, store.events[1].Status)
	require.Len(t, pub.out, 1)

	err := svc.ReplayEvent(context.Background(), 42)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestReplayService_ReplayFailedEvents(t *testing.T) {
	store := newMemStore(
		event(1, "ok", StatusFailed),
		event(2, "broken", StatusFailed),
		event(3, "ok", StatusSent),
	)
	pub := &fakePublisher{fail: map[string]bool{"broken": true}}
	svc := NewReplayService(store, pub)

	n, err := svc.ReplayFailedEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, StatusSent, store.events[1].Status)
	assert.Equal(t, StatusFailed, store.events[2].Status)
}
