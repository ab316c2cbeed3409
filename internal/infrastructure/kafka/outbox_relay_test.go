package kafka

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algolend/loan-engine/pkg/events"
	pkgkafka "github.com/algolend/loan-engine/pkg/kafka"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeOutbox struct {
	entries  []events.OutboxEntry
	fetchErr error
}

func (f *fakeOutbox) Store(_ context.Context, entries []events.OutboxEntry) error {
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeOutbox) FetchUnpublished(_ context.Context, batchSize int) ([]events.OutboxEntry, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []events.OutboxEntry
	for _, entry := range f.entries {
		if entry.PublishedAt == nil && len(out) < batchSize {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, ids []string) error {
	now := time.Now()
	for _, id := range ids {
		for i := range f.entries {
			if f.entries[i].ID == id {
				f.entries[i].PublishedAt = &now
			}
		}
	}
	return nil
}

func (f *fakeOutbox) unpublishedCount() int {
	n := 0
	for _, entry := range f.entries {
		if entry.PublishedAt == nil {
			n++
		}
	}
	return n
}

type fakeSender struct {
	topics   []string
	messages []pkgkafka.Message
	err      error
}

func (f *fakeSender) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.topics = append(f.topics, topic)
	f.messages = append(f.messages, messages...)
	return nil
}

func pendingEntry(eventType, aggregateID string) events.OutboxEntry {
	return events.NewOutboxEntry(events.NewBaseEvent(eventType, aggregateID, "ScoreRun", "tenant-1"))
}

func TestOutboxRelayFlushPublishesAndMarks(t *testing.T) {
	outbox := &fakeOutbox{entries: []events.OutboxEntry{
		pendingEntry("loanengine.score_run.completed", "run-1"),
		pendingEntry("loanengine.score_run.completed", "run-2"),
	}}
	sender := &fakeSender{}
	relay := NewOutboxRelay(outbox, sender, "", testLogger())

	require.NoError(t, relay.Flush(context.Background()))

	require.Len(t, sender.messages, 2)
	assert.Equal(t, []string{DefaultTopic}, sender.topics)
	assert.Equal(t, []byte("run-1"), sender.messages[0].Key)
	assert.Equal(t, "loanengine.score_run.completed", sender.messages[0].Headers["event_type"])
	assert.Equal(t, outbox.entries[0].ID, sender.messages[0].Headers["event_id"])
	assert.Equal(t, 0, outbox.unpublishedCount())

	// a second flush has nothing left to send
	require.NoError(t, relay.Flush(context.Background()))
	assert.Len(t, sender.messages, 2)
}

func TestOutboxRelayFlushKeepsEntriesOnPublishFailure(t *testing.T) {
	outbox := &fakeOutbox{entries: []events.OutboxEntry{
		pendingEntry("loanengine.loan_application.submitted", "app-1"),
	}}
	sender := &fakeSender{err: fmt.Errorf("broker unavailable")}
	relay := NewOutboxRelay(outbox, sender, "", testLogger())

	err := relay.Flush(context.Background())
	require.ErrorContains(t, err, "publish outbox batch")
	assert.Equal(t, 1, outbox.unpublishedCount())
}

func TestOutboxRelayFlushEmptyOutbox(t *testing.T) {
	relay := NewOutboxRelay(&fakeOutbox{}, &fakeSender{}, "", testLogger())

	require.NoError(t, relay.Flush(context.Background()))
}

func TestOutboxRelayFlushFetchFailure(t *testing.T) {
	outbox := &fakeOutbox{fetchErr: fmt.Errorf("connection reset")}
	relay := NewOutboxRelay(outbox, &fakeSender{}, "", testLogger())

	err := relay.Flush(context.Background())
	require.ErrorContains(t, err, "fetch unpublished")
}
