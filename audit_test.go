package sessiongate

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	internalaudit "github.com/davermont/sessiongate/internal/audit"
)

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		EventType: EventSessionIssued,
		UserID:    "user-1",
		Success:   true,
	})
	sink.Emit(context.Background(), AuditEvent{
		EventType: EventSessionRejected,
		Reason:    "expired",
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"event_type":"session.issued"`) {
		t.Fatalf("first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"reason":"expired"`) {
		t.Fatalf("second line: %s", lines[1])
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	sink := blockingSink{release: block}

	d := internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: true,
	}, sink)

	// first event occupies the worker, second fills the buffer, the rest drop
	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: EventSessionIssued})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events under backpressure")
	}

	close(block)
	d.Close()
}

type blockingSink struct {
	release chan struct{}
}

func (s blockingSink) Emit(_ context.Context, _ AuditEvent) {
	<-s.release
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := NewChannelSink(16)
	d := internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    true,
		BufferSize: 16,
		DropIfFull: false,
	}, sink)

	for i := 0; i < 3; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: EventSessionDeleted})
	}
	d.Close()

	received := 0
	for {
		select {
		case <-sink.Events():
			received++
			if received == 3 {
				return
			}
		case <-time.After(time.Second):
			t.Fatalf("received %d of 3 events before timeout", received)
		}
	}
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	d := internalaudit.NewDispatcher(internalaudit.Config{Enabled: false}, nil)
	if d != nil {
		t.Fatal("disabled dispatcher must be nil")
	}

	// nil dispatcher methods must be safe
	d.Emit(context.Background(), AuditEvent{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}
