package agent

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() domain.DetectionEvent {
	return domain.DetectionEvent{
		EventType:  domain.EventPhoneDetected,
		Timestamp:  time.Now().UTC(),
		Confidence: 0.93,
		Metadata:   &domain.EventMetadata{ObjectType: "cell phone"},
	}
}

func TestReporter_DeliversEvents(t *testing.T) {
	interviewID := uuid.New()

	var mu sync.Mutex
	var received []domain.DetectionEvent

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/interviews/"+interviewID.String()+"/events", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var event domain.DetectionEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))

		mu.Lock()
		received = append(received, event)
		mu.Unlock()

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	reporter := NewReporter(server.URL, interviewID, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		reporter.Run(ctx)
		close(done)
	}()

	reporter.Emit(sampleEvent())

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, domain.EventPhoneDetected, received[0].EventType)
	mu.Unlock()

	cancel()
	<-done
}

func TestReporter_RetriesTransientFailures(t *testing.T) {
	interviewID := uuid.New()

	var mu sync.Mutex
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	reporter := NewReporter(server.URL, interviewID, testLogger())

	err := reporter.deliver(context.Background(), sampleEvent())
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, 2, calls)
	mu.Unlock()
}

func TestReporter_StopsOnFinalizedInterview(t *testing.T) {
	interviewID := uuid.New()

	var mu sync.Mutex
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	reporter := NewReporter(server.URL, interviewID, testLogger())

	err := reporter.deliver(context.Background(), sampleEvent())
	require.ErrorIs(t, err, ErrInterviewClosed)

	// 409 is terminal, no retries
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()

	// Run exits on its own after a finalized interview
	done := make(chan struct{})
	go func() {
		reporter.Run(context.Background())
		close(done)
	}()
	reporter.Emit(sampleEvent())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run should stop once the interview is finalized")
	}
}

func TestReporter_EmitDropsWhenQueueFull(t *testing.T) {
	reporter := NewReporter("http://localhost:0", uuid.New(), testLogger())

	// Nobody draining the queue: overfill it and make sure Emit never blocks
	for i := 0; i < queueSize+10; i++ {
		reporter.Emit(sampleEvent())
	}

	assert.Len(t, reporter.queue, queueSize)
}
