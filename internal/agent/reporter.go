package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

const (
	queueSize   = 64
	maxAttempts = 3
	retryDelay  = time.Second
)

// ErrInterviewClosed signals that the API rejected the event because the
// interview has been finalized. There is no point in retrying.
var ErrInterviewClosed = errors.New("interview has been finalized")

// Reporter delivers detection events from the capture agent to the ingest
// API. Events are queued and sent by Run; Emit never blocks the detection
// loop and drops events when the queue is full.
type Reporter struct {
	client      *http.Client
	baseURL     string
	interviewID uuid.UUID
	logger      *slog.Logger
	queue       chan domain.DetectionEvent
}

func NewReporter(baseURL string, interviewID uuid.UUID, logger *slog.Logger) *Reporter {
	return &Reporter{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		interviewID: interviewID,
		logger:      logger,
		queue:       make(chan domain.DetectionEvent, queueSize),
	}
}

// Emit enqueues an event for delivery. Safe to use as the detection
// manager's emit callback.
func (r *Reporter) Emit(event domain.DetectionEvent) {
	select {
	case r.queue <- event:
	default:
		r.logger.Warn("event queue full, dropping event",
			"event_type", event.EventType,
		)
	}
}

// Run delivers queued events until ctx is canceled, retrying transient
// failures. A finalized interview stops delivery for good.
func (r *Reporter) Run(ctx context.Context) {
	r.logger.Info("event reporter started",
		"interview_id", r.interviewID,
		"api", r.baseURL,
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("event reporter stopped")
			return
		case event := <-r.queue:
			if err := r.deliver(ctx, event); err != nil {
				if errors.Is(err, ErrInterviewClosed) {
					r.logger.Info("interview finalized, reporter stopping")
					return
				}
				r.logger.Error("failed to deliver event",
					"event_type", event.EventType,
					"error", err,
				)
			}
		}
	}
}

func (r *Reporter) deliver(ctx context.Context, event domain.DetectionEvent) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = r.post(ctx, event)
		if lastErr == nil || errors.Is(lastErr, ErrInterviewClosed) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func (r *Reporter) post(ctx context.Context, event domain.DetectionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/v1/interviews/%s/events", r.baseURL, r.interviewID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Vigia-Agent/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("send event: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusCreated:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return ErrInterviewClosed
	default:
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
}
