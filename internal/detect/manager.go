package detect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/provider"
)

const (
	multipleFacesConfidence = 0.8
	faceAbsentConfidence    = 0.9
	focusLostConfidence     = 0.7
)

// Config controla a cadência e os limiares do pipeline de detecção
type Config struct {
	Interval            time.Duration
	RefractoryWindow    time.Duration
	FaceAbsentThreshold time.Duration
	FocusLostThreshold  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Interval:            2 * time.Second,
		RefractoryWindow:    5 * time.Second,
		FaceAbsentThreshold: 10 * time.Second,
		FocusLostThreshold:  5 * time.Second,
	}
}

// EmitFunc receives each event that survives deduplication. Delivery is
// fire and forget: the detection loop never learns about downstream
// failures and a slow consumer must not block a tick.
type EmitFunc func(event domain.DetectionEvent)

// Manager owns the detection lifecycle for one session: backend acquisition
// with degraded fallback, the periodic analysis loop, per-signal debouncing
// and the refractory window.
type Manager struct {
	config   Config
	primary  provider.VisionProvider
	fallback provider.VisionProvider
	emit     EmitFunc
	logger   *slog.Logger

	mu          sync.Mutex
	vision      provider.VisionProvider
	initialized bool
	initErr     error
	inflight    chan struct{}

	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	faceAbsent *SustainedSignal
	focusLost  *SustainedSignal
	refractory *Refractory
}

// NewManager wires a manager around a primary backend and an optional
// degraded fallback. fallback may be nil when no degraded mode exists.
func NewManager(cfg Config, primary, fallback provider.VisionProvider, emit EmitFunc, logger *slog.Logger) *Manager {
	return &Manager{
		config:     cfg,
		primary:    primary,
		fallback:   fallback,
		emit:       emit,
		logger:     logger,
		faceAbsent: NewSustainedSignal(domain.EventFaceAbsent, cfg.FaceAbsentThreshold, faceAbsentConfidence),
		focusLost:  NewSustainedSignal(domain.EventFocusLost, cfg.FocusLostThreshold, focusLostConfidence),
		refractory: NewRefractory(cfg.RefractoryWindow),
	}
}

// Initialize acquires a vision backend. It is idempotent; concurrent calls
// collapse into a single acquisition and all callers see the same outcome.
// When the primary backend fails the degraded fallback is tried exactly
// once; if that also fails, detection stays disabled for the session.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.initialized {
		err := m.initErr
		m.mu.Unlock()
		return err
	}
	if m.inflight != nil {
		wait := m.inflight
		m.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return ctx.Err()
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.initErr
	}
	done := make(chan struct{})
	m.inflight = done
	m.mu.Unlock()

	vision, err := m.acquire(ctx)

	m.mu.Lock()
	m.vision = vision
	m.initialized = true
	m.initErr = err
	m.inflight = nil
	m.mu.Unlock()
	close(done)

	return err
}

func (m *Manager) acquire(ctx context.Context) (provider.VisionProvider, error) {
	primaryErr := m.primary.Warm(ctx)
	if primaryErr == nil {
		return m.primary, nil
	}

	if m.fallback == nil {
		m.logger.Error("vision backend unavailable, detection disabled", "error", primaryErr)
		return nil, domain.ErrDetectionDisabled.WithError(primaryErr)
	}

	m.logger.Warn("vision backend unavailable, switching to degraded fallback", "error", primaryErr)

	if fallbackErr := m.fallback.Warm(ctx); fallbackErr != nil {
		m.logger.Error("degraded fallback unavailable, detection disabled", "error", fallbackErr)
		return nil, domain.ErrDetectionDisabled.WithError(errors.Join(primaryErr, fallbackErr))
	}

	m.logger.Info("degraded vision fallback active")
	return m.fallback, nil
}

// Start launches the analysis loop against the given frame source. Calling
// Start on a running manager is a no-op.
func (m *Manager) Start(src FrameSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}
	if !m.initialized {
		return fmt.Errorf("detection manager not initialized")
	}
	if m.initErr != nil {
		return m.initErr
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.running = true

	go m.run(ctx, src)
	return nil
}

// Stop halts the loop, waits for the in-flight tick to finish and clears
// the debounce and refractory state. Calling Stop on a stopped manager is a
// no-op.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	done := m.done
	m.running = false
	m.mu.Unlock()

	cancel()
	<-done

	m.faceAbsent.Reset()
	m.focusLost.Reset()
	m.refractory.Reset()

	m.logger.Info("detection loop stopped")
}

// Running reports whether the analysis loop is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// run is the only goroutine that touches the debouncers, so ticks are
// naturally serialized: a tick that outlasts the interval delays the next
// one instead of overlapping with it.
func (m *Manager) run(ctx context.Context, src FrameSource) {
	defer close(m.done)

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	m.logger.Info("detection loop started", "interval", m.config.Interval)

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.tick(ctx, src, now)
		}
	}
}

// tick analyzes one frame. Transient failures are logged and swallowed; the
// loop keeps the cadence regardless.
func (m *Manager) tick(ctx context.Context, src FrameSource, now time.Time) {
	frame, err := src.Frame(ctx)
	if err != nil {
		m.logger.Debug("frame unavailable", "error", err)
		return
	}

	// as duas análises são independentes; roda em paralelo dentro do tick
	var (
		wg      sync.WaitGroup
		faces   []provider.FaceObservation
		faceErr error
		objects []provider.DetectedObject
		objErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		faces, faceErr = m.vision.DetectFaces(ctx, frame.Data)
	}()
	go func() {
		defer wg.Done()
		objects, objErr = m.vision.DetectObjects(ctx, frame.Data)
	}()
	wg.Wait()

	var candidates []domain.DetectionEvent

	if faceErr != nil {
		m.logger.Warn("face analysis failed", "error", faceErr)
	} else {
		candidates = append(candidates, m.faceEvents(faces, now)...)
	}

	if objErr != nil {
		m.logger.Warn("object analysis failed", "error", objErr)
	} else {
		candidates = append(candidates, objectEvents(objects, now)...)
	}

	for _, event := range candidates {
		if !m.refractory.Accept(event.DedupKey(), now) {
			continue
		}
		if m.emit != nil {
			m.emit(event)
		}
	}
}

func (m *Manager) faceEvents(faces []provider.FaceObservation, now time.Time) []domain.DetectionEvent {
	var events []domain.DetectionEvent

	if event := m.faceAbsent.Observe(len(faces) == 0, now); event != nil {
		events = append(events, *event)
	}

	if len(faces) > 1 {
		events = append(events, domain.DetectionEvent{
			EventType:  domain.EventMultipleFaces,
			Timestamp:  now,
			Confidence: multipleFacesConfidence,
			Metadata: &domain.EventMetadata{
				ObjectType: fmt.Sprintf("%d faces detected", len(faces)),
			},
		})
	}

	// gaze only means something with exactly one face in frame; zero or
	// several faces clear the focus timer
	offScreen := len(faces) == 1 && !faces[0].Centered
	if event := m.focusLost.Observe(offScreen, now); event != nil {
		events = append(events, *event)
	}

	return events
}
