package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/saturnino-fabrica-de-software/vigia/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// MockInterviewService is a mock implementation of InterviewService
type MockInterviewService struct {
	mock.Mock
}

func (m *MockInterviewService) GetInterview(ctx context.Context, interviewID uuid.UUID) (*domain.InterviewSession, error) {
	args := m.Called(ctx, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewSession), args.Error(1)
}

func (m *MockInterviewService) LogEvent(ctx context.Context, interviewID uuid.UUID, event domain.DetectionEvent) error {
	args := m.Called(ctx, interviewID, event)
	return args.Error(0)
}

func (m *MockInterviewService) RoomForInterview(ctx context.Context, interviewID uuid.UUID) (*domain.RoomSession, error) {
	args := m.Called(ctx, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomSession), args.Error(1)
}

func (m *MockInterviewService) GetReport(ctx context.Context, interviewID uuid.UUID) (*domain.Report, error) {
	args := m.Called(ctx, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

// recordingAlerts captures fan-out calls for assertions.
type recordingAlerts struct {
	roomIDs []string
	events  []domain.DetectionEvent
}

func (r *recordingAlerts) Detection(roomID string, event domain.DetectionEvent) {
	r.roomIDs = append(r.roomIDs, roomID)
	r.events = append(r.events, event)
}

func setupInterviewApp(service *MockInterviewService, alerts AlertPublisher) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(testLogger()),
	})

	h := NewInterviewHandler(service, alerts, testLogger())
	app.Get("/v1/interviews/:id", h.Get)
	app.Post("/v1/interviews/:id/events", h.LogEvent)
	app.Get("/v1/interviews/:id/report", h.Report)

	return app
}

func TestInterviewHandler_Get(t *testing.T) {
	id := uuid.New()
	interview := &domain.InterviewSession{
		ID:            id,
		CandidateName: "Maria Souza",
		StartTime:     time.Now().UTC().Add(-10 * time.Minute),
		Status:        domain.InterviewActive,
		Events: []domain.DetectionEvent{
			{EventType: domain.EventFocusLost, Timestamp: time.Now().UTC(), Confidence: 0.7, Duration: 6},
		},
	}

	service := new(MockInterviewService)
	service.On("GetInterview", mock.Anything, id).Return(interview, nil)
	app := setupInterviewApp(service, nil)

	status, body := doJSON(t, app, "GET", "/v1/interviews/"+id.String(), nil)
	assert.Equal(t, 200, status)

	var got domain.InterviewSession
	assert.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, id, got.ID)
	assert.Len(t, got.Events, 1)
	assert.Equal(t, domain.EventFocusLost, got.Events[0].EventType)
}

func TestInterviewHandler_Get_InvalidID(t *testing.T) {
	service := new(MockInterviewService)
	app := setupInterviewApp(service, nil)

	status, body := doJSON(t, app, "GET", "/v1/interviews/not-a-uuid", nil)
	assert.Equal(t, 422, status)
	assert.Contains(t, string(body), "VALIDATION_FAILED")
	service.AssertExpectations(t)
}

func TestInterviewHandler_LogEvent(t *testing.T) {
	id := uuid.New()
	event := domain.DetectionEvent{
		EventType:  domain.EventPhoneDetected,
		Timestamp:  time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC),
		Confidence: 0.93,
		Metadata:   &domain.EventMetadata{ObjectType: "cell phone"},
	}

	tests := []struct {
		name           string
		target         string
		body           any
		setupMock      func(*MockInterviewService)
		expectedStatus int
	}{
		{
			name:   "event accepted",
			target: "/v1/interviews/" + id.String() + "/events",
			body:   event,
			setupMock: func(m *MockInterviewService) {
				m.On("LogEvent", mock.Anything, id, event).Return(nil)
			},
			expectedStatus: 201,
		},
		{
			name:   "interview already finalized",
			target: "/v1/interviews/" + id.String() + "/events",
			body:   event,
			setupMock: func(m *MockInterviewService) {
				m.On("LogEvent", mock.Anything, id, event).Return(domain.ErrInterviewCompleted)
			},
			expectedStatus: 409,
		},
		{
			name:   "event rejected by validation",
			target: "/v1/interviews/" + id.String() + "/events",
			body:   domain.DetectionEvent{EventType: "SOMETHING_ELSE", Timestamp: event.Timestamp},
			setupMock: func(m *MockInterviewService) {
				m.On("LogEvent", mock.Anything, id, mock.Anything).Return(domain.ErrInvalidEvent)
			},
			expectedStatus: 422,
		},
		{
			name:           "invalid interview id",
			target:         "/v1/interviews/42/events",
			body:           event,
			setupMock:      func(m *MockInterviewService) {},
			expectedStatus: 422,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockInterviewService)
			tt.setupMock(service)
			app := setupInterviewApp(service, nil)

			status, body := doJSON(t, app, "POST", tt.target, tt.body)
			assert.Equal(t, tt.expectedStatus, status)

			if tt.expectedStatus == 201 {
				var resp LogEventResponse
				assert.NoError(t, json.Unmarshal(body, &resp))
				assert.True(t, resp.Logged)
				assert.Equal(t, domain.EventPhoneDetected, resp.EventType)
			}
			service.AssertExpectations(t)
		})
	}
}

func TestInterviewHandler_LogEvent_AlertsInterviewer(t *testing.T) {
	id := uuid.New()
	event := domain.DetectionEvent{
		EventType:  domain.EventMultipleFaces,
		Timestamp:  time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC),
		Confidence: 0.88,
	}

	t.Run("logged event reaches the alert stream", func(t *testing.T) {
		service := new(MockInterviewService)
		service.On("LogEvent", mock.Anything, id, event).Return(nil)
		service.On("RoomForInterview", mock.Anything, id).Return(&domain.RoomSession{
			RoomID: "AB3K",
			Status: domain.RoomActive,
		}, nil)

		alerts := &recordingAlerts{}
		app := setupInterviewApp(service, alerts)

		status, _ := doJSON(t, app, "POST", "/v1/interviews/"+id.String()+"/events", event)
		assert.Equal(t, 201, status)

		assert.Equal(t, []string{"AB3K"}, alerts.roomIDs)
		assert.Len(t, alerts.events, 1)
		assert.Equal(t, domain.EventMultipleFaces, alerts.events[0].EventType)
		service.AssertExpectations(t)
	})

	t.Run("failed room lookup never fails the request", func(t *testing.T) {
		service := new(MockInterviewService)
		service.On("LogEvent", mock.Anything, id, event).Return(nil)
		service.On("RoomForInterview", mock.Anything, id).Return(nil, domain.ErrRoomNotFound)

		alerts := &recordingAlerts{}
		app := setupInterviewApp(service, alerts)

		status, _ := doJSON(t, app, "POST", "/v1/interviews/"+id.String()+"/events", event)
		assert.Equal(t, 201, status)
		assert.Empty(t, alerts.roomIDs)
	})
}

func TestInterviewHandler_Report(t *testing.T) {
	id := uuid.New()
	report := &domain.Report{
		CandidateName:     "Maria Souza",
		InterviewDuration: 42,
		IntegrityScore:    80,
		Recommendation:    domain.RecommendationPass,
		SuspiciousEvents:  domain.SuspiciousEvents{PhoneDetected: 1},
	}

	service := new(MockInterviewService)
	service.On("GetReport", mock.Anything, id).Return(report, nil)
	app := setupInterviewApp(service, nil)

	status, body := doJSON(t, app, "GET", "/v1/interviews/"+id.String()+"/report", nil)
	assert.Equal(t, 200, status)

	var got domain.Report
	assert.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 80, got.IntegrityScore)
	assert.Equal(t, domain.RecommendationPass, got.Recommendation)
	assert.Equal(t, 1, got.SuspiciousEvents.PhoneDetected)
}

func TestInterviewHandler_Report_NotReady(t *testing.T) {
	id := uuid.New()

	service := new(MockInterviewService)
	service.On("GetReport", mock.Anything, id).Return(nil, domain.ErrReportNotReady)
	app := setupInterviewApp(service, nil)

	status, body := doJSON(t, app, "GET", "/v1/interviews/"+id.String()+"/report", nil)
	assert.Equal(t, 409, status)
	assert.Contains(t, string(body), "REPORT_NOT_READY")
}
