package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// RoomResponse represents a room session
type RoomResponse struct {
	RoomID          string `json:"roomId" example:"AB3K"`
	CandidateName   string `json:"candidateName" example:"Maria Souza"`
	InterviewerName string `json:"interviewerName" example:"Carlos Lima"`
	Status          string `json:"status" example:"active"`
	StartTime       string `json:"startTime,omitempty" example:"2026-03-12T14:00:00Z"`
	EndTime         string `json:"endTime,omitempty" example:"2026-03-12T14:45:00Z"`
	InterviewID     string `json:"interviewId,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt       string `json:"createdAt" example:"2026-03-12T13:55:00Z"`
	UpdatedAt       string `json:"updatedAt" example:"2026-03-12T14:00:00Z"`
}

// CreateRoomBody request body for room creation
type CreateRoomBody struct {
	CandidateName   string `json:"candidateName" example:"Maria Souza"`
	InterviewerName string `json:"interviewerName" example:"Carlos Lima"`
}

// JoinRoomBody request body for joining a room
type JoinRoomBody struct {
	Name string `json:"name" example:"Carlos Lima"`
	Role string `json:"role" example:"interviewer"`
}

// DetectionEventBody request body for logging a detection event
type DetectionEventBody struct {
	EventType  string                  `json:"eventType" example:"PHONE_DETECTED"`
	Timestamp  string                  `json:"timestamp" example:"2026-03-12T14:30:00Z"`
	Confidence float64                 `json:"confidence" example:"0.93"`
	Duration   int                     `json:"duration,omitempty" example:"12"`
	Metadata   *DetectionEventMetadata `json:"metadata,omitempty"`
}

// DetectionEventMetadata optional detector context for object events
type DetectionEventMetadata struct {
	ObjectType  string           `json:"objectType,omitempty" example:"cell phone"`
	BoundingBox *BoundingBoxData `json:"boundingBox,omitempty"`
}

// BoundingBoxData detected object area in pixel coordinates
type BoundingBoxData struct {
	X      float64 `json:"x" example:"120.5"`
	Y      float64 `json:"y" example:"80.0"`
	Width  float64 `json:"width" example:"64.0"`
	Height float64 `json:"height" example:"128.0"`
}

// LogEventData response for a logged event
type LogEventData struct {
	Logged    bool   `json:"logged" example:"true"`
	EventType string `json:"eventType" example:"PHONE_DETECTED"`
}

// InterviewResponse represents an interview session with its timeline
type InterviewResponse struct {
	InterviewID    string               `json:"interviewId" example:"550e8400-e29b-41d4-a716-446655440000"`
	CandidateName  string               `json:"candidateName" example:"Maria Souza"`
	StartTime      string               `json:"startTime" example:"2026-03-12T14:00:00Z"`
	EndTime        string               `json:"endTime,omitempty" example:"2026-03-12T14:45:00Z"`
	Status         string               `json:"status" example:"completed"`
	Events         []DetectionEventBody `json:"events,omitempty"`
	IntegrityScore int                  `json:"integrityScore,omitempty" example:"80"`
}

// EndInterviewData response for the end endpoint
type EndInterviewData struct {
	Room      RoomResponse       `json:"room"`
	Interview *InterviewResponse `json:"interview,omitempty"`
}

// SuspiciousEventsData aggregated object-detection counts
type SuspiciousEventsData struct {
	PhoneDetected   int `json:"phoneDetected" example:"1"`
	BooksDetected   int `json:"booksDetected" example:"0"`
	DevicesDetected int `json:"devicesDetected" example:"0"`
}

// ReportResponse integrity report for a finalized interview
type ReportResponse struct {
	CandidateName          string               `json:"candidateName" example:"Maria Souza"`
	InterviewDuration      int                  `json:"interviewDuration" example:"45"`
	StartTime              string               `json:"startTime" example:"2026-03-12T14:00:00Z"`
	EndTime                string               `json:"endTime" example:"2026-03-12T14:45:00Z"`
	FocusLostCount         int                  `json:"focusLostCount" example:"2"`
	TotalFocusLostDuration int                  `json:"totalFocusLostDuration" example:"14"`
	FaceAbsentCount        int                  `json:"faceAbsentCount" example:"0"`
	MultipleFacesCount     int                  `json:"multipleFacesCount" example:"0"`
	SuspiciousEvents       SuspiciousEventsData `json:"suspiciousEvents"`
	IntegrityScore         int                  `json:"integrityScore" example:"70"`
	Events                 []DetectionEventBody `json:"events"`
	Summary                string               `json:"summary" example:"2 integrity events recorded in 45 minutes."`
	Recommendation         string               `json:"recommendation" example:"REVIEW"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Vigia Interview Proctoring API",
		Version:     "v1.0.0",
		Description: "Remote interview proctoring API: room pairing, detection event ingestion and integrity reporting",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// Rooms endpoints

		// POST /v1/rooms - Create Room
		endpoint.New(
			endpoint.POST,
			"/rooms",
			endpoint.WithTags("Rooms"),
			endpoint.WithSummary("Create a room"),
			endpoint.WithDescription("Creates a waiting room for a scheduled interview and returns its shareable 4-character room code."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RoomResponse{}, "201", "Room created successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "candidateName is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/rooms/:roomId - Get Room
		endpoint.New(
			endpoint.GET,
			"/rooms/{roomId}",
			endpoint.WithTags("Rooms"),
			endpoint.WithSummary("Get room state"),
			endpoint.WithDescription("Returns the current lifecycle state of a room, including the interview reference once it is active."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("roomId", parameter.Path, parameter.WithDescription("4-character room code")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RoomResponse{}, "200", "Room found"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "ROOM_NOT_FOUND", Message: "Room not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/rooms/:roomId/join - Join Room
		endpoint.New(
			endpoint.POST,
			"/rooms/{roomId}/join",
			endpoint.WithTags("Rooms"),
			endpoint.WithSummary("Join a room"),
			endpoint.WithDescription("Enters a room as candidate or interviewer. The first interviewer join activates the room and opens the interview record; repeated joins are idempotent."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("roomId", parameter.Path, parameter.WithDescription("4-character room code")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RoomResponse{}, "200", "Joined room"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "ROOM_NOT_FOUND", Message: "Room not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "ROOM_ENDED", Message: "Session has already ended"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "INVALID_ROLE", Message: "Role must be candidate or interviewer"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/rooms/:roomId/end - End Interview
		endpoint.New(
			endpoint.POST,
			"/rooms/{roomId}/end",
			endpoint.WithTags("Rooms"),
			endpoint.WithSummary("End the interview"),
			endpoint.WithDescription("Finalizes the interview for a room, computes the integrity score and closes the room. Calling it again returns the same finalized result."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("roomId", parameter.Path, parameter.WithDescription("4-character room code")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EndInterviewData{}, "200", "Interview finalized"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "ROOM_NOT_FOUND", Message: "Room not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// Interviews endpoints

		// GET /v1/interviews/:id - Get Interview
		endpoint.New(
			endpoint.GET,
			"/interviews/{id}",
			endpoint.WithTags("Interviews"),
			endpoint.WithSummary("Get an interview"),
			endpoint.WithDescription("Returns the interview session and its ordered detection event timeline."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Interview UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(InterviewResponse{}, "200", "Interview found"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "interview id must be a valid UUID"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERVIEW_NOT_FOUND", Message: "Interview not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/interviews/:id/events - Log Detection Event
		endpoint.New(
			endpoint.POST,
			"/interviews/{id}/events",
			endpoint.WithTags("Interviews"),
			endpoint.WithSummary("Log a detection event"),
			endpoint.WithDescription("Appends a detection event to an active interview timeline. Events are rejected once the interview has been finalized."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Interview UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(LogEventData{}, "201", "Event logged"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERVIEW_NOT_FOUND", Message: "Interview not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERVIEW_COMPLETED", Message: "Interview has been finalized and cannot be modified"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "INVALID_EVENT", Message: "Detection event failed validation"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/interviews/:id/report - Integrity Report
		endpoint.New(
			endpoint.GET,
			"/interviews/{id}/report",
			endpoint.WithTags("Interviews"),
			endpoint.WithSummary("Get the integrity report"),
			endpoint.WithDescription("Returns the aggregated integrity report for a finalized interview: per-category counts, score and recommendation."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Interview UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ReportResponse{}, "200", "Report generated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERVIEW_NOT_FOUND", Message: "Interview not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "REPORT_NOT_READY", Message: "Report is only available after the interview is finalized"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
