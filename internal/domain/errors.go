package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches by code, so errors.Is(err, ErrRoomEnded) holds for the copies
// WithError hands out, not just the sentinel itself.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrRoomNotFound = &AppError{
		Code:       "ROOM_NOT_FOUND",
		Message:    "Room not found",
		StatusCode: 404,
	}

	ErrRoomExists = &AppError{
		Code:       "ROOM_ALREADY_EXISTS",
		Message:    "A room with this id already exists",
		StatusCode: 409,
	}

	ErrRoomEnded = &AppError{
		Code:       "ROOM_ENDED",
		Message:    "Session has already ended",
		StatusCode: 400,
	}

	ErrInterviewNotFound = &AppError{
		Code:       "INTERVIEW_NOT_FOUND",
		Message:    "Interview not found",
		StatusCode: 404,
	}

	ErrInterviewCompleted = &AppError{
		Code:       "INTERVIEW_COMPLETED",
		Message:    "Interview has been finalized and cannot be modified",
		StatusCode: 409,
	}

	ErrInvalidEvent = &AppError{
		Code:       "INVALID_EVENT",
		Message:    "Detection event failed validation",
		StatusCode: 422,
	}

	ErrInvalidRole = &AppError{
		Code:       "INVALID_ROLE",
		Message:    "Role must be candidate or interviewer",
		StatusCode: 422,
	}

	ErrReportNotReady = &AppError{
		Code:       "REPORT_NOT_READY",
		Message:    "Report is only available after the interview is finalized",
		StatusCode: 409,
	}

	ErrNoFrame = &AppError{
		Code:       "NO_FRAME",
		Message:    "Frame source produced no frame",
		StatusCode: 422,
	}

	ErrInvalidFrame = &AppError{
		Code:       "INVALID_FRAME",
		Message:    "Invalid or undecodable frame data",
		StatusCode: 422,
	}

	ErrDetectionDisabled = &AppError{
		Code:       "DETECTION_DISABLED",
		Message:    "Detection is disabled for this session after backend failure",
		StatusCode: 503,
	}
)
