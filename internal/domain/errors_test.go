package domain

import (
	"errors"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "error without wrapped error",
			appErr:   ErrRoomNotFound,
			expected: "Room not found",
		},
		{
			name: "error with wrapped error",
			appErr: &AppError{
				Code:       "TEST_ERROR",
				Message:    "Test message",
				StatusCode: 500,
				Err:        errors.New("underlying error"),
			},
			expected: "Test message: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	appErr := &AppError{
		Code:       "TEST",
		Message:    "test",
		StatusCode: 500,
		Err:        underlying,
	}

	if got := appErr.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}

	appErrNoWrap := ErrRoomNotFound
	if got := appErrNoWrap.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestAppError_WithError(t *testing.T) {
	underlying := errors.New("db connection failed")
	newErr := ErrInternal.WithError(underlying)

	if newErr.Code != ErrInternal.Code {
		t.Errorf("Code = %v, want %v", newErr.Code, ErrInternal.Code)
	}

	if newErr.StatusCode != ErrInternal.StatusCode {
		t.Errorf("StatusCode = %v, want %v", newErr.StatusCode, ErrInternal.StatusCode)
	}

	if newErr.Err != underlying {
		t.Errorf("Err = %v, want %v", newErr.Err, underlying)
	}

	// Check errors.Is still works
	if !errors.Is(newErr, underlying) {
		t.Errorf("errors.Is should return true for wrapped error")
	}
}

func TestAppError_Is(t *testing.T) {
	wrapped := ErrValidationFailed.WithError(errors.New("candidateName is required"))

	if !errors.Is(wrapped, ErrValidationFailed) {
		t.Errorf("errors.Is should match the sentinel through WithError copies")
	}

	if errors.Is(wrapped, ErrRoomNotFound) {
		t.Errorf("errors.Is must not match a sentinel with a different code")
	}

	if !errors.Is(ErrInterviewCompleted, ErrInterviewCompleted) {
		t.Errorf("errors.Is should match a sentinel against itself")
	}
}

func TestErrorsAs(t *testing.T) {
	err := ErrInterviewNotFound.WithError(errors.New("not in db"))

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Errorf("errors.As should match AppError")
	}

	if appErr.Code != "INTERVIEW_NOT_FOUND" {
		t.Errorf("Code = %v, want INTERVIEW_NOT_FOUND", appErr.Code)
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err        *AppError
		code       string
		statusCode int
	}{
		{ErrInternal, "INTERNAL_ERROR", 500},
		{ErrBadRequest, "BAD_REQUEST", 400},
		{ErrNotFound, "NOT_FOUND", 404},
		{ErrValidationFailed, "VALIDATION_FAILED", 422},
		{ErrRoomNotFound, "ROOM_NOT_FOUND", 404},
		{ErrRoomExists, "ROOM_ALREADY_EXISTS", 409},
		{ErrRoomEnded, "ROOM_ENDED", 400},
		{ErrInterviewNotFound, "INTERVIEW_NOT_FOUND", 404},
		{ErrInterviewCompleted, "INTERVIEW_COMPLETED", 409},
		{ErrInvalidEvent, "INVALID_EVENT", 422},
		{ErrInvalidRole, "INVALID_ROLE", 422},
		{ErrDetectionDisabled, "DETECTION_DISABLED", 503},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %v, want %v", tt.err.StatusCode, tt.statusCode)
			}
		})
	}
}
