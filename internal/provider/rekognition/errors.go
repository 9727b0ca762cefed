package rekognition

import "errors"

var (
	// ErrInvalidCredentials indicates that AWS credentials are invalid or missing
	ErrInvalidCredentials = errors.New("invalid or missing AWS credentials")

	// ErrInvalidFrame indicates that the frame bytes cannot be processed by Rekognition
	ErrInvalidFrame = errors.New("invalid frame for rekognition processing")

	// ErrThrottled indicates that AWS rejected the call due to rate limiting
	ErrThrottled = errors.New("rekognition request throttled")
)
