package rekognition

// Config holds configuration for the AWS Rekognition vision provider
type Config struct {
	// Region is the AWS region where Rekognition will be used (e.g., "us-east-1")
	Region string

	// MinObjectConfidence is the minimum label confidence (percent) requested
	// from DetectLabels. Detections below it are never returned.
	MinObjectConfidence float32

	// MaxYawDegrees and MaxPitchDegrees bound the head rotation considered
	// "facing the screen". A face rotated beyond either bound is reported as
	// off-center.
	MaxYawDegrees   float64
	MaxPitchDegrees float64
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Region:              "us-east-1",
		MinObjectConfidence: 55,
		MaxYawDegrees:       30,
		MaxPitchDegrees:     25,
	}
}
