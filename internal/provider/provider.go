package provider

import "context"

// VisionProvider define a interface para backends de percepção visual.
// An implementation inspects a single encoded frame per call; providers keep
// no per-frame state, so calls are safe to run concurrently within a tick.
type VisionProvider interface {
	// Warm performs one-time model or backend acquisition. It must be safe
	// to call more than once; implementations should make repeat calls cheap.
	Warm(ctx context.Context) error

	// DetectFaces returns one observation per face found in the frame.
	// An empty slice means no face (not an error).
	DetectFaces(ctx context.Context, frame []byte) ([]FaceObservation, error)

	// DetectObjects returns the recognized objects in the frame with
	// per-object confidence and bounding box. Providers without object
	// capability return an empty slice.
	DetectObjects(ctx context.Context, frame []byte) ([]DetectedObject, error)
}

// FaceObservation represents a detected face in the frame
type FaceObservation struct {
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"`
	// Centered reports whether the gaze appears directed at the screen.
	// Pose-capable providers derive it from head rotation; degraded
	// providers estimate it from center-region sampling.
	Centered bool  `json:"centered"`
	Pose     *Pose `json:"pose,omitempty"`
}

// Pose represents face orientation angles
type Pose struct {
	Pitch float64 `json:"pitch"` // up/down rotation
	Roll  float64 `json:"roll"`  // tilted rotation
	Yaw   float64 `json:"yaw"`   // left/right rotation
}

// BoundingBox represents the detected area in the frame
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DetectedObject represents a recognized object in the frame
type DetectedObject struct {
	// Name is the raw class name reported by the detector (e.g. "cell phone").
	Name        string      `json:"name"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bounding_box"`
}
