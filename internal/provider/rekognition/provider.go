package rekognition

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/saturnino-fabrica-de-software/vigia/internal/provider"
)

const (
	// maxFrameSize is the maximum image size supported by AWS Rekognition (5MB)
	maxFrameSize = 5 * 1024 * 1024
	// minFrameSize is the minimum frame size for valid processing
	minFrameSize = 100
)

// Provider implements provider.VisionProvider using AWS Rekognition:
// DetectFaces supplies the face-count and gaze signals, DetectLabels the
// object signal.
type Provider struct {
	client *Client
	config Config
}

// Ensure Provider implements provider.VisionProvider at compile time
var _ provider.VisionProvider = (*Provider)(nil)

// NewProvider creates a new Rekognition vision provider
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create rekognition client: %w", err)
	}

	return &Provider{client: client, config: cfg}, nil
}

// NewProviderWithAPI creates a provider backed by a caller-supplied API.
// Used by tests and by callers that manage their own AWS client.
func NewProviderWithAPI(api API, cfg Config) *Provider {
	return &Provider{
		client: &Client{api: api, config: cfg},
		config: cfg,
	}
}

// Warm resolves the AWS credential chain. Rekognition models are hosted, so
// there is nothing to download; a credential failure here is the earliest
// possible signal that detection cannot run.
func (p *Provider) Warm(ctx context.Context) error {
	return p.client.CheckCredentials(ctx)
}

// validateFrame checks if frame data is valid for Rekognition processing
func validateFrame(frame []byte) error {
	if len(frame) < minFrameSize {
		return fmt.Errorf("%w: frame too small (%d bytes, minimum %d)", ErrInvalidFrame, len(frame), minFrameSize)
	}
	if len(frame) > maxFrameSize {
		return fmt.Errorf("%w: frame too large (%d bytes, maximum %d)", ErrInvalidFrame, len(frame), maxFrameSize)
	}
	return nil
}

// DetectFaces detects faces using the Rekognition DetectFaces API.
// Returns an empty slice if no faces are found (not an error).
func (p *Provider) DetectFaces(ctx context.Context, frame []byte) ([]provider.FaceObservation, error) {
	if err := validateFrame(frame); err != nil {
		return nil, err
	}

	input := &rekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: frame,
		},
		Attributes: []types.Attribute{types.AttributeAll},
	}

	output, err := p.client.api.DetectFaces(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", classifyAWSError(err))
	}

	faces := make([]provider.FaceObservation, 0, len(output.FaceDetails))
	for _, detail := range output.FaceDetails {
		obs := provider.FaceObservation{
			Confidence: float64(aws.ToFloat32(detail.Confidence)) / 100,
			Centered:   true,
		}
		if detail.BoundingBox != nil {
			obs.BoundingBox = provider.BoundingBox{
				X:      float64(aws.ToFloat32(detail.BoundingBox.Left)),
				Y:      float64(aws.ToFloat32(detail.BoundingBox.Top)),
				Width:  float64(aws.ToFloat32(detail.BoundingBox.Width)),
				Height: float64(aws.ToFloat32(detail.BoundingBox.Height)),
			}
		}
		if detail.Pose != nil {
			pose := provider.Pose{
				Pitch: float64(aws.ToFloat32(detail.Pose.Pitch)),
				Roll:  float64(aws.ToFloat32(detail.Pose.Roll)),
				Yaw:   float64(aws.ToFloat32(detail.Pose.Yaw)),
			}
			obs.Pose = &pose
			obs.Centered = p.facingScreen(pose)
		}
		faces = append(faces, obs)
	}

	return faces, nil
}

// facingScreen decides whether a head pose counts as looking at the screen.
func (p *Provider) facingScreen(pose provider.Pose) bool {
	return math.Abs(pose.Yaw) <= p.config.MaxYawDegrees &&
		math.Abs(pose.Pitch) <= p.config.MaxPitchDegrees
}

// DetectObjects detects objects using the Rekognition DetectLabels API.
// Only label instances with a bounding box are reported: a label without an
// instance has no location and cannot be attributed to a concrete object.
func (p *Provider) DetectObjects(ctx context.Context, frame []byte) ([]provider.DetectedObject, error) {
	if err := validateFrame(frame); err != nil {
		return nil, err
	}

	input := &rekognition.DetectLabelsInput{
		Image: &types.Image{
			Bytes: frame,
		},
		MinConfidence: aws.Float32(p.config.MinObjectConfidence),
	}

	output, err := p.client.api.DetectLabels(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", classifyAWSError(err))
	}

	var objects []provider.DetectedObject
	for _, label := range output.Labels {
		name := strings.ToLower(aws.ToString(label.Name))
		for _, instance := range label.Instances {
			if instance.BoundingBox == nil {
				continue
			}
			objects = append(objects, provider.DetectedObject{
				Name:       name,
				Confidence: float64(aws.ToFloat32(instance.Confidence)) / 100,
				BoundingBox: provider.BoundingBox{
					X:      float64(aws.ToFloat32(instance.BoundingBox.Left)),
					Y:      float64(aws.ToFloat32(instance.BoundingBox.Top)),
					Width:  float64(aws.ToFloat32(instance.BoundingBox.Width)),
					Height: float64(aws.ToFloat32(instance.BoundingBox.Height)),
				},
			})
		}
	}

	return objects, nil
}

// classifyAWSError maps AWS API errors to package sentinel errors
func classifyAWSError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case errCodeAccessDenied:
			return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		case errCodeThrottling, errCodeProvisionedThroughput:
			return fmt.Errorf("%w: %v", ErrThrottled, err)
		case errCodeInvalidImageFormat, errCodeImageTooLarge:
			return fmt.Errorf("%w: %v", ErrInvalidFrame, err)
		}
	}
	return err
}
