package vision

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/vigia/internal/config"
	"github.com/saturnino-fabrica-de-software/vigia/internal/provider"
	"github.com/saturnino-fabrica-de-software/vigia/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/vigia/internal/provider/pixel"
	"github.com/saturnino-fabrica-de-software/vigia/internal/provider/rekognition"
)

// ProviderType defines supported vision provider types
type ProviderType string

const (
	// ProviderTypeMock is the scripted provider (local, for dev/test)
	ProviderTypeMock ProviderType = "mock"
	// ProviderTypePixel is the degraded pixel-sampling provider (local, no models)
	ProviderTypePixel ProviderType = "pixel"
	// ProviderTypeRekognition is the AWS Rekognition provider (cloud, for prod)
	ProviderTypeRekognition ProviderType = "rekognition"
)

// NewVisionProvider creates a VisionProvider instance based on configuration
//
// Environment variables:
//   - VISION_PROVIDER: "mock", "pixel" or "rekognition" (default: "mock")
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//   - AWS_ACCESS_KEY_ID: AWS credentials (via AWS SDK credential chain)
//   - AWS_SECRET_ACCESS_KEY: AWS credentials (via AWS SDK credential chain)
func NewVisionProvider(ctx context.Context, cfg *config.Config) (provider.VisionProvider, error) {
	providerType := ProviderType(cfg.VisionProvider)

	switch providerType {
	case ProviderTypeRekognition:
		return createRekognitionProvider(ctx, cfg)

	case ProviderTypePixel:
		return pixel.New(pixel.DefaultConfig()), nil

	case ProviderTypeMock, "":
		// Default to the scripted provider for dev/test environments
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.VisionProvider, ProviderTypeMock, ProviderTypePixel, ProviderTypeRekognition)
	}
}

// NewFallbackProvider returns the degraded provider used when the configured
// backend cannot be acquired. The pixel provider falls back to nothing (it
// already is the floor), so it gets nil.
func NewFallbackProvider(cfg *config.Config) provider.VisionProvider {
	if ProviderType(cfg.VisionProvider) == ProviderTypePixel {
		return nil
	}
	return pixel.New(pixel.DefaultConfig())
}

// createRekognitionProvider creates an AWS Rekognition provider instance
func createRekognitionProvider(ctx context.Context, cfg *config.Config) (provider.VisionProvider, error) {
	rekogConfig := rekognition.DefaultConfig()
	rekogConfig.Region = cfg.AWSRegion

	prov, err := rekognition.NewProvider(ctx, rekogConfig)
	if err != nil {
		return nil, fmt.Errorf("create rekognition provider: %w", err)
	}

	return prov, nil
}
