// Package pixel is the degraded vision fallback: a pure-Go heuristic over
// decoded frame pixels. It needs no model and no network, so it can always be
// substituted when the configured backend fails to come up. It finds at most
// one face and detects no objects.
package pixel

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/saturnino-fabrica-de-software/vigia/internal/provider"
)

// Config holds the heuristic thresholds
type Config struct {
	// MinBrightness is the mean brightness (0-255) below which the frame is
	// treated as dark and faceless.
	MinBrightness float64

	// FaceBrightness is the mean brightness required, together with
	// SkinRatio, to report a face present.
	FaceBrightness float64

	// SkinRatio is the minimum share of skin-tone pixels for face presence.
	SkinRatio float64

	// CenterSkinRatio is the minimum share of skin-tone pixels inside the
	// center region for the face to count as facing the screen.
	CenterSkinRatio float64

	// CenterRegion is the side, in pixels, of the square sampled at the
	// frame center for the gaze estimate.
	CenterRegion int
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		MinBrightness:   30,
		FaceBrightness:  50,
		SkinRatio:       0.05,
		CenterSkinRatio: 0.1,
		CenterRegion:    100,
	}
}

// Provider implements provider.VisionProvider with pixel sampling
type Provider struct {
	config Config
}

var _ provider.VisionProvider = (*Provider)(nil)

// New cria um provider de fallback com a configuração informada
func New(cfg Config) *Provider {
	return &Provider{config: cfg}
}

// Warm is a no-op: the heuristic has nothing to acquire.
func (p *Provider) Warm(ctx context.Context) error {
	return nil
}

// DetectFaces estimates face presence from skin-tone and brightness sampling.
func (p *Provider) DetectFaces(ctx context.Context, frame []byte) ([]provider.FaceObservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	brightness, skinRatio := sample(img, img.Bounds())
	if brightness < p.config.MinBrightness {
		return nil, nil
	}
	if skinRatio <= p.config.SkinRatio || brightness <= p.config.FaceBrightness {
		return nil, nil
	}

	bounds := img.Bounds()
	_, centerSkin := sample(img, centerRegion(bounds, p.config.CenterRegion))

	face := provider.FaceObservation{
		BoundingBox: provider.BoundingBox{X: 100, Y: 100, Width: 200, Height: 200},
		Confidence:  0.6,
		Centered:    centerSkin >= p.config.CenterSkinRatio,
	}
	return []provider.FaceObservation{face}, nil
}

// DetectObjects reports no objects: the heuristic has no object capability.
func (p *Provider) DetectObjects(ctx context.Context, frame []byte) ([]provider.DetectedObject, error) {
	return nil, ctx.Err()
}

// centerRegion returns a side x side square centered in bounds, clamped to it.
func centerRegion(bounds image.Rectangle, side int) image.Rectangle {
	cx := (bounds.Min.X + bounds.Max.X) / 2
	cy := (bounds.Min.Y + bounds.Max.Y) / 2
	region := image.Rect(cx-side/2, cy-side/2, cx+side/2, cy+side/2)
	return region.Intersect(bounds)
}

// sample returns the mean brightness (0-255) and skin-tone pixel ratio over
// the region.
func sample(img image.Image, region image.Rectangle) (brightness, skinRatio float64) {
	if region.Empty() {
		return 0, 0
	}

	var total, skin, count float64
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16 >> 8)
			g := float64(g16 >> 8)
			b := float64(b16 >> 8)

			total += (r + g + b) / 3
			if isSkinTone(r, g, b) {
				skin++
			}
			count++
		}
	}

	return total / count, skin / count
}

// isSkinTone applies the classic RGB skin-tone rule.
func isSkinTone(r, g, b float64) bool {
	return r > 95 && g > 40 && b > 20 &&
		r > g && r > b &&
		r-g > 15
}
