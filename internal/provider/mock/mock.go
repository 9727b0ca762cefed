// Package mock implementa provider.VisionProvider para testes e desenvolvimento
package mock

import (
	"context"
	"sync"

	"github.com/saturnino-fabrica-de-software/vigia/internal/provider"
)

// Provider returns scripted observations. Zero value behaves as a camera
// watching a single centered candidate with nothing suspicious in view.
type Provider struct {
	mu sync.Mutex

	// Faces and Objects are returned by every call when the respective
	// script queue is empty.
	Faces   []provider.FaceObservation
	Objects []provider.DetectedObject

	// FaceScript and ObjectScript, when non-empty, are consumed one entry
	// per call, letting tests drive a frame-by-frame scenario.
	FaceScript   [][]provider.FaceObservation
	ObjectScript [][]provider.DetectedObject

	WarmErr   error
	FaceErr   error
	ObjectErr error

	WarmCalls int
}

var _ provider.VisionProvider = (*Provider)(nil)

// New cria uma nova instância do mock com um candidato centrado no quadro
func New() *Provider {
	return &Provider{
		Faces: []provider.FaceObservation{
			{
				BoundingBox: provider.BoundingBox{X: 0.3, Y: 0.2, Width: 0.4, Height: 0.5},
				Confidence:  0.99,
				Centered:    true,
			},
		},
	}
}

func (p *Provider) Warm(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.WarmCalls++
	return p.WarmErr
}

func (p *Provider) DetectFaces(ctx context.Context, frame []byte) ([]provider.FaceObservation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FaceErr != nil {
		return nil, p.FaceErr
	}
	if len(p.FaceScript) > 0 {
		next := p.FaceScript[0]
		p.FaceScript = p.FaceScript[1:]
		return next, nil
	}
	return p.Faces, nil
}

func (p *Provider) DetectObjects(ctx context.Context, frame []byte) ([]provider.DetectedObject, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ObjectErr != nil {
		return nil, p.ObjectErr
	}
	if len(p.ObjectScript) > 0 {
		next := p.ObjectScript[0]
		p.ObjectScript = p.ObjectScript[1:]
		return next, nil
	}
	return p.Objects, nil
}
